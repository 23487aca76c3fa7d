package loader

import (
	"context"
	"log"
	"sync"

	"github.com/coreybb/newsdash/models"
)

// Snapshot performs the underlying load once and serves the result to every
// later caller. Reload replaces the cached result.
type Snapshot struct {
	source Loader

	mu     sync.RWMutex
	loaded bool
	feed   *models.Feed
	err    error
}

func NewSnapshot(source Loader) *Snapshot {
	return &Snapshot{source: source}
}

// Load returns the cached feed, fetching it on first use.
// A failed first load is cached too; there is no retry.
func (s *Snapshot) Load(ctx context.Context) (*models.Feed, error) {
	s.mu.RLock()
	if s.loaded {
		feed, err := s.feed, s.err
		s.mu.RUnlock()
		return feed, err
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.feed, s.err = s.source.Load(ctx)
		s.loaded = true
	}
	return s.feed, s.err
}

// Reload fetches the feed again and swaps it in. A failed reload keeps the last
// good feed; it only replaces the cached result when there is nothing to keep.
func (s *Snapshot) Reload(ctx context.Context) error {
	feed, err := s.source.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if s.loaded && s.err == nil {
			log.Printf("WARN (Snapshot): Reload failed, keeping last good feed: %v", err)
			return err
		}
		log.Printf("ERROR (Snapshot): Reload failed: %v", err)
		s.feed, s.err, s.loaded = nil, err, true
		return err
	}

	s.feed, s.err, s.loaded = feed, nil, true
	return nil
}

// Err reports the error of the last load, if any.
func (s *Snapshot) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}
