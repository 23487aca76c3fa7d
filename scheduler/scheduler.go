package scheduler

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/coreybb/newsdash/dashboard"
	"github.com/coreybb/newsdash/delivery"
)

// Scheduler sends the daily digest at most once per local calendar day,
// after the configured hour.
type Scheduler struct {
	views    dashboard.Factory
	composer *delivery.Composer
	service  *delivery.DigestService
	loc      *time.Location
	hour     int
	now      func() time.Time

	mu       sync.Mutex
	lastSent time.Time
}

// New creates a new Scheduler with all required dependencies.
func New(
	views dashboard.Factory,
	composer *delivery.Composer,
	service *delivery.DigestService,
	loc *time.Location,
	hour int,
) *Scheduler {
	now := time.Now
	if views.Clock != nil {
		now = views.Clock
	}
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		views:    views,
		composer: composer,
		service:  service,
		loc:      loc,
		hour:     hour,
		now:      now,
	}
}

// HandleTick is an HTTP handler that triggers a scheduler tick.
// Used by Cloud Scheduler or manual curl requests.
func (s *Scheduler) HandleTick(w http.ResponseWriter, r *http.Request) {
	log.Println("INFO (Scheduler): Tick triggered via HTTP")

	sent, err := s.Tick(r.Context())
	if err != nil {
		log.Printf("ERROR (Scheduler): Tick failed: %v", err)
		http.Error(w, "scheduler tick failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if sent {
		fmt.Fprint(w, "OK: digest sent")
		return
	}
	fmt.Fprint(w, "OK: digest not due")
}

// Tick sends the digest if it is due. It reports whether a digest went out.
func (s *Scheduler) Tick(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !isDue(s.hour, s.lastSent, now, s.loc) {
		return false, nil
	}

	if _, err := SendDigest(ctx, s.views, s.composer, s.service); err != nil {
		return false, err
	}
	s.lastSent = now
	return true, nil
}

// SendDigest composes the unfiltered view into a digest and delivers it.
func SendDigest(
	ctx context.Context,
	views dashboard.Factory,
	composer *delivery.Composer,
	service *delivery.DigestService,
) (*delivery.Result, error) {
	c, err := views.Open(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load news for digest: %w", err)
	}

	digest, err := composer.Compose(c.View(), c.Summaries(), c.Now())
	if err != nil {
		return nil, err
	}
	return service.Deliver(ctx, digest)
}

// isDue reports whether now is past the send hour of a day that has no digest yet.
func isDue(hour int, lastSent, now time.Time, loc *time.Location) bool {
	local := now.In(loc)
	if local.Hour() < hour {
		return false
	}
	if lastSent.IsZero() {
		return true
	}
	last := lastSent.In(loc)
	ly, lm, ld := last.Date()
	ny, nm, nd := local.Date()
	return ly != ny || lm != nm || ld != nd
}
