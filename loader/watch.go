package loader

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads snapshot whenever the file at path is written or replaced.
// The containing directory is watched so that atomic renames by the collector are seen.
// Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, snapshot *Snapshot) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}
	log.Printf("INFO (Watch): Watching %s for changes", target)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Printf("INFO (Watch): %s changed (%s), reloading", target, event.Op)
			_ = snapshot.Reload(ctx)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("WARN (Watch): Watcher error: %v", err)
		}
	}
}
