package corpus

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"narrative-assembly/internal/logger"
)

// Watcher reloads a Store when JSON files in the transcript directory change.
// Bursts of events are collapsed into one reload after a quiet period.
type Watcher struct {
	dir      string
	store    *Store
	debounce time.Duration
	// OnReload runs after each successful reload.
	OnReload func(snap *Snapshot)
}

func NewWatcher(dir string, store *Store, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	return &Watcher{dir: dir, store: store, debounce: debounce}
}

// Run blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return err
	}
	logger.Info("Watching transcript directory", "dir", w.dir)

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(event.Name) != ".json" {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Transcript watcher error", "error", err)
		case <-timer.C:
			snap, err := w.store.Reload(ctx)
			if err != nil {
				logger.Error("Transcript reload failed", "error", err)
				continue
			}
			if w.OnReload != nil {
				w.OnReload(snap)
			}
		}
	}
}
