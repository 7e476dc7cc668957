package projects

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the data file at path whenever it changes and passes the new
// list to onChange. Bursts of events are collapsed into one reload after
// debounce. A file that fails to load is logged and skipped, so the previous
// list stays in use. Watch blocks until ctx is cancelled.
//
// Calls to onChange never overlap, and none happens after Watch returns.
//
// The parent directory is watched rather than the file itself because most
// editors replace files on save.
func Watch(ctx context.Context, path string, debounce time.Duration, onChange func([]Entry)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("projects: create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("projects: resolve %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("projects: watch %s: %w", filepath.Dir(abs), err)
	}

	var (
		mu    sync.Mutex
		timer *time.Timer

		// reloadMu serialises reloads. A debounce timer that already fired
		// cannot be stopped, so two reloads may race without it.
		reloadMu sync.Mutex
		stopped  bool
	)
	reload := func() {
		reloadMu.Lock()
		defer reloadMu.Unlock()
		if stopped {
			return
		}
		entries, err := Load(abs)
		if err != nil {
			slog.Warn("project reload failed, keeping previous list", "path", abs, "err", err)
			return
		}
		slog.Info("project list reloaded", "path", abs, "count", len(entries))
		onChange(entries)
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		reloadMu.Lock()
		stopped = true
		reloadMu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, reload)
			mu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("project watcher error", "err", err)
		}
	}
}
