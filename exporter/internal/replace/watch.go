package replace

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors path and publishes a freshly loaded Table to store each time
// the file is written. It runs until ctx is cancelled.
//
// If a reload fails (e.g., invalid JSON), the error is logged and the
// previous Table stays in effect.
//
// The parent directory is watched rather than the file so that atomic saves
// (write temp file, rename over path) keep being observed.
func Watch(ctx context.Context, path string, store *Store) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	slog.Info("replace: watching for changes", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			// Editors often save via rename, so create counts as a write.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			t, err := Load(path)
			if err != nil {
				slog.Error("replace: reload failed, keeping previous table",
					"path", path, "err", err)
				continue
			}

			store.Set(t)
			slog.Info("replace: reloaded", "path", path, "entries", t.Len())

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("replace: watcher error", "err", err)
		}
	}
}
