package locale

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/kdsmith18542/pluralkit/source"
)

// WatchLocales watches dir for bundle changes and reloads the changed
// locale until ctx is canceled. A reload builds a fresh engine and swaps it
// in, so rules removed from a bundle disappear as well.
// This should be called once, typically in development mode.
func (m *Manager) WatchLocales(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	logger := m.log().WithFields("dir", dir)

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !source.IsBundle(event.Name) {
					continue
				}
				code := localeCode(filepath.Base(event.Name))
				if err := m.loadFile(ctx, code, event.Name); err != nil {
					logger.Warn("failed to reload bundle", "locale", code, "error", err)
					continue
				}
				logger.Info("reloaded bundle", "locale", code)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("watcher error", "error", err)
			}
		}
	}()

	return nil
}
