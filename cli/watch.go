package cli

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/obb/logging"
)

// configWatcher calls back whenever a single config file is written or replaced.
type configWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  logging.Logger
}

// newConfigWatcher starts watching the directory holding path, so that editors which save by
// renaming a temporary file over the original are still noticed.
func newConfigWatcher(path string, logger logging.Logger) (*configWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create config watcher")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, multierr.Combine(err, watcher.Close())
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return nil, multierr.Combine(errors.Wrapf(err, "failed to watch %q", path), watcher.Close())
	}
	return &configWatcher{path: absPath, watcher: watcher, logger: logger}, nil
}

// Run calls onChange after every change to the file until ctx is done. A failing onChange is
// logged and does not stop the watch.
func (w *configWatcher) Run(ctx context.Context, onChange func() error) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.logger.Debugw("config changed", "path", w.path, "op", event.Op.String())
			if err := onChange(); err != nil {
				w.logger.Warnw("failed to process changed config", "path", w.path, "error", err)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("config watcher error", "error", err)
		}
	}
}

// Close stops the watch.
func (w *configWatcher) Close() error {
	return w.watcher.Close()
}
