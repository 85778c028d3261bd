package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/phanxgames/arbor"
)

// configWatcher reloads the config file whenever it changes on disk. Valid
// configs are handed to the game loop through Updates; the scene itself is
// only touched from that loop.
type configWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	logger   *log.Logger
	debounce time.Duration
	updates  chan arbor.Config
}

func newConfigWatcher(path string, logger *log.Logger) (*configWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	// Editors often save by renaming over the file, which drops a watch on
	// the file itself, so watch the directory.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch config: %w", err)
	}
	return &configWatcher{
		watcher:  w,
		path:     abs,
		logger:   logger,
		debounce: 100 * time.Millisecond,
		updates:  make(chan arbor.Config, 1),
	}, nil
}

// Updates delivers reloaded configs. Only the latest one is kept.
func (w *configWatcher) Updates() <-chan arbor.Config {
	return w.updates
}

func (w *configWatcher) Close() error {
	return w.watcher.Close()
}

// run processes file events until ctx is done or the watcher is closed.
func (w *configWatcher) run(ctx context.Context) {
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pending = time.After(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher", "err", err)
		case <-pending:
			pending = nil
			w.reload()
		}
	}
}

func (w *configWatcher) reload() {
	cfg, err := arbor.LoadConfig(w.path)
	if err != nil {
		w.logger.Warn("config reload failed, keeping previous settings", "err", err)
		return
	}
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
	w.logger.Info("config reloaded", "path", w.path)
}

// applyUpdates applies the most recent reloaded config, if any.
func applyUpdates(scene *arbor.Scene, opts *options, updates <-chan arbor.Config) {
	select {
	case cfg := <-updates:
		opts.cfg = cfg
		scene.ApplyConfig(cfg)
		if opts.verbose {
			scene.SetDebugMode(true)
		}
	default:
	}
}
