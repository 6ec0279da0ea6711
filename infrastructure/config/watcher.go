package config

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads the configuration file when it changes on disk and
// notifies subscribers with the freshly validated config. A file that
// fails to parse or validate is logged and skipped; the last good
// configuration stays in effect.
type Watcher struct {
	path     string
	logger   *zap.Logger
	notifier *fsnotify.Watcher

	mu        sync.RWMutex
	current   *Config
	listeners []func(*Config)

	done chan struct{}
	once sync.Once
}

// NewWatcher starts watching the config file's directory. Watching the
// directory instead of the file survives the rename-and-replace writes
// editors and config management tools do.
func NewWatcher(path string, initial *Config, logger *zap.Logger) (*Watcher, error) {
	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := notifier.Add(filepath.Dir(path)); err != nil {
		notifier.Close()
		return nil, err
	}

	w := &Watcher{
		path:     path,
		logger:   logger,
		notifier: notifier,
		current:  initial,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Current returns the most recent valid configuration
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// OnReload registers a callback invoked with each new valid configuration
func (w *Watcher) OnReload(fn func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

// Close stops the watcher
func (w *Watcher) Close() error {
	w.once.Do(func() { close(w.done) })
	return w.notifier.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.notifier.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.notifier.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Warn("ignoring invalid config reload", zap.String("path", w.path), zap.Error(err))
		return
	}

	w.mu.Lock()
	w.current = cfg
	listeners := make([]func(*Config), len(w.listeners))
	copy(listeners, w.listeners)
	w.mu.Unlock()

	w.logger.Info("configuration reloaded", zap.String("path", w.path))
	for _, fn := range listeners {
		fn(cfg)
	}
}
