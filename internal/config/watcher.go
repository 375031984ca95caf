package config

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the config file and publishes reloaded configs.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	filePath string
	updates  chan *Config
	done     chan struct{}
	mu       sync.Mutex
	running  bool
}

// NewWatcher creates a watcher for the config file at path.
// If path is empty, the default config path is used.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	if path == "" {
		path = ConfigPath()
	}
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:  watcher,
		logger:   logger,
		filePath: path,
		updates:  make(chan *Config, 1),
		done:     make(chan struct{}),
	}, nil
}

// Updates returns the channel that receives each successfully reloaded config.
// Only the most recent pending config is kept.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Start begins watching the file for changes.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// Watch the directory containing the file (editors replace files on save)
	if err := w.watcher.Add(filepath.Dir(w.filePath)); err != nil {
		return err
	}

	go w.watch()
	return nil
}

// watch is the main watch loop.
func (w *Watcher) watch() {
	filename := filepath.Base(w.filePath)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.reload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)

		case <-w.done:
			return
		}
	}
}

// reload parses the file and publishes it, replacing any unread config.
func (w *Watcher) reload() {
	cfg, err := LoadConfig(w.filePath)
	if err != nil {
		w.logger.Warn("failed to reload config", "path", w.filePath, "error", err)
		return
	}

	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
	w.logger.Debug("config reloaded", "path", w.filePath)
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.running = false
	close(w.done)
	return w.watcher.Close()
}
