package dashboard

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/pstats/internal/logger"
)

// ConfigWatcher watches the loaded .env file and signals rewrites so the
// dashboard can pick up new settings without a restart.
type ConfigWatcher struct {
	filePath      string
	watcher       *fsnotify.Watcher
	events        chan struct{}
	stopChan      chan struct{}
	debounceTimer *time.Timer
}

// NewConfigWatcher starts watching the given env file. An empty path means
// no file was loaded and no watcher is created.
func NewConfigWatcher(filePath string) (*ConfigWatcher, error) {
	if filePath == "" {
		return nil, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory to catch editors that replace the file.
	if err := watcher.Add(filepath.Dir(filePath)); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return nil, err
	}

	w := &ConfigWatcher{
		filePath: filePath,
		watcher:  watcher,
		events:   make(chan struct{}, 1),
		stopChan: make(chan struct{}),
	}
	go w.watchLoop()
	return w, nil
}

// Events returns the channel that receives one signal per settled change.
func (w *ConfigWatcher) Events() <-chan struct{} {
	return w.events
}

// watchLoop handles file system events with debouncing.
func (w *ConfigWatcher) watchLoop() {
	const debounceInterval = 100 * time.Millisecond

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.filePath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				// Debounce rapid changes
				if w.debounceTimer != nil {
					w.debounceTimer.Stop()
				}
				w.debounceTimer = time.AfterFunc(debounceInterval, func() {
					select {
					case w.events <- struct{}{}:
					default:
					}
				})
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher error", "error", err)

		case <-w.stopChan:
			return
		}
	}
}

// Close stops the watcher and releases its resources.
func (w *ConfigWatcher) Close() error {
	if w == nil {
		return nil
	}
	close(w.stopChan)
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	close(w.events)
	return w.watcher.Close()
}
