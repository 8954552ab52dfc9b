package app

import (
	"os"
	"sync"
	"time"
)

// ConfigWatcher polls a configuration file and invokes a callback each time
// its modification time moves forward.
type ConfigWatcher struct {
	path          string
	checkInterval time.Duration

	mu       sync.Mutex
	baseline time.Time
	stopCh   chan struct{}
	onChange func(path string) // called from the watcher goroutine
}

// NewConfigWatcher creates a watcher for path. Returns nil if the file
// cannot be stat'ed.
func NewConfigWatcher(path string, checkInterval time.Duration) *ConfigWatcher {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	return &ConfigWatcher{
		path:          path,
		checkInterval: checkInterval,
		baseline:      info.ModTime(),
	}
}

// OnChange sets the callback. It runs on the watcher goroutine.
func (w *ConfigWatcher) OnChange(callback func(path string)) {
	w.mu.Lock()
	w.onChange = callback
	w.mu.Unlock()
}

// Path returns the watched file.
func (w *ConfigWatcher) Path() string { return w.path }

// Start begins polling in a background goroutine.
func (w *ConfigWatcher) Start() {
	w.mu.Lock()
	w.stopCh = make(chan struct{})
	stop := w.stopCh
	w.mu.Unlock()
	go w.watchLoop(stop)
}

// Stop stops polling. It is safe to call on a watcher that never started.
func (w *ConfigWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopCh != nil {
		close(w.stopCh)
		w.stopCh = nil
	}
}

func (w *ConfigWatcher) watchLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(w.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if cb := w.checkForUpdate(); cb != nil {
				cb(w.path)
			}
		}
	}
}

// checkForUpdate advances the baseline and returns the callback when the
// file changed since the last check.
func (w *ConfigWatcher) checkForUpdate() func(string) {
	info, err := os.Stat(w.path)
	if err != nil {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if !info.ModTime().After(w.baseline) {
		return nil
	}
	w.baseline = info.ModTime()
	return w.onChange
}
