// Package watch reports when the open document changes on disk.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"pdf-reader/internal/logger"
)

const component = "Watcher"

// DefaultDebounce coalesces the burst of events a single save produces.
const DefaultDebounce = 250 * time.Millisecond

// Watcher follows a single file. The parent directory is watched so that
// editors replacing the file atomically are still noticed.
type Watcher struct {
	fs       *fsnotify.Watcher
	logger   logger.Logger
	onChange func(path string)
	debounce time.Duration

	mu    sync.Mutex
	file  string
	dir   string
	timer *time.Timer

	done chan struct{}
	wg   sync.WaitGroup
}

// New starts a watcher that calls onChange from its own goroutine. Callers
// touching UI state must hand the call over to the UI thread.
func New(onChange func(path string), debounce time.Duration, log logger.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = logger.Nop()
	}
	w := &Watcher{
		fs:       fw,
		logger:   log,
		onChange: onChange,
		debounce: debounce,
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Watch switches the watcher to path, dropping the previous file.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dir != dir {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		if w.dir != "" {
			w.fs.Remove(w.dir)
		}
		w.dir = dir
	}
	w.file = abs
	w.stopTimer()

	w.logger.Debug(component, "watching document", map[string]interface{}{"path": abs})
	return nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warning(component, "watch error", map[string]interface{}{"error": err.Error()})
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if filepath.Clean(ev.Name) != w.file {
		return
	}

	w.stopTimer()
	file := w.file
	w.timer = time.AfterFunc(w.debounce, func() {
		w.logger.Info(component, "document changed", map[string]interface{}{"path": file})
		w.onChange(file)
	})
}

func (w *Watcher) stopTimer() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// Shutdown stops the watcher; pending notifications are dropped.
func (w *Watcher) Shutdown() {
	select {
	case <-w.done:
		return
	default:
		close(w.done)
	}

	w.mu.Lock()
	w.stopTimer()
	w.mu.Unlock()

	if err := w.fs.Close(); err != nil {
		w.logger.Error(component, err, nil)
	}
	w.wg.Wait()
}
