package gui

import (
	"path/filepath"

	"fyne.io/fyne/v2"

	"pdf-reader/internal/logger"
	"pdf-reader/internal/viewer"
	"pdf-reader/internal/watch"
)

const component = "GUIController"

// Controller feeds View input into the viewer and reports failures back
// to the user. All methods run on the fyne UI goroutine.
type Controller struct {
	viewer  *viewer.Controller
	view    *View
	watcher *watch.Watcher
	logger  logger.Logger
	title   string
}

func NewController(vc *viewer.Controller, view *View, title string, log logger.Logger) *Controller {
	c := &Controller{
		viewer: vc,
		view:   view,
		logger: log,
		title:  title,
	}
	view.SetEventHandler(c.Dispatch)
	view.SetOpenHandler(c.OpenDialog)
	return c
}

// SetWatcher enables reloading the open document when it changes on disk.
func (c *Controller) SetWatcher(w *watch.Watcher) {
	c.watcher = w
}

// Dispatch runs one event through the viewer.
func (c *Controller) Dispatch(ev viewer.Event) {
	if err := c.viewer.Dispatch(ev); err != nil {
		c.view.ShowError(err)
		return
	}
	if ev.Kind == viewer.EventOpen && ev.Text != "" {
		c.documentOpened(ev.Text)
	}
}

// Open loads path as if it had been picked in the file dialog.
func (c *Controller) Open(path string) {
	c.Dispatch(viewer.Event{Kind: viewer.EventOpen, Text: path})
}

func (c *Controller) OpenDialog() {
	c.view.ShowFileDialog(func(path string, err error) {
		if err != nil {
			c.logger.Error(component, err, map[string]interface{}{"stage": "file dialog"})
			c.view.ShowError(err)
			return
		}
		c.Open(path)
	})
}

func (c *Controller) documentOpened(path string) {
	c.view.SetTitle(filepath.Base(path) + " - " + c.title)
	if c.watcher == nil {
		return
	}
	if err := c.watcher.Watch(path); err != nil {
		c.logger.Warning(component, "cannot watch document", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}
}

// DocumentChanged is the watcher callback. It runs on the watcher goroutine
// and hands the reload to the UI goroutine.
func (c *Controller) DocumentChanged(path string) {
	fyne.Do(func() {
		doc := c.viewer.Document()
		if doc == nil {
			return
		}
		if abs, err := filepath.Abs(doc.Path()); err != nil || abs != path {
			return
		}
		if err := c.viewer.Dispatch(viewer.Event{Kind: viewer.EventReload}); err != nil {
			c.logger.Warning(component, "reload skipped", map[string]interface{}{"error": err.Error()})
		}
	})
}

func (c *Controller) Shutdown() {
	c.viewer.Shutdown()
	c.logger.Info(component, "shutdown completed", nil)
}
