package viewer

import (
	"errors"

	"pdf-reader/internal/document"
	"pdf-reader/internal/logger"
	"pdf-reader/internal/timing"
)

const component = "Viewer"

// Default view parameters.
const (
	DefaultZoom        = 1.0
	DefaultCanvasScale = 0.5
)

// Options configures a Controller. Source and Surface are required.
type Options struct {
	Source        document.Source
	Surface       Surface
	Indicator     Indicator
	Logger        logger.Logger
	Timings       *timing.Tracker
	Zoom          float64
	CanvasScale   float64
	Justification Justification
}

// Controller owns the view state of one window. It is not safe for
// concurrent use; every call is expected on the UI goroutine.
type Controller struct {
	source    document.Source
	surface   Surface
	indicator Indicator
	logger    logger.Logger
	timings   *timing.Tracker

	doc   document.Document
	state ViewState
	frame *Frame
}

func NewController(opts Options) *Controller {
	c := &Controller{
		source:    opts.Source,
		surface:   opts.Surface,
		indicator: opts.Indicator,
		logger:    opts.Logger,
		timings:   opts.Timings,
		state: ViewState{
			Zoom:          opts.Zoom,
			CanvasScale:   opts.CanvasScale,
			Justification: opts.Justification,
		},
	}
	if c.indicator == nil {
		c.indicator = nopIndicator{}
	}
	if c.logger == nil {
		c.logger = logger.Nop()
	}
	if c.timings == nil {
		c.timings = timing.NewTracker()
	}
	if c.state.Zoom <= 0 {
		c.state.Zoom = DefaultZoom
	}
	if c.state.CanvasScale < MinCanvasScale || c.state.CanvasScale > MaxCanvasScale {
		c.state.CanvasScale = DefaultCanvasScale
	}
	return c
}

// Start sizes the canvas from the canvas scale and publishes the initial
// indicator values.
func (c *Controller) Start() {
	c.applyCanvasScale()
	c.indicator.ShowPageCount(0)
	c.indicator.ShowZoom(c.state.ZoomPercent())
	c.indicator.ShowJustification(c.state.Justification)
}

// State returns a copy of the current view state.
func (c *Controller) State() ViewState {
	return c.state
}

// Frame returns the frame currently displayed, or nil.
func (c *Controller) Frame() *Frame {
	return c.frame
}

// Timings returns the open and render duration statistics.
func (c *Controller) Timings() *timing.Tracker {
	return c.timings
}

// Document returns the open document, or nil.
func (c *Controller) Document() document.Document {
	return c.doc
}

// OpenDocument replaces the open document with the file at path and shows
// its first page. An empty path means the user cancelled and is ignored.
// Zoom and justification carry over from the previous document.
func (c *Controller) OpenDocument(path string) error {
	if path == "" {
		return nil
	}

	stop := c.timings.Start("open")
	doc, err := c.source.Open(path)
	elapsed := stop()
	if err != nil {
		var docErr *document.DocumentError
		if !errors.As(err, &docErr) {
			err = &document.DocumentError{Op: "open", Path: path, Err: err}
		}
		c.logger.Error(component, err, map[string]interface{}{"path": path})
		return err
	}

	c.replaceDocument(doc)
	c.state.Page = 0
	c.state.Drag = DragState{}
	c.indicator.ShowPageCount(c.state.PageCount)

	c.logger.Info(component, "document opened", map[string]interface{}{
		"path":       path,
		"pages":      c.state.PageCount,
		"elapsed_ms": elapsed.Milliseconds(),
	})

	if c.state.PageCount == 0 {
		return nil
	}
	if err := c.ShowPage(0); err != nil {
		return err
	}
	c.surface.ResizeWindow(DocumentWindowSize(c.surface.ScreenSize(), c.surface.WindowSize()))
	return nil
}

// Reload opens the current file again, keeping the page where possible.
func (c *Controller) Reload() error {
	if c.doc == nil {
		return nil
	}
	path := c.doc.Path()
	doc, err := c.source.Open(path)
	if err != nil {
		c.logger.Warning(component, "reload failed", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return err
	}

	page := c.state.Page
	c.replaceDocument(doc)
	c.indicator.ShowPageCount(c.state.PageCount)
	c.logger.Debug(component, "document reloaded", map[string]interface{}{
		"path":  path,
		"pages": c.state.PageCount,
	})

	if c.state.PageCount == 0 {
		c.state.Page = 0
		return nil
	}
	return c.ShowPage(min(page, c.state.PageCount-1))
}

// Close releases the open document.
func (c *Controller) Close() error {
	if c.doc == nil {
		return nil
	}
	err := c.doc.Close()
	c.doc = nil
	c.frame = nil
	c.state.Page = 0
	c.state.PageCount = 0
	return err
}

// Shutdown closes the document, logging any error.
func (c *Controller) Shutdown() {
	if err := c.Close(); err != nil {
		c.logger.Error(component, err, map[string]interface{}{"stage": "shutdown"})
	}
}

func (c *Controller) replaceDocument(doc document.Document) {
	if c.doc != nil {
		if err := c.doc.Close(); err != nil {
			c.logger.Warning(component, "closing previous document failed", map[string]interface{}{
				"path":  c.doc.Path(),
				"error": err.Error(),
			})
		}
	}
	c.doc = doc
	c.frame = nil
	c.surface.Clear()
	c.state.PageCount = doc.PageCount()
}

// ShowPage renders page n at the current zoom and places it per the
// justification. Indices outside the document are ignored.
func (c *Controller) ShowPage(n int) error {
	if c.doc == nil || n < 0 || n >= c.state.PageCount {
		return nil
	}

	stop := c.timings.Start("render")
	img, err := c.doc.Render(n, c.state.Zoom)
	elapsed := stop()
	if err != nil {
		c.logger.Error(component, err, map[string]interface{}{
			"page": n + 1,
			"zoom": c.state.Zoom,
		})
		return err
	}

	c.state.Page = n
	canvasWidth := c.surface.CanvasWidth()
	frame := &Frame{Page: n, Image: img}
	frame.X = PlaceX(c.state.Justification, canvasWidth, frame.Width())

	c.surface.Draw(frame)
	c.surface.SetScrollRegion(ScrollRegion(canvasWidth, frame.Width(), frame.Height()))
	c.frame = frame
	c.indicator.ShowPageNumber(n + 1)

	c.logger.Debug(component, "page rendered", map[string]interface{}{
		"page":       n + 1,
		"zoom":       c.state.Zoom,
		"width":      frame.Width(),
		"height":     frame.Height(),
		"x":          frame.X,
		"elapsed_ms": elapsed.Milliseconds(),
	})
	return nil
}

func (c *Controller) refresh() error {
	return c.ShowPage(c.state.Page)
}

func (c *Controller) NextPage() error {
	if c.doc == nil || c.state.Page >= c.state.PageCount-1 {
		return nil
	}
	return c.ShowPage(c.state.Page + 1)
}

func (c *Controller) PreviousPage() error {
	if c.doc == nil || c.state.Page <= 0 {
		return nil
	}
	return c.ShowPage(c.state.Page - 1)
}

func (c *Controller) FirstPage() error {
	if c.state.Page == 0 {
		return nil
	}
	return c.ShowPage(0)
}

func (c *Controller) LastPage() error {
	if c.state.Page == c.state.PageCount-1 {
		return nil
	}
	return c.ShowPage(c.state.PageCount - 1)
}

// GoToPage shows the 1-based page number in text. Anything that is not a
// page of the open document is ignored and the page indicator restored.
func (c *Controller) GoToPage(text string) error {
	index, ok := parsePageNumber(text)
	if !ok || index < 0 || index >= c.state.PageCount {
		c.logger.Debug(component, "page number ignored", map[string]interface{}{"input": text})
		if c.doc != nil {
			c.indicator.ShowPageNumber(c.state.Page + 1)
		}
		return nil
	}
	return c.ShowPage(index)
}

func (c *Controller) ZoomIn() error {
	return c.setZoom(roundZoom(c.state.Zoom + ZoomStep))
}

// ZoomOut steps the zoom down, stopping at MinZoom.
func (c *Controller) ZoomOut() error {
	if c.state.Zoom <= MinZoom {
		return nil
	}
	return c.setZoom(max(roundZoom(c.state.Zoom-ZoomStep), MinZoom))
}

// SetZoom applies a percentage such as "150%". Non-positive or malformed
// input is ignored.
func (c *Controller) SetZoom(text string) error {
	zoom, ok := parsePercent(text)
	if !ok || zoom <= 0 {
		c.logger.Debug(component, "zoom ignored", map[string]interface{}{"input": text})
		c.indicator.ShowZoom(c.state.ZoomPercent())
		return nil
	}
	return c.setZoom(zoom)
}

// setZoom keeps the previous zoom when the page cannot be rendered at the
// new one, so state, indicator and frame stay in agreement.
func (c *Controller) setZoom(zoom float64) error {
	prev := c.state.Zoom
	c.state.Zoom = zoom
	if err := c.refresh(); err != nil {
		c.state.Zoom = prev
		c.indicator.ShowZoom(c.state.ZoomPercent())
		return err
	}
	c.indicator.ShowZoom(c.state.ZoomPercent())
	return nil
}

// SetCanvasScale applies a percentage of the screen size between 20% and
// 80% to the canvas. It reports whether the input was accepted.
func (c *Controller) SetCanvasScale(text string) bool {
	scale, ok := parsePercent(text)
	if !ok || scale < MinCanvasScale || scale > MaxCanvasScale {
		c.logger.Debug(component, "canvas scale ignored", map[string]interface{}{"input": text})
		c.indicator.ShowCanvasScale(int(c.state.CanvasScale*100 + 1e-9))
		return false
	}
	c.state.CanvasScale = scale
	c.applyCanvasScale()
	return true
}

func (c *Controller) applyCanvasScale() {
	c.surface.ResizeCanvas(CanvasSize(c.surface.ScreenSize(), c.state.CanvasScale))
	c.indicator.ShowCanvasScale(int(c.state.CanvasScale*100 + 1e-9))
}

// SetJustification accepts Left, Center or Right; other values are ignored.
func (c *Controller) SetJustification(value string) error {
	j, err := ParseJustification(value)
	if err != nil {
		c.logger.Debug(component, "justification ignored", map[string]interface{}{"input": value})
		c.indicator.ShowJustification(c.state.Justification)
		return nil
	}
	prev := c.state.Justification
	c.state.Justification = j
	if err := c.refresh(); err != nil {
		c.state.Justification = prev
		c.indicator.ShowJustification(prev)
		return err
	}
	return nil
}

// Press starts a pointer gesture. With the primary modifier held it goes
// back one page instead.
func (c *Controller) Press(x, y int, mods Modifier) error {
	c.state.Drag = DragState{OriginX: x, OriginY: y}
	if mods.Primary() {
		return c.PreviousPage()
	}
	return nil
}

// Motion scrolls horizontally by half the pointer travel since the last
// event and marks the gesture as a drag.
func (c *Controller) Motion(x, y int) {
	dx := x - c.state.Drag.OriginX
	if units := -dx / 2; units != 0 {
		c.surface.Scroll(units, 0)
	}
	c.state.Drag.OriginX = x
	c.state.Drag.OriginY = y
	c.state.Drag.Dragging = true
}

// Release ends a gesture. A plain click turns to the next page.
func (c *Controller) Release(mods Modifier) error {
	if c.state.Drag.Dragging || mods.Primary() {
		return nil
	}
	return c.NextPage()
}

// Wheel handles notches of wheel travel, positive being away from the
// user. Plain wheel scrolls, with the primary modifier it zooms.
func (c *Controller) Wheel(notches int, mods Modifier) error {
	if notches == 0 {
		return nil
	}
	if !mods.Primary() {
		c.surface.Scroll(0, -notches)
		return nil
	}

	step := c.ZoomIn
	if notches < 0 {
		step = c.ZoomOut
		notches = -notches
	}
	for i := 0; i < notches; i++ {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
