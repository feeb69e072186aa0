package gui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"pdf-reader/internal/viewer"
)

var canvasBackground = color.NRGBA{R: 0xd3, G: 0xd3, B: 0xd3, A: 0xff}

// PageCanvas draws the current page bitmap over a grey background and
// reports pointer input as viewer events. Its minimum size is the scroll
// region, so a surrounding container.Scroll provides the scrolling.
type PageCanvas struct {
	widget.BaseWidget

	background *canvas.Rectangle
	image      *canvas.Image
	imageSize  fyne.Size
	x          float32
	region     fyne.Size

	eventHandler func(viewer.Event)
}

var (
	_ desktop.Mouseable = (*PageCanvas)(nil)
	_ fyne.Draggable    = (*PageCanvas)(nil)
	_ fyne.Scrollable   = (*PageCanvas)(nil)
)

func NewPageCanvas() *PageCanvas {
	c := &PageCanvas{
		background: canvas.NewRectangle(canvasBackground),
		image:      canvas.NewImageFromImage(nil),
	}
	c.image.FillMode = canvas.ImageFillStretch
	c.image.ScaleMode = canvas.ImageScaleSmooth
	c.ExtendBaseWidget(c)
	return c
}

func (c *PageCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &pageCanvasRenderer{
		page:    c,
		objects: []fyne.CanvasObject{c.background, c.image},
	}
}

func (c *PageCanvas) SetEventHandler(handler func(viewer.Event)) {
	c.eventHandler = handler
}

// SetFrame replaces the bitmap and its horizontal position.
func (c *PageCanvas) SetFrame(img image.Image, x int) {
	b := img.Bounds()
	c.image.Image = img
	c.imageSize = fyne.NewSize(float32(b.Dx()), float32(b.Dy()))
	c.x = float32(x)
	c.Refresh()
}

// Clear drops the bitmap and collapses the scrollable extent.
func (c *PageCanvas) Clear() {
	c.image.Image = nil
	c.imageSize = fyne.Size{}
	c.x = 0
	c.region = fyne.Size{}
	c.Refresh()
}

// SetRegion sets the scrollable extent.
func (c *PageCanvas) SetRegion(r image.Rectangle) {
	c.region = fyne.NewSize(float32(r.Dx()), float32(r.Dy()))
	c.Refresh()
}

func (c *PageCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	c.emit(viewer.Event{
		Kind: viewer.EventPress,
		X:    int(ev.AbsolutePosition.X),
		Y:    int(ev.AbsolutePosition.Y),
		Mods: modifiers(ev.Modifier),
	})
}

func (c *PageCanvas) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	c.emit(viewer.Event{Kind: viewer.EventRelease, Mods: modifiers(ev.Modifier)})
}

// Dragged uses window coordinates; positions relative to the page shift
// while the page itself scrolls.
func (c *PageCanvas) Dragged(ev *fyne.DragEvent) {
	c.emit(viewer.Event{
		Kind: viewer.EventMotion,
		X:    int(ev.AbsolutePosition.X),
		Y:    int(ev.AbsolutePosition.Y),
	})
}

func (c *PageCanvas) DragEnd() {}

func (c *PageCanvas) Scrolled(ev *fyne.ScrollEvent) {
	notches := 0
	switch {
	case ev.Scrolled.DY > 0:
		notches = 1
	case ev.Scrolled.DY < 0:
		notches = -1
	default:
		return
	}
	c.emit(viewer.Event{Kind: viewer.EventWheel, Delta: notches, Mods: currentModifiers()})
}

func (c *PageCanvas) emit(ev viewer.Event) {
	if c.eventHandler != nil {
		c.eventHandler(ev)
	}
}

// currentModifiers asks the desktop driver which modifiers are held; scroll
// events do not carry them.
func currentModifiers() viewer.Modifier {
	app := fyne.CurrentApp()
	if app == nil {
		return 0
	}
	if drv, ok := app.Driver().(desktop.Driver); ok {
		return modifiers(drv.CurrentKeyModifiers())
	}
	return 0
}

func modifiers(m fyne.KeyModifier) viewer.Modifier {
	var mods viewer.Modifier
	if m&fyne.KeyModifierShift != 0 {
		mods |= viewer.ModShift
	}
	if m&fyne.KeyModifierControl != 0 {
		mods |= viewer.ModControl
	}
	if m&fyne.KeyModifierAlt != 0 {
		mods |= viewer.ModAlt
	}
	if m&fyne.KeyModifierSuper != 0 {
		mods |= viewer.ModSuper
	}
	return mods
}

type pageCanvasRenderer struct {
	page    *PageCanvas
	objects []fyne.CanvasObject
}

func (r *pageCanvasRenderer) Layout(size fyne.Size) {
	r.page.background.Resize(size)
	r.page.image.Move(fyne.NewPos(r.page.x, 0))
	r.page.image.Resize(r.page.imageSize)
}

func (r *pageCanvasRenderer) MinSize() fyne.Size {
	return r.page.region
}

func (r *pageCanvasRenderer) Refresh() {
	r.Layout(r.page.Size())
	r.page.background.Refresh()
	r.page.image.Refresh()
}

func (r *pageCanvasRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *pageCanvasRenderer) Destroy() {}
