package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"

	"pdf-reader/internal/document"
	"pdf-reader/internal/viewer"
)

// windowChrome is the slack added around the canvas when fitting the window.
const windowChrome = 20

// View owns the window content. It is the viewer's Surface and Indicator.
type View struct {
	window fyne.Window
	screen image.Point

	page    *PageCanvas
	scroll  *container.Scroll
	toolbar *Toolbar

	canvasSize   image.Point
	eventHandler func(viewer.Event)
	openHandler  func()
}

var (
	_ viewer.Surface   = (*View)(nil)
	_ viewer.Indicator = (*View)(nil)
)

func NewView(window fyne.Window, screen image.Point) *View {
	view := &View{
		window: window,
		screen: screen,
	}

	view.setupComponents()
	view.setupLayout()
	view.setupMenu()
	view.setupKeyboard()

	return view
}

func (v *View) setupComponents() {
	v.page = NewPageCanvas()
	v.page.SetEventHandler(v.emit)
	v.scroll = container.NewScroll(v.page)
	v.toolbar = NewToolbar()
	v.toolbar.SetEventHandler(v.emit)
}

func (v *View) setupLayout() {
	v.window.SetContent(container.NewBorder(nil, v.toolbar.GetContainer(), nil, nil, v.scroll))
}

func (v *View) setupMenu() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open", v.requestOpen),
	)
	v.window.SetMainMenu(fyne.NewMainMenu(fileMenu))
}

func (v *View) setupKeyboard() {
	c := v.window.Canvas()

	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { v.requestOpen() })

	zoomIn := func(fyne.Shortcut) {
		v.emit(viewer.Event{Kind: viewer.EventKey, Key: viewer.KeyPlus, Mods: viewer.ModControl})
	}
	zoomOut := func(fyne.Shortcut) {
		v.emit(viewer.Event{Kind: viewer.EventKey, Key: viewer.KeyMinus, Mods: viewer.ModControl})
	}
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyEqual, Modifier: fyne.KeyModifierShortcutDefault}, zoomIn)
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyPlus, Modifier: fyne.KeyModifierShortcutDefault}, zoomIn)
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyMinus, Modifier: fyne.KeyModifierShortcutDefault}, zoomOut)

	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if key := navigationKey(ev.Name); key != viewer.KeyUnknown {
			v.emit(viewer.Event{Kind: viewer.EventKey, Key: key})
		}
	})
}

func navigationKey(name fyne.KeyName) viewer.Key {
	switch name {
	case fyne.KeyRight:
		return viewer.KeyRight
	case fyne.KeyLeft:
		return viewer.KeyLeft
	case fyne.KeyPageDown:
		return viewer.KeyPageDown
	case fyne.KeyPageUp:
		return viewer.KeyPageUp
	case fyne.KeySpace:
		return viewer.KeySpace
	case fyne.KeyHome:
		return viewer.KeyHome
	case fyne.KeyEnd:
		return viewer.KeyEnd
	default:
		return viewer.KeyUnknown
	}
}

func (v *View) emit(ev viewer.Event) {
	if v.eventHandler != nil {
		v.eventHandler(ev)
	}
}

func (v *View) requestOpen() {
	if v.openHandler != nil {
		v.openHandler()
	}
}

func (v *View) SetEventHandler(handler func(viewer.Event)) {
	v.eventHandler = handler
}

func (v *View) SetOpenHandler(handler func()) {
	v.openHandler = handler
}

// ShowFileDialog asks for a PDF file. callback receives "" on cancel.
func (v *View) ShowFileDialog(callback func(path string, err error)) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			callback("", err)
			return
		}
		path := reader.URI().Path()
		reader.Close()
		callback(path, nil)
	}, v.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{document.Extension}))
	d.Show()
}

func (v *View) ShowError(err error) {
	dialog.ShowError(err, v.window)
}

func (v *View) SetTitle(title string) {
	v.window.SetTitle(title)
}

// Surface

func (v *View) CanvasWidth() int {
	if w := int(v.scroll.Size().Width); w > 0 {
		return w
	}
	return v.canvasSize.X
}

func (v *View) ScreenSize() image.Point {
	return v.screen
}

func (v *View) WindowSize() image.Point {
	size := v.window.Canvas().Size()
	return image.Pt(int(size.Width), int(size.Height))
}

func (v *View) Draw(frame *viewer.Frame) {
	v.page.SetFrame(frame.Image, frame.X)
}

func (v *View) Clear() {
	v.page.Clear()
	v.scroll.Offset = fyne.Position{}
	v.scroll.Refresh()
}

func (v *View) SetScrollRegion(region image.Rectangle) {
	v.page.SetRegion(region)
	v.scroll.Refresh()
}

// Scroll moves by units of a tenth of the visible area, clamped to the
// scroll region.
func (v *View) Scroll(dx, dy int) {
	view := v.scroll.Size()
	content := v.page.MinSize()
	offset := v.scroll.Offset
	offset.X = clamp(offset.X+float32(dx)*view.Width/10, 0, content.Width-view.Width)
	offset.Y = clamp(offset.Y+float32(dy)*view.Height/10, 0, content.Height-view.Height)
	v.scroll.Offset = offset
	v.scroll.Refresh()
}

func clamp(value, lo, hi float32) float32 {
	if hi < lo {
		hi = lo
	}
	return min(max(value, lo), hi)
}

func (v *View) ResizeCanvas(size image.Point) {
	v.canvasSize = size
	v.scroll.SetMinSize(fyne.NewSize(float32(size.X), float32(size.Y)))

	bar := theme.Size(theme.SizeNameScrollBar)
	toolbar := v.toolbar.GetContainer().MinSize()
	v.window.Resize(fyne.NewSize(
		float32(size.X)+bar+windowChrome,
		float32(size.Y)+toolbar.Height+bar+windowChrome,
	))
}

func (v *View) ResizeWindow(size image.Point) {
	v.window.Resize(fyne.NewSize(float32(size.X), float32(size.Y)))
}

// Indicator

func (v *View) ShowPageNumber(page int)                  { v.toolbar.ShowPageNumber(page) }
func (v *View) ShowPageCount(count int)                  { v.toolbar.ShowPageCount(count) }
func (v *View) ShowZoom(percent int)                     { v.toolbar.ShowZoom(percent) }
func (v *View) ShowCanvasScale(percent int)              { v.toolbar.ShowCanvasScale(percent) }
func (v *View) ShowJustification(j viewer.Justification) { v.toolbar.ShowJustification(j) }

func (v *View) Show() {
	v.window.Show()
}
