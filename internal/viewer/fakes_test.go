package viewer

import (
	"errors"
	"image"

	"pdf-reader/internal/document"
)

type fakeSource struct {
	pages   int
	width   int
	height  int
	openErr error
	opened  []*fakeDocument
}

func (s *fakeSource) Open(path string) (document.Document, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	doc := &fakeDocument{path: path, pages: s.pages, width: s.width, height: s.height}
	s.opened = append(s.opened, doc)
	return doc, nil
}

// failingSource opens documents whose pages cannot be rendered.
type failingSource struct {
	*fakeSource
}

func (s failingSource) Open(path string) (document.Document, error) {
	doc, err := s.fakeSource.Open(path)
	if err != nil {
		return nil, err
	}
	doc.(*fakeDocument).renderErr = errors.New("bad content stream")
	return doc, nil
}

type fakeDocument struct {
	path      string
	pages     int
	width     int
	height    int
	renders   []int
	renderErr error
	closed    bool
}

func (d *fakeDocument) Path() string   { return d.path }
func (d *fakeDocument) PageCount() int { return d.pages }

func (d *fakeDocument) Render(index int, zoom float64) (image.Image, error) {
	if d.renderErr != nil {
		return nil, &document.DocumentError{Op: "render", Path: d.path, Page: index, Err: d.renderErr}
	}
	d.renders = append(d.renders, index)
	w := int(float64(d.width)*zoom + 0.5)
	h := int(float64(d.height)*zoom + 0.5)
	return image.NewGray(image.Rect(0, 0, w, h)), nil
}

func (d *fakeDocument) Close() error {
	if d.closed {
		return errors.New("already closed")
	}
	d.closed = true
	return nil
}

type fakeSurface struct {
	canvasWidth int
	screen      image.Point
	window      image.Point

	frames  []*Frame
	shown   *Frame
	region  image.Rectangle
	scrollX int
	scrollY int
	canvas  image.Point
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		canvasWidth: 800,
		screen:      image.Pt(1920, 1080),
		window:      image.Pt(1000, 700),
	}
}

func (s *fakeSurface) CanvasWidth() int        { return s.canvasWidth }
func (s *fakeSurface) ScreenSize() image.Point { return s.screen }
func (s *fakeSurface) WindowSize() image.Point { return s.window }
func (s *fakeSurface) Draw(frame *Frame) {
	s.frames = append(s.frames, frame)
	s.shown = frame
}

func (s *fakeSurface) Clear() {
	s.shown = nil
	s.region = image.Rectangle{}
}

func (s *fakeSurface) SetScrollRegion(region image.Rectangle) { s.region = region }

func (s *fakeSurface) Scroll(dx, dy int) {
	s.scrollX += dx
	s.scrollY += dy
}

func (s *fakeSurface) ResizeCanvas(size image.Point) {
	s.canvas = size
	s.canvasWidth = size.X
}

func (s *fakeSurface) ResizeWindow(size image.Point) { s.window = size }

func (s *fakeSurface) lastFrame() *Frame {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

type fakeIndicator struct {
	page        int
	count       int
	zoom        int
	canvasScale int
	justify     Justification
}

func (i *fakeIndicator) ShowPageNumber(page int)           { i.page = page }
func (i *fakeIndicator) ShowPageCount(count int)           { i.count = count }
func (i *fakeIndicator) ShowZoom(percent int)              { i.zoom = percent }
func (i *fakeIndicator) ShowCanvasScale(percent int)       { i.canvasScale = percent }
func (i *fakeIndicator) ShowJustification(j Justification) { i.justify = j }
