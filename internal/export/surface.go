// Package export renders pages without a window, for the command line.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"

	"pdf-reader/internal/viewer"
)

// ErrNoFrame is returned when nothing has been rendered yet.
var ErrNoFrame = errors.New("no page rendered")

// Background matches the canvas colour of the windowed viewer.
var Background = color.RGBA{R: 0xd3, G: 0xd3, B: 0xd3, A: 0xff}

// Surface is an in-memory viewer.Surface. It keeps the last frame and the
// geometry the controller asked for.
type Surface struct {
	screen image.Point
	canvas image.Point
	window image.Point
	region image.Rectangle
	frame  *viewer.Frame
}

func NewSurface(screen image.Point) *Surface {
	return &Surface{screen: screen}
}

func (s *Surface) CanvasWidth() int        { return s.canvas.X }
func (s *Surface) ScreenSize() image.Point { return s.screen }
func (s *Surface) WindowSize() image.Point { return s.window }

func (s *Surface) Draw(frame *viewer.Frame) { s.frame = frame }

func (s *Surface) Clear() {
	s.frame = nil
	s.region = image.Rectangle{}
}

func (s *Surface) SetScrollRegion(region image.Rectangle) { s.region = region }

// Scroll does nothing: exports always cover the whole scroll region.
func (s *Surface) Scroll(dx, dy int) {}

// ResizeCanvas sets the canvas size; the window has no chrome here.
func (s *Surface) ResizeCanvas(size image.Point) {
	s.canvas = size
	s.window = size
}

func (s *Surface) ResizeWindow(size image.Point) { s.window = size }

// Page returns the last rendered page bitmap.
func (s *Surface) Page() (image.Image, error) {
	if s.frame == nil {
		return nil, ErrNoFrame
	}
	return s.frame.Image, nil
}

// Composite draws the last frame at its justified position over the whole
// scroll region, as the window would show it.
func (s *Surface) Composite() (image.Image, error) {
	if s.frame == nil {
		return nil, ErrNoFrame
	}
	dst := image.NewRGBA(s.region)
	draw.Draw(dst, dst.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	src := s.frame.Image
	r := image.Rectangle{Min: image.Pt(s.frame.X, 0)}
	r.Max = r.Min.Add(src.Bounds().Size())
	draw.Draw(dst, r, src, src.Bounds().Min, draw.Over)
	return dst, nil
}

// WritePNG encodes img to w.
func WritePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes img to a new file at path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
