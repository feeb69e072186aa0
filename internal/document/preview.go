package document

import (
	"errors"
	"fmt"
	"image"
	"math"
	"os"

	"github.com/ledongthuc/pdf"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Letter-size fallback used when a page has no usable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
	defaultFontSize   = 10.0
)

// PreviewSource renders the text layer of each page with the Go fonts. It
// needs no native libraries, at the cost of ignoring vector graphics and
// images.
type PreviewSource struct {
	font *opentype.Font
	err  error
}

func NewPreviewSource() *PreviewSource {
	f, err := opentype.Parse(goregular.TTF)
	return &PreviewSource{font: f, err: err}
}

func (s *PreviewSource) Open(path string) (doc Document, err error) {
	if s.err != nil {
		return nil, &DocumentError{Op: "open", Path: path, Err: fmt.Errorf("load font: %w", s.err)}
	}

	var file *os.File
	// The parser reports malformed objects by panicking.
	defer func() {
		if r := recover(); r != nil {
			if file != nil {
				file.Close()
			}
			doc, err = nil, &DocumentError{Op: "open", Path: path, Err: fmt.Errorf("parse: %v", r)}
		}
	}()

	file, r, err := pdf.Open(path)
	if err != nil {
		return nil, &DocumentError{Op: "open", Path: path, Err: err}
	}
	return &previewDocument{
		path:   path,
		file:   file,
		reader: r,
		pages:  max(r.NumPage(), 0),
		font:   s.font,
		faces:  make(map[float64]font.Face),
	}, nil
}

type previewDocument struct {
	path   string
	file   *os.File
	reader *pdf.Reader
	pages  int
	font   *opentype.Font
	faces  map[float64]font.Face
}

func (d *previewDocument) Path() string   { return d.path }
func (d *previewDocument) PageCount() int { return d.pages }

func (d *previewDocument) Render(index int, zoom float64) (img image.Image, err error) {
	if err := checkIndex(index, d.pages); err != nil {
		return nil, d.renderError(index, err)
	}
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, d.renderError(index, fmt.Errorf("parse: %v", r))
		}
	}()

	page := d.reader.Page(index + 1)
	if page.V.IsNull() {
		return nil, d.renderError(index, errors.New("page object missing"))
	}

	box := mediaBox(page)
	width := pixels(box.Dx(), zoom)
	height := pixels(box.Dy(), zoom)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)

	for _, text := range page.Content().Text {
		if text.S == "" {
			continue
		}
		size := text.FontSize
		if size <= 0 {
			size = defaultFontSize
		}
		face, err := d.face(size * zoom)
		if err != nil {
			return nil, d.renderError(index, err)
		}
		drawer := font.Drawer{
			Dst:  dst,
			Src:  image.Black,
			Face: face,
			Dot: fixed.P(
				int(math.Round((text.X-box.X0)*zoom)),
				int(math.Round((box.Y1-text.Y)*zoom)),
			),
		}
		drawer.DrawString(text.S)
	}
	return dst, nil
}

func (d *previewDocument) Close() error {
	for size, face := range d.faces {
		face.Close()
		delete(d.faces, size)
	}
	return d.file.Close()
}

// face returns a cached face for size, rounded to half points.
func (d *previewDocument) face(size float64) (font.Face, error) {
	size = math.Max(math.Round(size*2)/2, 1)
	if face, ok := d.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(d.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face %.1fpt: %w", size, err)
	}
	d.faces[size] = face
	return face, nil
}

func (d *previewDocument) renderError(index int, err error) error {
	return &DocumentError{Op: "render", Path: d.path, Page: index, Err: err}
}

type pageBox struct {
	X0, Y0, X1, Y1 float64
}

func (b pageBox) Dx() float64 { return b.X1 - b.X0 }
func (b pageBox) Dy() float64 { return b.Y1 - b.Y0 }

func mediaBox(page pdf.Page) pageBox {
	v := page.MediaBox()
	if v.Kind() != pdf.Array || v.Len() < 4 {
		return pageBox{X1: defaultPageWidth, Y1: defaultPageHeight}
	}
	box := pageBox{
		X0: v.Index(0).Float64(),
		Y0: v.Index(1).Float64(),
		X1: v.Index(2).Float64(),
		Y1: v.Index(3).Float64(),
	}
	if box.X1 <= box.X0 || box.Y1 <= box.Y0 {
		return pageBox{X1: defaultPageWidth, Y1: defaultPageHeight}
	}
	return box
}

func pixels(points, zoom float64) int {
	return max(int(math.Ceil(points*zoom)), 1)
}
