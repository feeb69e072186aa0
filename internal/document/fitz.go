package document

import (
	"image"

	fitz "github.com/gen2brain/go-fitz"
)

// baseDPI is the resolution that corresponds to a zoom of 1.0.
const baseDPI = 72.0

// FitzSource opens documents with MuPDF.
type FitzSource struct{}

func (FitzSource) Open(path string) (Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, &DocumentError{Op: "open", Path: path, Err: err}
	}
	return &fitzDocument{path: path, doc: doc, pages: doc.NumPage()}, nil
}

type fitzDocument struct {
	path  string
	doc   *fitz.Document
	pages int
}

func (d *fitzDocument) Path() string   { return d.path }
func (d *fitzDocument) PageCount() int { return d.pages }

func (d *fitzDocument) Render(index int, zoom float64) (image.Image, error) {
	if err := checkIndex(index, d.pages); err != nil {
		return nil, &DocumentError{Op: "render", Path: d.path, Page: index, Err: err}
	}
	img, err := d.doc.ImageDPI(index, baseDPI*zoom)
	if err != nil {
		return nil, &DocumentError{Op: "render", Path: d.path, Page: index, Err: err}
	}
	return img, nil
}

func (d *fitzDocument) Close() error {
	return d.doc.Close()
}
