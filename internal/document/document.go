// Package document opens PDF files and rasterizes their pages.
//
// Two backends are provided: FitzSource renders through MuPDF and is the
// default, PreviewSource is a pure Go fallback that draws the text layer
// of each page read with ledongthuc/pdf.
package document

import (
	"errors"
	"fmt"
	"image"
	"strings"
)

// Extension is the file extension the viewer opens.
const Extension = ".pdf"

// Backend names accepted by NewSource.
const (
	BackendMuPDF   = "mupdf"
	BackendPreview = "preview"
)

// ErrPageRange is returned when a page index is outside the document.
var ErrPageRange = errors.New("page index out of range")

// Source opens documents.
type Source interface {
	Open(path string) (Document, error)
}

// Document is an opened file with an ordered, immutable list of pages.
type Document interface {
	Path() string
	PageCount() int
	// Render rasterizes page index at the given linear zoom, 1.0 being 72 DPI.
	Render(index int, zoom float64) (image.Image, error)
	Close() error
}

// DocumentError reports a failure to open or render a document.
type DocumentError struct {
	Op   string
	Path string
	Page int
	Err  error
}

func (e *DocumentError) Error() string {
	if e.Op == "render" {
		return fmt.Sprintf("%s %s page %d: %v", e.Op, e.Path, e.Page+1, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// NewSource returns the Source registered under backend.
func NewSource(backend string) (Source, error) {
	switch strings.ToLower(backend) {
	case "", BackendMuPDF:
		return FitzSource{}, nil
	case BackendPreview:
		return NewPreviewSource(), nil
	default:
		return nil, fmt.Errorf("unknown rendering backend %q", backend)
	}
}

// IsDocumentFile reports whether path carries the extension the viewer opens.
func IsDocumentFile(path string) bool {
	return strings.EqualFold(extension(path), Extension)
}

func extension(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 || strings.ContainsAny(path[i:], `/\`) {
		return ""
	}
	return path[i:]
}

func checkIndex(index, count int) error {
	if index < 0 || index >= count {
		return fmt.Errorf("%w: %d of %d", ErrPageRange, index, count)
	}
	return nil
}
