// Package viewer holds the view state of an open document and turns user
// input into page renders.
package viewer

import (
	"fmt"
	"image"
	"strings"
)

// Justification is the horizontal alignment of a page inside the canvas.
type Justification int

const (
	JustifyLeft Justification = iota
	JustifyCenter
	JustifyRight
)

// Justifications lists the values in the order the UI offers them.
var Justifications = []Justification{JustifyLeft, JustifyCenter, JustifyRight}

func (j Justification) String() string {
	switch j {
	case JustifyLeft:
		return "Left"
	case JustifyRight:
		return "Right"
	default:
		return "Center"
	}
}

// ParseJustification accepts Left, Center or Right in any case.
func ParseJustification(s string) (Justification, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return JustifyLeft, nil
	case "center", "centre":
		return JustifyCenter, nil
	case "right":
		return JustifyRight, nil
	default:
		return JustifyCenter, fmt.Errorf("unknown justification %q", s)
	}
}

// Zoom and canvas scale limits, as fractions.
const (
	ZoomStep       = 0.05
	MinZoom        = 0.05
	MinCanvasScale = 0.20
	MaxCanvasScale = 0.80
)

// DragState tracks a press-motion-release gesture on the canvas.
type DragState struct {
	OriginX, OriginY int
	Dragging         bool
}

// ViewState is everything that decides what the canvas shows.
type ViewState struct {
	Page          int
	PageCount     int
	Zoom          float64
	CanvasScale   float64
	Justification Justification
	Drag          DragState
}

// ZoomPercent is the zoom as the whole percentage shown to the user.
func (s ViewState) ZoomPercent() int {
	return int(s.Zoom*100 + 1e-9)
}

// Frame is the rendered bitmap of the current page and where it sits.
type Frame struct {
	Page  int
	Image image.Image
	X     int
}

// Width of the bitmap in pixels.
func (f *Frame) Width() int { return f.Image.Bounds().Dx() }

// Height of the bitmap in pixels.
func (f *Frame) Height() int { return f.Image.Bounds().Dy() }
