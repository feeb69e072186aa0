package viewer

import "image"

// Surface is the scrollable widget that displays frames.
type Surface interface {
	// CanvasWidth is the current visible width of the canvas in pixels.
	CanvasWidth() int
	// ScreenSize is the size of the screen the window lives on.
	ScreenSize() image.Point
	// WindowSize is the current outer size of the window.
	WindowSize() image.Point

	// Draw replaces the displayed bitmap, anchored at (frame.X, 0).
	Draw(frame *Frame)
	// Clear removes the displayed bitmap and empties the scroll region.
	Clear()
	// SetScrollRegion sets the scrollable extent of the canvas.
	SetScrollRegion(region image.Rectangle)
	// Scroll moves the view by whole scroll units.
	Scroll(dx, dy int)

	// ResizeCanvas sets the visible canvas size and fits the window to it.
	ResizeCanvas(size image.Point)
	// ResizeWindow sets the outer window size.
	ResizeWindow(size image.Point)
}

// Indicator shows page and zoom information next to the canvas.
type Indicator interface {
	ShowPageNumber(page int)
	ShowPageCount(count int)
	ShowZoom(percent int)
	ShowCanvasScale(percent int)
	ShowJustification(j Justification)
}

type nopIndicator struct{}

func (nopIndicator) ShowPageNumber(int)              {}
func (nopIndicator) ShowPageCount(int)               {}
func (nopIndicator) ShowZoom(int)                    {}
func (nopIndicator) ShowCanvasScale(int)             {}
func (nopIndicator) ShowJustification(Justification) {}
