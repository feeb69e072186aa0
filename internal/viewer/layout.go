package viewer

import "image"

// pageAspect is the height/width ratio assumed for window sizing (US Letter).
const pageAspect = 11 / 8.5

// windowHeightFraction of the screen height used when a document loads.
const windowHeightFraction = 0.8

// PlaceX returns the x coordinate of a bitmap of width bitmapWidth inside
// a canvas of width canvasWidth. Pages wider than the canvas always start
// at the left edge.
func PlaceX(j Justification, canvasWidth, bitmapWidth int) int {
	switch j {
	case JustifyLeft:
		return 0
	case JustifyRight:
		return max(canvasWidth-bitmapWidth, 0)
	default:
		return max((canvasWidth-bitmapWidth)/2, 0)
	}
}

// ScrollRegion covers the bitmap, and at least the canvas width.
func ScrollRegion(canvasWidth, bitmapWidth, bitmapHeight int) image.Rectangle {
	return image.Rect(0, 0, max(bitmapWidth, canvasWidth), bitmapHeight)
}

// CanvasSize is the display surface size for a screen and canvas scale.
func CanvasSize(screen image.Point, scale float64) image.Point {
	return image.Pt(int(float64(screen.X)*scale), int(float64(screen.Y)*scale))
}

// DocumentWindowSize is the window size used after a document loads: 80% of
// the screen height, a letter-page width, never narrower than current.
func DocumentWindowSize(screen, current image.Point) image.Point {
	height := int(float64(screen.Y) * windowHeightFraction)
	width := int(float64(height) / pageAspect)
	return image.Pt(max(current.X, width), height)
}
