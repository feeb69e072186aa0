package viewer

import (
	"errors"
	"image"
	"strconv"
	"testing"

	"pdf-reader/internal/document"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	source    *fakeSource
	surface   *fakeSurface
	indicator *fakeIndicator
	ctrl      *Controller
}

func newHarness(t *testing.T, pages int) *harness {
	t.Helper()
	h := &harness{
		source:    &fakeSource{pages: pages, width: 600, height: 800},
		surface:   newFakeSurface(),
		indicator: &fakeIndicator{},
	}
	h.ctrl = NewController(Options{
		Source:        h.source,
		Surface:       h.surface,
		Indicator:     h.indicator,
		Justification: JustifyCenter,
	})
	h.surface.canvasWidth = 800
	return h
}

func openHarness(t *testing.T, pages int) *harness {
	t.Helper()
	h := newHarness(t, pages)
	require.NoError(t, h.ctrl.OpenDocument("doc.pdf"))
	return h
}

func TestNewControllerDefaults(t *testing.T) {
	c := NewController(Options{Source: &fakeSource{}, Surface: newFakeSurface(), Zoom: -1, CanvasScale: 0.95})
	assert.Equal(t, DefaultZoom, c.State().Zoom)
	assert.Equal(t, DefaultCanvasScale, c.State().CanvasScale)
	assert.Nil(t, c.Document())
	assert.Nil(t, c.Frame())
}

func TestStartSizesCanvas(t *testing.T) {
	h := newHarness(t, 1)
	h.ctrl.Start()

	assert.Equal(t, image.Pt(960, 540), h.surface.canvas)
	assert.Equal(t, 50, h.indicator.canvasScale)
	assert.Equal(t, 100, h.indicator.zoom)
	assert.Equal(t, JustifyCenter, h.indicator.justify)
}

func TestOpenDocument(t *testing.T) {
	h := openHarness(t, 5)

	st := h.ctrl.State()
	assert.Equal(t, 0, st.Page)
	assert.Equal(t, 5, st.PageCount)
	assert.Equal(t, 5, h.indicator.count)
	assert.Equal(t, 1, h.indicator.page)

	frame := h.surface.lastFrame()
	require.NotNil(t, frame)
	assert.Equal(t, 0, frame.Page)
	assert.Equal(t, 100, frame.X)
	assert.Equal(t, image.Rect(0, 0, 800, 800), h.surface.region)
	assert.Same(t, frame, h.ctrl.Frame())

	// Window follows the page geometry after a load.
	assert.Equal(t, image.Pt(1000, 864), h.surface.window)
}

func TestOpenDocumentCancelled(t *testing.T) {
	h := newHarness(t, 5)
	require.NoError(t, h.ctrl.OpenDocument(""))
	assert.Empty(t, h.source.opened)
	assert.Nil(t, h.ctrl.Document())
}

func TestOpenDocumentFailure(t *testing.T) {
	h := openHarness(t, 3)
	require.NoError(t, h.ctrl.NextPage())
	first := h.source.opened[0]

	h.source.openErr = errors.New("not a pdf")
	err := h.ctrl.OpenDocument("broken.pdf")

	var docErr *document.DocumentError
	require.ErrorAs(t, err, &docErr)
	assert.Equal(t, "broken.pdf", docErr.Path)
	assert.Equal(t, "open", docErr.Op)

	// The previous document stays on screen.
	assert.Same(t, first, h.ctrl.Document())
	assert.False(t, first.closed)
	assert.Equal(t, 1, h.ctrl.State().Page)
}

func TestOpenDocumentRetainsZoomAndJustification(t *testing.T) {
	h := openHarness(t, 4)
	require.NoError(t, h.ctrl.SetZoom("50%"))
	require.NoError(t, h.ctrl.SetJustification("Right"))
	require.NoError(t, h.ctrl.GoToPage("3"))
	first := h.source.opened[0]

	require.NoError(t, h.ctrl.OpenDocument("other.pdf"))

	st := h.ctrl.State()
	assert.Equal(t, 0, st.Page)
	assert.Equal(t, 0.5, st.Zoom)
	assert.Equal(t, JustifyRight, st.Justification)
	assert.True(t, first.closed)
	assert.Equal(t, 500, h.surface.lastFrame().X)
}

func TestOpenEmptyDocument(t *testing.T) {
	h := newHarness(t, 0)
	require.NoError(t, h.ctrl.OpenDocument("empty.pdf"))
	assert.Empty(t, h.surface.frames)
	assert.NoError(t, h.ctrl.NextPage())
	assert.NoError(t, h.ctrl.LastPage())
	assert.Empty(t, h.surface.frames)
}

func TestOpenEmptyDocumentClearsPreviousPage(t *testing.T) {
	h := openHarness(t, 3)
	first := h.source.opened[0]
	require.NotNil(t, h.surface.shown)

	h.source.pages = 0
	require.NoError(t, h.ctrl.OpenDocument("empty.pdf"))

	assert.True(t, first.closed)
	assert.Nil(t, h.ctrl.Frame())
	assert.Nil(t, h.surface.shown)
	assert.Equal(t, image.Rectangle{}, h.surface.region)
	assert.Equal(t, 0, h.indicator.count)
}

func TestOpenDocumentRenderFailureClearsPreviousPage(t *testing.T) {
	h := openHarness(t, 3)

	// A fresh document whose first page fails to render.
	h.ctrl.source = failingSource{&fakeSource{pages: 2, width: 600, height: 800}}
	err := h.ctrl.OpenDocument("bad.pdf")

	var docErr *document.DocumentError
	require.ErrorAs(t, err, &docErr)
	assert.Equal(t, "render", docErr.Op)
	assert.Nil(t, h.surface.shown)
	assert.Nil(t, h.ctrl.Frame())
}

func TestGoToPageEveryPage(t *testing.T) {
	const pages = 7
	h := openHarness(t, pages)
	for n := 0; n < pages; n++ {
		require.NoError(t, h.ctrl.GoToPage(strconv.Itoa(n+1)))
		assert.Equal(t, n, h.ctrl.State().Page)
		assert.Equal(t, n+1, h.indicator.page)
	}
}

func TestGoToPageIgnoresBadInput(t *testing.T) {
	h := openHarness(t, 5)
	require.NoError(t, h.ctrl.GoToPage("3"))

	for _, in := range []string{"0", "6", "-1", "abc", "", "2.5"} {
		t.Run(in, func(t *testing.T) {
			h.indicator.page = 99
			require.NoError(t, h.ctrl.GoToPage(in))
			assert.Equal(t, 2, h.ctrl.State().Page)
			assert.Equal(t, 3, h.indicator.page, "indicator restored")
		})
	}
}

func TestGoToPageWithoutDocument(t *testing.T) {
	h := newHarness(t, 5)
	require.NoError(t, h.ctrl.GoToPage("1"))
	assert.Empty(t, h.surface.frames)
}

func TestNavigationBounds(t *testing.T) {
	h := openHarness(t, 3)

	require.NoError(t, h.ctrl.PreviousPage())
	assert.Equal(t, 0, h.ctrl.State().Page)
	assert.Len(t, h.surface.frames, 1, "previous at first page renders nothing")

	require.NoError(t, h.ctrl.NextPage())
	require.NoError(t, h.ctrl.NextPage())
	assert.Equal(t, 2, h.ctrl.State().Page)

	drawn := len(h.surface.frames)
	require.NoError(t, h.ctrl.NextPage())
	assert.Equal(t, 2, h.ctrl.State().Page)
	assert.Len(t, h.surface.frames, drawn, "next at last page renders nothing")

	require.NoError(t, h.ctrl.FirstPage())
	assert.Equal(t, 0, h.ctrl.State().Page)
	require.NoError(t, h.ctrl.LastPage())
	assert.Equal(t, 2, h.ctrl.State().Page)
}

func TestNavigationWithoutDocument(t *testing.T) {
	h := newHarness(t, 3)
	assert.NoError(t, h.ctrl.NextPage())
	assert.NoError(t, h.ctrl.PreviousPage())
	assert.Empty(t, h.surface.frames)
}

func TestShowPageOutOfRange(t *testing.T) {
	h := openHarness(t, 2)
	require.NoError(t, h.ctrl.ShowPage(7))
	require.NoError(t, h.ctrl.ShowPage(-1))
	assert.Equal(t, 0, h.ctrl.State().Page)
}

func TestShowPageRenderFailure(t *testing.T) {
	h := openHarness(t, 3)
	before := h.ctrl.Frame()
	h.source.opened[0].renderErr = errors.New("corrupt stream")

	err := h.ctrl.NextPage()
	var docErr *document.DocumentError
	require.ErrorAs(t, err, &docErr)
	assert.Equal(t, "render", docErr.Op)
	assert.Equal(t, 0, h.ctrl.State().Page)
	assert.Same(t, before, h.ctrl.Frame())
}

func TestZoomRenderFailureKeepsZoom(t *testing.T) {
	h := openHarness(t, 3)
	before := h.ctrl.Frame()
	h.source.opened[0].renderErr = errors.New("boom")

	require.Error(t, h.ctrl.ZoomIn())
	assert.Equal(t, 1.0, h.ctrl.State().Zoom)
	assert.Equal(t, 100, h.indicator.zoom)
	assert.Same(t, before, h.ctrl.Frame())
	assert.Equal(t, 600, h.surface.shown.Width())

	require.Error(t, h.ctrl.SetZoom("250%"))
	assert.Equal(t, 1.0, h.ctrl.State().Zoom)
	assert.Equal(t, 100, h.indicator.zoom)
}

func TestJustificationRenderFailureKeepsPlacement(t *testing.T) {
	h := openHarness(t, 1)
	h.source.opened[0].renderErr = errors.New("boom")

	require.Error(t, h.ctrl.SetJustification("Right"))
	assert.Equal(t, JustifyCenter, h.ctrl.State().Justification)
	assert.Equal(t, JustifyCenter, h.indicator.justify)
	assert.Equal(t, 100, h.surface.shown.X)
}

func TestZoomSteps(t *testing.T) {
	h := openHarness(t, 1)

	require.NoError(t, h.ctrl.ZoomIn())
	assert.InDelta(t, 1.05, h.ctrl.State().Zoom, 1e-9)
	assert.Equal(t, 105, h.indicator.zoom)
	assert.Equal(t, 630, h.surface.lastFrame().Width())

	require.NoError(t, h.ctrl.ZoomOut())
	require.NoError(t, h.ctrl.ZoomOut())
	assert.InDelta(t, 0.95, h.ctrl.State().Zoom, 1e-9)
	assert.Equal(t, 95, h.indicator.zoom)
}

func TestZoomOutFloor(t *testing.T) {
	h := openHarness(t, 1)
	for i := 0; i < 100; i++ {
		require.NoError(t, h.ctrl.ZoomOut())
		assert.GreaterOrEqual(t, h.ctrl.State().Zoom, MinZoom)
	}
	assert.Equal(t, MinZoom, h.ctrl.State().Zoom)
	assert.Equal(t, 5, h.indicator.zoom)

	require.NoError(t, h.ctrl.SetZoom("7%"))
	require.NoError(t, h.ctrl.ZoomOut())
	assert.Equal(t, MinZoom, h.ctrl.State().Zoom)
}

func TestSetZoom(t *testing.T) {
	h := openHarness(t, 1)

	require.NoError(t, h.ctrl.SetZoom("200%"))
	assert.Equal(t, 2.0, h.ctrl.State().Zoom)
	assert.Equal(t, 1200, h.surface.lastFrame().Width())
	assert.Equal(t, image.Rect(0, 0, 1200, 1600), h.surface.region)
	assert.Equal(t, 0, h.surface.lastFrame().X)

	for _, in := range []string{"0", "-50%", "abc", "", "NaN"} {
		t.Run(in, func(t *testing.T) {
			require.NoError(t, h.ctrl.SetZoom(in))
			assert.Equal(t, 2.0, h.ctrl.State().Zoom)
			assert.Equal(t, 200, h.indicator.zoom)
		})
	}
}

func TestZoomWithoutDocument(t *testing.T) {
	h := newHarness(t, 1)
	require.NoError(t, h.ctrl.ZoomIn())
	assert.InDelta(t, 1.05, h.ctrl.State().Zoom, 1e-9)
	assert.Empty(t, h.surface.frames)
}

func TestSetCanvasScale(t *testing.T) {
	h := newHarness(t, 1)
	h.ctrl.Start()

	assert.False(t, h.ctrl.SetCanvasScale("10%"))
	assert.False(t, h.ctrl.SetCanvasScale("90%"))
	assert.False(t, h.ctrl.SetCanvasScale("big"))
	assert.Equal(t, 0.5, h.ctrl.State().CanvasScale)
	assert.Equal(t, 50, h.indicator.canvasScale)

	assert.True(t, h.ctrl.SetCanvasScale("20%"))
	assert.Equal(t, image.Pt(384, 216), h.surface.canvas)
	assert.True(t, h.ctrl.SetCanvasScale("80"))
	assert.True(t, h.ctrl.SetCanvasScale("50%"))
	assert.Equal(t, 0.5, h.ctrl.State().CanvasScale)
	assert.Equal(t, image.Pt(960, 540), h.surface.canvas)
}

func TestJustificationPlacement(t *testing.T) {
	h := openHarness(t, 1)

	tests := []struct {
		value string
		want  int
	}{
		{"Right", 200},
		{"Left", 0},
		{"Center", 100},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			require.NoError(t, h.ctrl.SetJustification(tt.value))
			assert.Equal(t, tt.want, h.surface.lastFrame().X)
			assert.Equal(t, image.Rect(0, 0, 800, 800), h.surface.region)
		})
	}

	require.NoError(t, h.ctrl.SetJustification("diagonal"))
	assert.Equal(t, JustifyCenter, h.ctrl.State().Justification)
	assert.Equal(t, JustifyCenter, h.indicator.justify)
}

func TestDragDoesNotAdvance(t *testing.T) {
	h := openHarness(t, 3)

	require.NoError(t, h.ctrl.Press(100, 50, 0))
	h.ctrl.Motion(140, 52)
	require.NoError(t, h.ctrl.Release(0))

	assert.Equal(t, 0, h.ctrl.State().Page)
	assert.Equal(t, -20, h.surface.scrollX)
	assert.True(t, h.ctrl.State().Drag.Dragging)
}

func TestDragScrollUnits(t *testing.T) {
	h := openHarness(t, 3)

	require.NoError(t, h.ctrl.Press(100, 0, 0))
	h.ctrl.Motion(97, 0) // -(-3)/2 truncates to 1
	assert.Equal(t, 1, h.surface.scrollX)
	h.ctrl.Motion(96, 0) // -(-1)/2 truncates to 0
	assert.Equal(t, 1, h.surface.scrollX)
	assert.Equal(t, 96, h.ctrl.State().Drag.OriginX)
}

func TestClickAdvances(t *testing.T) {
	h := openHarness(t, 3)

	require.NoError(t, h.ctrl.Press(100, 50, 0))
	require.NoError(t, h.ctrl.Release(0))
	assert.Equal(t, 1, h.ctrl.State().Page)

	// A drag in an earlier gesture does not leak into the next click.
	require.NoError(t, h.ctrl.Press(0, 0, 0))
	h.ctrl.Motion(10, 0)
	require.NoError(t, h.ctrl.Release(0))
	require.NoError(t, h.ctrl.Press(0, 0, 0))
	require.NoError(t, h.ctrl.Release(0))
	assert.Equal(t, 2, h.ctrl.State().Page)
}

func TestModifierClickGoesBack(t *testing.T) {
	h := openHarness(t, 3)
	require.NoError(t, h.ctrl.GoToPage("3"))

	require.NoError(t, h.ctrl.Press(10, 10, ModControl))
	require.NoError(t, h.ctrl.Release(ModControl))
	assert.Equal(t, 1, h.ctrl.State().Page)

	require.NoError(t, h.ctrl.Press(10, 10, ModSuper))
	require.NoError(t, h.ctrl.Release(ModSuper))
	assert.Equal(t, 0, h.ctrl.State().Page)
}

func TestWheel(t *testing.T) {
	h := openHarness(t, 1)

	require.NoError(t, h.ctrl.Wheel(1, 0))
	assert.Equal(t, -1, h.surface.scrollY)
	require.NoError(t, h.ctrl.Wheel(-3, ModShift))
	assert.Equal(t, 2, h.surface.scrollY)
	assert.Equal(t, 1.0, h.ctrl.State().Zoom)

	require.NoError(t, h.ctrl.Wheel(2, ModControl))
	assert.InDelta(t, 1.10, h.ctrl.State().Zoom, 1e-9)
	require.NoError(t, h.ctrl.Wheel(-1, ModControl))
	assert.InDelta(t, 1.05, h.ctrl.State().Zoom, 1e-9)

	require.NoError(t, h.ctrl.Wheel(0, ModControl))
	assert.InDelta(t, 1.05, h.ctrl.State().Zoom, 1e-9)
}

func TestReloadKeepsPage(t *testing.T) {
	h := openHarness(t, 5)
	require.NoError(t, h.ctrl.GoToPage("4"))
	first := h.source.opened[0]

	require.NoError(t, h.ctrl.Reload())
	assert.True(t, first.closed)
	assert.Equal(t, 3, h.ctrl.State().Page)

	h.source.pages = 2
	require.NoError(t, h.ctrl.Reload())
	assert.Equal(t, 1, h.ctrl.State().Page)
	assert.Equal(t, 2, h.indicator.count)
}

func TestReloadFailureKeepsDocument(t *testing.T) {
	h := openHarness(t, 2)
	first := h.source.opened[0]
	h.source.openErr = errors.New("truncated")

	assert.Error(t, h.ctrl.Reload())
	assert.Same(t, first, h.ctrl.Document())
	assert.False(t, first.closed)
}

func TestCloseReleasesDocument(t *testing.T) {
	h := openHarness(t, 2)
	first := h.source.opened[0]

	require.NoError(t, h.ctrl.Close())
	assert.True(t, first.closed)
	assert.Nil(t, h.ctrl.Document())
	assert.Nil(t, h.ctrl.Frame())
	assert.NoError(t, h.ctrl.Close())
	assert.NoError(t, h.ctrl.Reload())
}

func TestTimingsRecorded(t *testing.T) {
	h := openHarness(t, 3)
	require.NoError(t, h.ctrl.NextPage())

	assert.Equal(t, 1, h.ctrl.Timings().Stats("open").Count)
	assert.Equal(t, 2, h.ctrl.Timings().Stats("render").Count)
}
