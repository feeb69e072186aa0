package gui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"pdf-reader/internal/viewer"
)

// Toolbar is the strip of navigation and zoom controls under the page.
type Toolbar struct {
	container *fyne.Container

	previousButton      *widget.Button
	nextButton          *widget.Button
	pageEntry           *widget.Entry
	pageCountLabel      *widget.Label
	justificationSelect *widget.Select
	canvasZoomEntry     *widget.Entry
	zoomOutButton       *widget.Button
	zoomEntry           *widget.Entry
	zoomInButton        *widget.Button

	eventHandler func(viewer.Event)

	// updating suppresses change callbacks while the controller writes values
	updating bool
}

func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents()
	toolbar.buildLayout()
	return toolbar
}

func (t *Toolbar) createComponents() {
	t.previousButton = widget.NewButton("Previous", func() { t.emit(viewer.Event{Kind: viewer.EventPrevious}) })
	t.nextButton = widget.NewButton("Next", func() { t.emit(viewer.Event{Kind: viewer.EventNext}) })

	t.pageEntry = newNumberEntry("")
	t.pageEntry.OnSubmitted = func(text string) {
		t.emit(viewer.Event{Kind: viewer.EventGoTo, Text: text})
	}
	t.pageCountLabel = widget.NewLabel("/0")

	options := make([]string, len(viewer.Justifications))
	for i, j := range viewer.Justifications {
		options[i] = j.String()
	}
	t.justificationSelect = widget.NewSelect(options, t.onJustificationChanged)

	t.canvasZoomEntry = newNumberEntry("50%")
	t.canvasZoomEntry.OnSubmitted = func(text string) {
		t.emit(viewer.Event{Kind: viewer.EventSetCanvasScale, Text: text})
	}

	t.zoomOutButton = widget.NewButton("-", func() { t.emit(viewer.Event{Kind: viewer.EventZoomOut}) })
	t.zoomEntry = newNumberEntry("100%")
	t.zoomEntry.OnSubmitted = func(text string) {
		t.emit(viewer.Event{Kind: viewer.EventSetZoom, Text: text})
	}
	t.zoomInButton = widget.NewButton("+", func() { t.emit(viewer.Event{Kind: viewer.EventZoomIn}) })
}

func newNumberEntry(text string) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetText(text)
	return entry
}

func (t *Toolbar) buildLayout() {
	navigation := container.NewHBox(
		t.previousButton,
		t.nextButton,
		container.NewGridWrap(fyne.NewSize(64, t.pageEntry.MinSize().Height), t.pageEntry),
		t.pageCountLabel,
		widget.NewLabel("Justification:"),
		t.justificationSelect,
	)

	zoom := container.NewHBox(
		widget.NewLabel("Canvas Zoom:"),
		container.NewGridWrap(fyne.NewSize(72, t.canvasZoomEntry.MinSize().Height), t.canvasZoomEntry),
		t.zoomOutButton,
		container.NewGridWrap(fyne.NewSize(72, t.zoomEntry.MinSize().Height), t.zoomEntry),
		t.zoomInButton,
	)

	t.container = container.NewBorder(nil, nil, navigation, zoom)
}

func (t *Toolbar) onJustificationChanged(value string) {
	if t.updating {
		return
	}
	t.emit(viewer.Event{Kind: viewer.EventSetJustification, Text: value})
}

func (t *Toolbar) emit(ev viewer.Event) {
	if t.eventHandler != nil {
		t.eventHandler(ev)
	}
}

func (t *Toolbar) SetEventHandler(handler func(viewer.Event)) {
	t.eventHandler = handler
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}

func (t *Toolbar) ShowPageNumber(page int) {
	t.pageEntry.SetText(strconv.Itoa(page))
}

func (t *Toolbar) ShowPageCount(count int) {
	t.pageCountLabel.SetText(fmt.Sprintf("/%d", count))
}

func (t *Toolbar) ShowZoom(percent int) {
	t.zoomEntry.SetText(fmt.Sprintf("%d%%", percent))
}

func (t *Toolbar) ShowCanvasScale(percent int) {
	t.canvasZoomEntry.SetText(fmt.Sprintf("%d%%", percent))
}

func (t *Toolbar) ShowJustification(j viewer.Justification) {
	t.updating = true
	defer func() { t.updating = false }()
	t.justificationSelect.SetSelected(j.String())
}
