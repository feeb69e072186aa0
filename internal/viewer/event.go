package viewer

import "fmt"

// Modifier is a bit set of keyboard modifiers held during an input event.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// Primary reports whether the platform's primary modifier (Control, or
// Command on macOS) is held.
func (m Modifier) Primary() bool {
	return m&(ModControl|ModSuper) != 0
}

// Key identifies the navigation keys the viewer reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyRight
	KeyLeft
	KeyPageDown
	KeyPageUp
	KeySpace
	KeyHome
	KeyEnd
	KeyPlus
	KeyMinus
)

// EventKind tags an Event.
type EventKind int

const (
	EventOpen EventKind = iota
	EventReload
	EventNext
	EventPrevious
	EventGoTo
	EventZoomIn
	EventZoomOut
	EventSetZoom
	EventSetCanvasScale
	EventSetJustification
	EventPress
	EventMotion
	EventRelease
	EventWheel
	EventKey
)

var eventNames = map[EventKind]string{
	EventOpen:             "open",
	EventReload:           "reload",
	EventNext:             "next",
	EventPrevious:         "previous",
	EventGoTo:             "goto",
	EventZoomIn:           "zoom-in",
	EventZoomOut:          "zoom-out",
	EventSetZoom:          "set-zoom",
	EventSetCanvasScale:   "set-canvas-scale",
	EventSetJustification: "set-justification",
	EventPress:            "press",
	EventMotion:           "motion",
	EventRelease:          "release",
	EventWheel:            "wheel",
	EventKey:              "key",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one user input. Which fields are meaningful depends on Kind:
// Text for Open (path), GoTo, SetZoom, SetCanvasScale and
// SetJustification; X and Y for Press and Motion; Delta (notches) for
// Wheel; Key for Key; Mods for Press, Release, Wheel and Key.
type Event struct {
	Kind  EventKind
	Text  string
	X, Y  int
	Delta int
	Key   Key
	Mods  Modifier
}

// Dispatch applies ev to the controller. It is the single entry point the
// toolkit layer feeds input through.
func (c *Controller) Dispatch(ev Event) error {
	switch ev.Kind {
	case EventOpen:
		return c.OpenDocument(ev.Text)
	case EventReload:
		return c.Reload()
	case EventNext:
		return c.NextPage()
	case EventPrevious:
		return c.PreviousPage()
	case EventGoTo:
		return c.GoToPage(ev.Text)
	case EventZoomIn:
		return c.ZoomIn()
	case EventZoomOut:
		return c.ZoomOut()
	case EventSetZoom:
		return c.SetZoom(ev.Text)
	case EventSetCanvasScale:
		c.SetCanvasScale(ev.Text)
		return nil
	case EventSetJustification:
		return c.SetJustification(ev.Text)
	case EventPress:
		return c.Press(ev.X, ev.Y, ev.Mods)
	case EventMotion:
		c.Motion(ev.X, ev.Y)
		return nil
	case EventRelease:
		return c.Release(ev.Mods)
	case EventWheel:
		return c.Wheel(ev.Delta, ev.Mods)
	case EventKey:
		return c.key(ev.Key, ev.Mods)
	default:
		return fmt.Errorf("unhandled event %s", ev.Kind)
	}
}

func (c *Controller) key(k Key, mods Modifier) error {
	switch k {
	case KeyRight, KeyPageDown, KeySpace:
		return c.NextPage()
	case KeyLeft, KeyPageUp:
		return c.PreviousPage()
	case KeyHome:
		return c.FirstPage()
	case KeyEnd:
		return c.LastPage()
	case KeyPlus:
		if mods.Primary() {
			return c.ZoomIn()
		}
	case KeyMinus:
		if mods.Primary() {
			return c.ZoomOut()
		}
	}
	return nil
}
