package galaxymap

import (
	"fmt"
	"math"
)

// Default gesture tuning. These reproduce the course map's feel; they are
// empirical UI values, so Options exposes all of them rather than deriving
// anything.
const (
	defaultWheelZoomIn      = 1.1
	defaultWheelZoomOut     = 0.9
	defaultPinchSensitivity = 1.0
	defaultClickDeadZone    = 4.0 // pixels
)

// Options configures a Map. Zero values select the defaults noted on each
// field; collaborator fields may be nil, in which case the map degrades (all
// nodes locked without Progress, instantaneous camera moves without Frames,
// inert node interaction without Layout) instead of failing construction.
type Options struct {
	// Viewport is the screen-space rectangle the map renders into. Used to
	// center nodes; required for activation to center correctly.
	Viewport Rect

	Progress ProgressStore
	Nav      Navigator
	Layout   NodeLayout
	Frames   FrameSource
	Feedback FeedbackSink

	// ZoomMin and ZoomMax bound the camera zoom. Defaults 0.5 and 3.0.
	ZoomMin, ZoomMax float64
	// WheelZoomIn and WheelZoomOut are the per-notch wheel zoom factors.
	// Defaults 1.1 and 0.9.
	WheelZoomIn, WheelZoomOut float64
	// PinchSensitivity scales the pinch distance ratio into a zoom factor.
	// Default 1.0 (factor equals the distance ratio).
	PinchSensitivity float64
	// ClickDeadZone is the maximum pointer travel in pixels for a press to
	// still count as a node click. Default 4.
	ClickDeadZone float64
	// DefaultDuration is the camera animation length in seconds for
	// Reset, activation centering, and current-node recentering.
	// Default 0.45.
	DefaultDuration float64
	// LessonPath builds the navigation path for an activated node.
	// Default "/lessons/<id>".
	LessonPath func(nodeID string) string
}

// press tracks one pointer from contact to release for click detection.
type press struct {
	start   Vec2
	pinched bool // pointer took part in a pinch; never a click
}

// Map is the galaxy-map facade: it composes the coordinate transform, the
// gesture unifier, the camera state machine, the animation scheduler, and
// the node interaction controller into the one object the rest of the UI
// talks to. Construct with New; each page owns its instance explicitly,
// there is no package-level singleton.
type Map struct {
	opts     Options
	view     *View
	gestures *Unifier
	nodes    *interaction

	presses     map[int]*press
	unsubscribe func()
	destroyed   bool
}

// New constructs a Map, fills in option defaults, wires the components in
// dependency order, and subscribes once to the progress-change stream.
func New(opts Options) *Map {
	if opts.ZoomMin == 0 {
		opts.ZoomMin = defaultZoomMin
	}
	if opts.ZoomMax == 0 {
		opts.ZoomMax = defaultZoomMax
	}
	if opts.ZoomMin <= 0 || opts.ZoomMin >= opts.ZoomMax {
		panic(fmt.Sprintf("galaxymap: invalid zoom bounds [%v, %v]", opts.ZoomMin, opts.ZoomMax))
	}
	if opts.WheelZoomIn == 0 {
		opts.WheelZoomIn = defaultWheelZoomIn
	}
	if opts.WheelZoomOut == 0 {
		opts.WheelZoomOut = defaultWheelZoomOut
	}
	if opts.PinchSensitivity == 0 {
		opts.PinchSensitivity = defaultPinchSensitivity
	}
	if opts.ClickDeadZone == 0 {
		opts.ClickDeadZone = defaultClickDeadZone
	}
	if opts.DefaultDuration == 0 {
		opts.DefaultDuration = defaultDuration
	}
	if opts.LessonPath == nil {
		opts.LessonPath = func(nodeID string) string { return "/lessons/" + nodeID }
	}

	m := &Map{opts: opts, presses: make(map[int]*press)}
	m.view = newView(opts.ZoomMin, opts.ZoomMax, opts.DefaultDuration, opts.Frames)
	m.gestures = newUnifier(m.view.ApplyIntent,
		opts.WheelZoomIn, opts.WheelZoomOut, opts.PinchSensitivity)
	m.nodes = &interaction{
		progress:   opts.Progress,
		layout:     opts.Layout,
		nav:        opts.Nav,
		feedback:   opts.Feedback,
		view:       m.view,
		viewport:   opts.Viewport,
		duration:   opts.DefaultDuration,
		lessonPath: opts.LessonPath,
	}

	if opts.Progress != nil {
		m.unsubscribe = opts.Progress.OnChange(m.handleProgress)
	}
	return m
}

// Camera returns the current composed camera transform. The rendering layer
// applies this to its content surface; the engine never draws.
func (m *Map) Camera() Camera {
	return m.view.Camera()
}

// Animating reports whether a camera animation is in flight.
func (m *Map) Animating() bool {
	return m.view.Animating()
}

// PointerDown feeds a pointer contact (mouse button press or touch start)
// into the gesture engine. Pointer ids are caller-chosen but must be stable
// for the duration of the contact.
func (m *Map) PointerDown(id int, p Vec2) {
	if m.destroyed {
		return
	}
	m.gestures.PointerDown(id, p)
	if !finiteVec(p) {
		return // the unifier logged and dropped it
	}
	// A fresh contact supersedes any camera animation immediately; the
	// camera holds at its last interpolated value.
	m.view.interrupt()
	m.presses[id] = &press{start: p}
	if m.gestures.Pinching() {
		// A second finger turns every tracked press into a camera gesture.
		for _, pr := range m.presses {
			pr.pinched = true
		}
	}
}

// PointerMove feeds pointer movement while in contact.
func (m *Map) PointerMove(id int, p Vec2) {
	if m.destroyed {
		return
	}
	m.gestures.PointerMove(id, p)
}

// PointerUp feeds a pointer release. A press that never pinched and moved
// less than the click dead zone is a click: the release point is hit-tested
// against the layout and the node (if any) is activated.
func (m *Map) PointerUp(id int, p Vec2) {
	if m.destroyed {
		return
	}
	pr := m.presses[id]
	delete(m.presses, id)
	m.gestures.PointerUp(id)

	if pr == nil || pr.pinched || !finiteVec(p) {
		return
	}
	if math.Hypot(p.X-pr.start.X, p.Y-pr.start.Y) > m.opts.ClickDeadZone {
		return
	}
	if m.opts.Layout == nil {
		return
	}
	if nodeID, ok := m.opts.Layout.HitTest(p); ok {
		m.nodes.ActivateNode(nodeID)
	}
}

// Wheel feeds a wheel/scroll event at the given screen point. Positive
// deltaY (scrolling down) zooms out, matching DOM wheel semantics.
func (m *Map) Wheel(deltaY float64, p Vec2) {
	if m.destroyed {
		return
	}
	m.gestures.Wheel(deltaY, p)
}

// Hover feeds contact-free pointer movement for hover tracking. Moving off
// every node clears the hover and connected flags.
func (m *Map) Hover(p Vec2) {
	if m.destroyed || m.opts.Layout == nil || !finiteVec(p) {
		return
	}
	if nodeID, ok := m.opts.Layout.HitTest(p); ok {
		m.nodes.HoverNode(nodeID, true)
	} else {
		m.nodes.clearHover()
	}
}

// ActivateNode programmatically activates a node, with the same locked-node
// rules as a click.
func (m *Map) ActivateNode(nodeID string) {
	if m.destroyed {
		return
	}
	m.nodes.ActivateNode(nodeID)
}

// ActivateSelected activates the keyboard selection, if any.
func (m *Map) ActivateSelected() {
	if m.destroyed {
		return
	}
	m.nodes.ActivateSelected()
}

// KeyNavigate moves the keyboard selection to the adjacent unlocked node.
func (m *Map) KeyNavigate(dir NavDirection) {
	if m.destroyed {
		return
	}
	m.nodes.KeyNavigate(dir)
}

// Deselect clears the keyboard selection.
func (m *Map) Deselect() {
	if m.destroyed {
		return
	}
	m.nodes.Deselect()
}

// Selected returns the selected node id, or "" when nothing is selected.
func (m *Map) Selected() string {
	return m.nodes.Selected()
}

// CenterOn eases the camera to center the node at the current zoom.
func (m *Map) CenterOn(nodeID string) {
	if m.destroyed {
		return
	}
	m.nodes.CenterOn(nodeID)
}

// Reset eases the camera back to the home state.
func (m *Map) Reset() {
	if m.destroyed {
		return
	}
	m.view.Reset()
}

// Destroy tears the map down: the active animation is cancelled, the gesture
// session is dropped, every advisory flag the map wrote is cleared, and the
// progress subscription is released. No timers or callbacks survive.
// Destroy is idempotent; input after Destroy is ignored.
func (m *Map) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	m.view.anim.cancel()
	m.gestures.reset()
	m.nodes.clearFlags()
	for id := range m.presses {
		delete(m.presses, id)
	}
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// handleProgress reacts to progress-store changes. Moving to a new current
// lesson shifts the current flag and, when the user isn't mid-gesture,
// recenters the camera on the new planet; unlock and completion events
// re-sync the hover neighborhood so freshly unlocked neighbors light up.
func (m *Map) handleProgress(ev ProgressEvent) {
	if m.destroyed {
		return
	}
	switch ev.Kind {
	case CurrentNodeChanged:
		m.nodes.setCurrent(ev.NodeID)
		if !m.gestures.Active() {
			m.nodes.CenterOn(ev.NodeID)
		}
	case NodeUnlocked, ConceptCompleted:
		m.nodes.refreshHover()
	}
}
