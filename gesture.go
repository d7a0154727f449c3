package galaxymap

import (
	"log"
	"math"
)

// pinchEpsilon is the minimum gesture distance (in pixels) before a pinch
// emits zoom intents. Two pointers landing on the same pixel would otherwise
// divide by zero on the first spread.
const pinchEpsilon = 1e-3

// gestureKind identifies the role of the active gesture session.
type gestureKind uint8

const (
	gestureDrag  gestureKind = iota // single pointer panning the map
	gesturePinch                    // two or more pointers zooming/panning
)

// gestureSession is the transient record of an in-progress pointer
// interaction. At most one exists at a time: a second pointer arriving during
// a drag upgrades the session to a pinch rather than opening a new session,
// mirroring 1→2 finger touch semantics.
type gestureSession struct {
	kind   gestureKind
	points map[int]Vec2 // live position per active pointer id

	// anchor is the drag baseline: the driving pointer's last position.
	anchor Vec2

	// lastDist and lastCenter are the pinch baselines from the previous
	// event. lastDist is 0 until the gesture distance first exceeds
	// pinchEpsilon.
	lastDist   float64
	lastCenter Vec2
}

// metrics returns the session's current center and gesture distance: the
// centroid of all active points and twice the mean distance from it (for two
// pointers this is exactly the distance between them).
func (g *gestureSession) metrics() (center Vec2, dist float64) {
	n := float64(len(g.points))
	for _, p := range g.points {
		center.X += p.X
		center.Y += p.Y
	}
	center.X /= n
	center.Y /= n

	for _, p := range g.points {
		dx := p.X - center.X
		dy := p.Y - center.Y
		dist += math.Hypot(dx, dy)
	}
	return center, 2 * dist / n
}

// Unifier normalizes heterogeneous pointer, touch, and wheel input into the
// uniform [Intent] stream consumed by the camera state machine. It owns the
// single gesture session; everything else about the input devices (which
// button, which touch id maps to which pointer slot) is the caller's concern.
type Unifier struct {
	emit func(Intent)

	wheelIn, wheelOut float64 // zoom factor per wheel notch
	sensitivity       float64 // pinch distance-ratio gain

	session *gestureSession
}

// newUnifier creates a unifier emitting intents into the given sink.
func newUnifier(emit func(Intent), wheelIn, wheelOut, sensitivity float64) *Unifier {
	return &Unifier{
		emit:        emit,
		wheelIn:     wheelIn,
		wheelOut:    wheelOut,
		sensitivity: sensitivity,
	}
}

// Active reports whether a gesture session is in progress.
func (u *Unifier) Active() bool {
	return u.session != nil
}

// Pinching reports whether the active session (if any) is a pinch.
func (u *Unifier) Pinching() bool {
	return u.session != nil && u.session.kind == gesturePinch
}

// reset destroys the session. Safe to call repeatedly; destroying a session
// has no side effects beyond forgetting the tracked pointers.
func (u *Unifier) reset() {
	u.session = nil
}

// PointerDown begins or extends the gesture session. The first qualifying
// contact starts a drag; a second upgrades the session to a pinch, seeding
// the pinch baselines from both live points so the first move event produces
// a delta, not a jump.
func (u *Unifier) PointerDown(id int, p Vec2) {
	if !finiteVec(p) {
		log.Printf("galaxymap: ignoring non-finite pointer down at %+v", p)
		return
	}

	if u.session == nil {
		u.session = &gestureSession{
			kind:   gestureDrag,
			points: map[int]Vec2{id: p},
			anchor: p,
		}
		return
	}

	u.session.points[id] = p
	if len(u.session.points) >= 2 {
		u.session.kind = gesturePinch
		u.rebaseline()
	}
}

// PointerMove advances the session with a new position for pointer id.
// Moves with no active session, or for a pointer the session is not
// tracking, are ignored.
func (u *Unifier) PointerMove(id int, p Vec2) {
	s := u.session
	if s == nil {
		return
	}
	if _, ok := s.points[id]; !ok {
		return
	}
	if !finiteVec(p) {
		log.Printf("galaxymap: ignoring non-finite pointer move at %+v", p)
		return
	}
	s.points[id] = p

	if s.kind == gestureDrag {
		u.emit(Intent{Kind: IntentPan, Dx: p.X - s.anchor.X, Dy: p.Y - s.anchor.Y})
		s.anchor = p
		return
	}

	center, dist := s.metrics()
	if s.lastDist > pinchEpsilon && dist > pinchEpsilon {
		factor := 1 + (dist/s.lastDist-1)*u.sensitivity
		u.emit(Intent{Kind: IntentZoom, Factor: factor, Anchor: center})
		u.emit(Intent{Kind: IntentPan, Dx: center.X - s.lastCenter.X, Dy: center.Y - s.lastCenter.Y})
	}
	s.lastCenter = center
	if dist > pinchEpsilon {
		s.lastDist = dist
	}
}

// PointerUp removes pointer id from the session. When the last pointer
// lifts, the session is destroyed; when a pinch drops to one pointer, the
// session downgrades to a drag anchored at the survivor's current position,
// so the next move pans relative to where that finger actually is.
func (u *Unifier) PointerUp(id int) {
	s := u.session
	if s == nil {
		return
	}
	if _, ok := s.points[id]; !ok {
		return
	}
	delete(s.points, id)

	switch len(s.points) {
	case 0:
		u.session = nil
	case 1:
		s.kind = gestureDrag
		for _, p := range s.points {
			s.anchor = p
		}
		s.lastDist = 0
	default:
		// Still a pinch; rebaseline so the survivors don't jump.
		u.rebaseline()
	}
}

// Wheel emits a single zoom intent for a wheel event at the given screen
// point. Stateless: wheel zoom never opens a session. The sign convention
// follows DOM deltaY (positive scrolls down, zooming out).
func (u *Unifier) Wheel(deltaY float64, p Vec2) {
	if !finite(deltaY) || !finiteVec(p) {
		log.Printf("galaxymap: ignoring non-finite wheel event (deltaY=%v at %+v)", deltaY, p)
		return
	}
	if deltaY == 0 {
		return
	}
	factor := u.wheelIn
	if deltaY > 0 {
		factor = u.wheelOut
	}
	u.emit(Intent{Kind: IntentZoom, Factor: factor, Anchor: p})
}

// rebaseline recomputes the pinch baselines from the live points without
// emitting intents.
func (u *Unifier) rebaseline() {
	center, dist := u.session.metrics()
	u.session.lastCenter = center
	u.session.lastDist = 0
	if dist > pinchEpsilon {
		u.session.lastDist = dist
	}
}
