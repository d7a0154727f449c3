package galaxymap

import "log"

// Default camera tuning. Zoom bounds and the reset duration match the
// course's map screen; all are overridable via Options.
const (
	defaultZoomMin  = 0.5
	defaultZoomMax  = 3.0
	defaultDuration = 0.45 // seconds
)

// IntentKind identifies a kind of camera intent.
type IntentKind uint8

const (
	IntentPan  IntentKind = iota // incremental screen-space translation
	IntentZoom                   // multiplicative zoom about a screen anchor
)

// Intent is a normalized, modality-independent camera operation. The gesture
// unifier reduces mouse drag, touch pinch, and wheel input to a stream of
// these; the [View] is their only consumer.
type Intent struct {
	Kind IntentKind

	// Dx and Dy are the pan delta in screen pixels (IntentPan).
	Dx, Dy float64

	// Factor is the multiplicative zoom change and Anchor the screen point
	// to preserve (IntentZoom).
	Factor float64
	Anchor Vec2
}

// View is the camera state machine. It owns the authoritative [Camera] value;
// input handlers and the facade never mutate the camera directly, only
// through ApplyIntent, AnimateTo, and Reset.
type View struct {
	cam              Camera
	zoomMin, zoomMax float64
	duration         float64
	anim             *animator
}

// newView creates a view at the home camera with the given zoom bounds.
func newView(zoomMin, zoomMax, duration float64, frames FrameSource) *View {
	v := &View{
		cam:      homeCamera(),
		zoomMin:  zoomMin,
		zoomMax:  zoomMax,
		duration: duration,
	}
	v.anim = &animator{frames: frames, apply: v.setCamera}
	return v
}

// Camera returns the current camera value.
func (v *View) Camera() Camera {
	return v.cam
}

// ApplyIntent reduces an intent into the camera state. An incoming intent
// always supersedes a pending animation: the in-flight job (if any) is
// cancelled first and the camera continues from its last interpolated value.
//
// Pan is unbounded (the map has no edges). Zoom is clamped to the view's
// bounds; an intent that cannot change the zoom because it is already at a
// bound is a complete no-op, so the anchor correction cannot drift the pan
// while the user keeps zooming past a limit.
//
// Malformed intents (non-finite components, non-positive zoom factor) are
// rejected and logged; the camera is left unchanged.
func (v *View) ApplyIntent(in Intent) {
	switch in.Kind {
	case IntentPan:
		if !finite(in.Dx) || !finite(in.Dy) {
			log.Printf("galaxymap: rejecting non-finite pan intent (%v, %v)", in.Dx, in.Dy)
			return
		}
		v.anim.cancel()
		v.cam.PanX += in.Dx
		v.cam.PanY += in.Dy

	case IntentZoom:
		if !finite(in.Factor) || in.Factor <= 0 || !finiteVec(in.Anchor) {
			log.Printf("galaxymap: rejecting malformed zoom intent (factor=%v anchor=%v)", in.Factor, in.Anchor)
			return
		}
		v.anim.cancel()
		newZoom := clamp(v.cam.Zoom*in.Factor, v.zoomMin, v.zoomMax)
		if newZoom == v.cam.Zoom {
			return
		}
		v.cam = v.cam.ZoomAroundPoint(newZoom, in.Anchor)
	}
}

// AnimateTo eases the camera toward target over duration seconds, cancelling
// any previous animation. The target zoom is clamped to the view's bounds.
// Non-finite targets are rejected and logged.
func (v *View) AnimateTo(target Camera, duration float64) {
	if !finiteCamera(target) {
		log.Printf("galaxymap: rejecting non-finite animation target %+v", target)
		return
	}
	target.Zoom = clamp(target.Zoom, v.zoomMin, v.zoomMax)
	v.anim.start(v.cam, target, duration)
}

// Reset eases the camera back to the home state (pan 0,0 and zoom 1) over
// the default duration.
func (v *View) Reset() {
	v.AnimateTo(homeCamera(), v.duration)
}

// interrupt cancels an in-flight animation without touching the camera; it
// holds at the last interpolated value. Called when a new gesture begins.
func (v *View) interrupt() {
	v.anim.cancel()
}

// Animating reports whether a camera animation is in flight.
func (v *View) Animating() bool {
	return v.anim.active()
}

// setCamera overwrites the camera value directly. Only the animator uses
// this; interpolated frames are state overwrites, not intents, and must not
// re-trigger intent-side cancellation.
func (v *View) setCamera(c Camera) {
	v.cam = c
}
