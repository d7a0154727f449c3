package galaxymap

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TickHandle identifies an outstanding frame-tick request so it can be
// cancelled before it fires.
type TickHandle uint64

// FrameSource delivers per-frame callbacks to the engine. It is the only
// time source the engine uses: each requested tick fires once on the next
// visual frame with the elapsed time in seconds since the previous frame.
//
// The ebitenmap subpackage provides an implementation; tests use a manually
// stepped fake.
type FrameSource interface {
	RequestTick(fn func(dt float64)) TickHandle
	CancelTick(h TickHandle)
}

// animJob interpolates the camera from a start state to a target state.
// Each component is driven by its own tween, all sharing the ease-out cubic
// curve, so the job completes when all three report done.
type animJob struct {
	panX, panY, zoom *gween.Tween
	target           Camera
}

// animator owns the single active camera animation. At most one job and one
// outstanding tick handle exist at a time; starting a new job releases both
// before acquiring replacements so a stale callback can never mutate the
// camera after supersession.
type animator struct {
	frames FrameSource
	apply  func(Camera) // direct overwrite of the view's camera value

	job       *animJob
	handle    TickHandle
	scheduled bool
}

// start begins animating from one camera state to another over duration
// seconds, cancelling any previous job first. With no frame source (or a
// non-positive duration) the target is applied immediately; degraded, but
// the camera still lands where it was asked to.
func (a *animator) start(from, to Camera, duration float64) {
	a.cancel()

	if a.frames == nil || duration <= 0 {
		a.apply(to)
		return
	}

	d := float32(duration)
	a.job = &animJob{
		panX:   gween.New(float32(from.PanX), float32(to.PanX), d, ease.OutCubic),
		panY:   gween.New(float32(from.PanY), float32(to.PanY), d, ease.OutCubic),
		zoom:   gween.New(float32(from.Zoom), float32(to.Zoom), d, ease.OutCubic),
		target: to,
	}
	a.handle = a.frames.RequestTick(a.tick)
	a.scheduled = true
}

// cancel discards the active job and releases the outstanding tick handle.
// It does not rewind the camera; whatever value the last tick applied stays.
// Cancelling with no active job is a no-op.
func (a *animator) cancel() {
	if a.scheduled {
		a.frames.CancelTick(a.handle)
		a.scheduled = false
	}
	a.job = nil
}

// active reports whether a job is currently animating the camera.
func (a *animator) active() bool {
	return a.job != nil
}

// tick advances the job by dt seconds and pushes the interpolated camera
// into the view. Runs once per frame until all tweens complete.
func (a *animator) tick(dt float64) {
	a.scheduled = false
	if a.job == nil {
		return
	}

	fdt := float32(dt)
	px, doneX := a.job.panX.Update(fdt)
	py, doneY := a.job.panY.Update(fdt)
	z, doneZ := a.job.zoom.Update(fdt)

	if doneX && doneY && doneZ {
		// Land exactly on the target; tween endpoints are float32.
		a.apply(a.job.target)
		a.job = nil
		return
	}

	a.apply(Camera{PanX: float64(px), PanY: float64(py), Zoom: float64(z)})
	a.handle = a.frames.RequestTick(a.tick)
	a.scheduled = true
}
