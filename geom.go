package galaxymap

import "math"

// Vec2 is a 2D vector used for positions, offsets, and deltas throughout the
// API. Screen-space and content-space points share this type; which space a
// value lives in is part of each function's contract.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the rectangle's center point.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Camera is the composed view transform over the content plane: content
// coordinates are scaled by Zoom, then translated by (PanX, PanY) to produce
// screen coordinates. It is a plain value; the authoritative copy is owned by
// [View] and mutated only through intents, animation, or Reset.
type Camera struct {
	// PanX and PanY are the screen-space translation in pixels.
	PanX, PanY float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
}

// homeCamera is the camera every map starts at and returns to on Reset.
func homeCamera() Camera {
	return Camera{Zoom: 1}
}

// ContentToScreen converts a content-space point to screen space:
// screen = content*zoom + pan.
func (c Camera) ContentToScreen(p Vec2) Vec2 {
	return Vec2{
		X: p.X*c.Zoom + c.PanX,
		Y: p.Y*c.Zoom + c.PanY,
	}
}

// ScreenToContent converts a screen-space point to content space. It is the
// exact inverse of ContentToScreen: content = (screen - pan) / zoom.
func (c Camera) ScreenToContent(p Vec2) Vec2 {
	return Vec2{
		X: (p.X - c.PanX) / c.Zoom,
		Y: (p.Y - c.PanY) / c.Zoom,
	}
}

// ZoomAroundPoint returns a camera with the given zoom whose pan is adjusted
// so the content point currently under the screen-space anchor stays under
// the anchor. This is the anchor-preserving rule behind zoom-toward-cursor
// and pinch-center behavior:
//
//	pan' = anchor - (anchor - pan) * (newZoom/zoom)
func (c Camera) ZoomAroundPoint(newZoom float64, anchor Vec2) Camera {
	ratio := newZoom / c.Zoom
	return Camera{
		PanX: anchor.X - (anchor.X-c.PanX)*ratio,
		PanY: anchor.Y - (anchor.Y-c.PanY)*ratio,
		Zoom: newZoom,
	}
}

// finite reports whether v is a usable coordinate (not NaN or ±Inf).
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// finiteVec reports whether both components of p are finite.
func finiteVec(p Vec2) bool {
	return finite(p.X) && finite(p.Y)
}

// finiteCamera reports whether all three camera components are finite.
func finiteCamera(c Camera) bool {
	return finite(c.PanX) && finite(c.PanY) && finite(c.Zoom)
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
