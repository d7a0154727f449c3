package galaxymap

import (
	"math"
	"testing"
)

const eps = 1e-9

func vecClose(a, b Vec2) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

// --- ContentToScreen / ScreenToContent ---

func TestContentToScreen(t *testing.T) {
	tests := []struct {
		name string
		cam  Camera
		in   Vec2
		want Vec2
	}{
		{"identity", Camera{Zoom: 1}, Vec2{100, 50}, Vec2{100, 50}},
		{"pan only", Camera{PanX: 30, PanY: -20, Zoom: 1}, Vec2{100, 50}, Vec2{130, 30}},
		{"zoom only", Camera{Zoom: 2}, Vec2{100, 50}, Vec2{200, 100}},
		{"pan and zoom", Camera{PanX: 10, PanY: 20, Zoom: 0.5}, Vec2{100, 50}, Vec2{60, 45}},
		{"origin", Camera{PanX: 7, PanY: 9, Zoom: 3}, Vec2{}, Vec2{7, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cam.ContentToScreen(tt.in)
			if !vecClose(got, tt.want) {
				t.Errorf("ContentToScreen(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestScreenContentRoundTrip(t *testing.T) {
	cams := []Camera{
		{Zoom: 1},
		{PanX: 123.5, PanY: -44.25, Zoom: 0.5},
		{PanX: -900, PanY: 2048, Zoom: 3},
		{PanX: 0.001, PanY: -0.001, Zoom: 1.7},
	}
	points := []Vec2{{}, {400, 300}, {-512.5, 99.875}, {1e6, -1e6}}

	for _, cam := range cams {
		for _, p := range points {
			got := cam.ScreenToContent(cam.ContentToScreen(p))
			if !vecClose(got, p) {
				t.Errorf("cam %+v: round trip of %+v = %+v", cam, p, got)
			}
			got = cam.ContentToScreen(cam.ScreenToContent(p))
			if !vecClose(got, p) {
				t.Errorf("cam %+v: inverse round trip of %+v = %+v", cam, p, got)
			}
		}
	}
}

// --- ZoomAroundPoint ---

func TestZoomAroundPointPreservesAnchor(t *testing.T) {
	tests := []struct {
		name    string
		cam     Camera
		newZoom float64
		anchor  Vec2
	}{
		{"zoom in at center", Camera{Zoom: 1}, 2, Vec2{400, 300}},
		{"zoom out at corner", Camera{PanX: 50, PanY: -30, Zoom: 1.5}, 0.75, Vec2{}},
		{"tiny step", Camera{PanX: -10, PanY: 4, Zoom: 2.2}, 2.21, Vec2{123, 456}},
		{"big jump", Camera{PanX: 300, PanY: 300, Zoom: 0.5}, 3, Vec2{640, 360}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.cam.ScreenToContent(tt.anchor)
			after := tt.cam.ZoomAroundPoint(tt.newZoom, tt.anchor)
			if math.Abs(after.Zoom-tt.newZoom) > eps {
				t.Fatalf("zoom = %v, want %v", after.Zoom, tt.newZoom)
			}
			got := after.ScreenToContent(tt.anchor)
			if !vecClose(got, before) {
				t.Errorf("content under anchor moved: %+v -> %+v", before, got)
			}
		})
	}
}

func TestZoomAroundPointSameZoomIsIdentity(t *testing.T) {
	cam := Camera{PanX: 12, PanY: 34, Zoom: 1.25}
	got := cam.ZoomAroundPoint(1.25, Vec2{200, 100})
	if math.Abs(got.PanX-cam.PanX) > eps || math.Abs(got.PanY-cam.PanY) > eps {
		t.Errorf("pan changed with unchanged zoom: %+v -> %+v", cam, got)
	}
}

// --- Rect ---

func TestRectCenter(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	if got := r.Center(); !vecClose(got, Vec2{60, 45}) {
		t.Errorf("Center() = %+v, want {60 45}", got)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 9, 40, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

// --- finite helpers ---

func TestFinite(t *testing.T) {
	if finite(math.NaN()) || finite(math.Inf(1)) || finite(math.Inf(-1)) {
		t.Error("NaN/Inf reported finite")
	}
	if !finite(0) || !finite(-1e300) {
		t.Error("finite value rejected")
	}
	if finiteVec(Vec2{X: math.NaN()}) || !finiteVec(Vec2{1, 2}) {
		t.Error("finiteVec wrong")
	}
	if finiteCamera(Camera{Zoom: math.Inf(1)}) || !finiteCamera(Camera{Zoom: 1}) {
		t.Error("finiteCamera wrong")
	}
}
