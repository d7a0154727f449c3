package ebitenmap

import (
	"testing"

	galaxymap "github.com/SatvikPraveen/JSVerseHub-sub001"
)

func testChart() *Chart {
	return NewChart([]*Planet{
		{ID: "basics", Pos: galaxymap.Vec2{X: 400, Y: 100}, Radius: 30},
		{ID: "variables", Pos: galaxymap.Vec2{X: 200, Y: 300}, Radius: 25, Requires: []string{"basics"}},
		{ID: "functions", Pos: galaxymap.Vec2{X: 600, Y: 300}, Radius: 25, Requires: []string{"variables"}},
	})
}

func TestChartNodeOrderTopDownLeftRight(t *testing.T) {
	c := testChart()
	want := []string{"basics", "variables", "functions"}
	got := c.NodeOrder()
	if len(got) != len(want) {
		t.Fatalf("order length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestChartDependents(t *testing.T) {
	c := testChart()
	deps := c.Dependents("basics")
	if len(deps) != 1 || deps[0] != "variables" {
		t.Errorf("Dependents(basics) = %v, want [variables]", deps)
	}
	if got := c.Dependents("functions"); len(got) != 0 {
		t.Errorf("Dependents(functions) = %v, want none", got)
	}
}

func TestChartNodeBoundsFollowsCamera(t *testing.T) {
	c := testChart()
	c.SetCameraSource(func() galaxymap.Camera {
		return galaxymap.Camera{PanX: 10, PanY: 20, Zoom: 2}
	})

	r, ok := c.NodeBounds("basics")
	if !ok {
		t.Fatal("NodeBounds(basics) not found")
	}
	// Center (400,100) maps to (810, 220); radius 30 scales to 60.
	want := galaxymap.Rect{X: 750, Y: 160, Width: 120, Height: 120}
	if r != want {
		t.Errorf("bounds = %+v, want %+v", r, want)
	}

	if _, ok := c.NodeBounds("nope"); ok {
		t.Error("NodeBounds returned a rect for an unknown id")
	}
}

func TestChartHitTest(t *testing.T) {
	c := testChart()

	tests := []struct {
		name string
		p    galaxymap.Vec2
		id   string
		ok   bool
	}{
		{"center of basics", galaxymap.Vec2{X: 400, Y: 100}, "basics", true},
		{"edge of basics", galaxymap.Vec2{X: 430, Y: 100}, "basics", true},
		{"just outside", galaxymap.Vec2{X: 431, Y: 100}, "", false},
		{"empty space", galaxymap.Vec2{X: 0, Y: 0}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := c.HitTest(tt.p)
			if id != tt.id || ok != tt.ok {
				t.Errorf("HitTest(%+v) = (%q, %v), want (%q, %v)", tt.p, id, ok, tt.id, tt.ok)
			}
		})
	}
}

func TestChartHitTestUnderZoom(t *testing.T) {
	c := testChart()
	c.SetCameraSource(func() galaxymap.Camera {
		return galaxymap.Camera{PanX: 100, Zoom: 0.5}
	})

	// basics center (400,100) is on screen at (300, 50).
	if id, ok := c.HitTest(galaxymap.Vec2{X: 300, Y: 50}); !ok || id != "basics" {
		t.Errorf("HitTest = (%q, %v), want (basics, true)", id, ok)
	}
}

func TestChartFlags(t *testing.T) {
	c := testChart()
	c.SetNodeFlag("basics", galaxymap.FlagSelected, true)
	c.SetNodeFlag("basics", galaxymap.FlagHovered, true)
	c.SetNodeFlag("basics", galaxymap.FlagHovered, false)

	if !c.Flag("basics", galaxymap.FlagSelected) {
		t.Error("selected flag lost")
	}
	if c.Flag("basics", galaxymap.FlagHovered) {
		t.Error("hovered flag not cleared")
	}
	// Unknown ids are ignored, not stored.
	c.SetNodeFlag("nope", galaxymap.FlagSelected, true)
	if c.Flag("nope", galaxymap.FlagSelected) {
		t.Error("flag stored for unknown id")
	}
}

func TestDriverTickRegistry(t *testing.T) {
	d := NewDriver(testChart(), nil, 800, 600)

	var fired []int
	h1 := d.RequestTick(func(dt float64) { fired = append(fired, 1) })
	d.RequestTick(func(dt float64) { fired = append(fired, 2) })
	d.CancelTick(h1)

	d.fireTicks(1.0 / 60)
	if len(fired) != 1 || fired[0] != 2 {
		t.Errorf("fired = %v, want [2]", fired)
	}

	// A tick re-requesting itself runs next frame, not this one.
	fired = nil
	count := 0
	d.RequestTick(func(dt float64) {
		count++
		if count < 2 {
			d.RequestTick(func(dt float64) { count++ })
		}
	})
	d.fireTicks(1.0 / 60)
	if count != 1 {
		t.Errorf("count after one frame = %d, want 1", count)
	}
	d.fireTicks(1.0 / 60)
	if count != 2 {
		t.Errorf("count after two frames = %d, want 2", count)
	}
}
