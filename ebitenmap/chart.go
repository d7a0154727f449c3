// Package ebitenmap is an [Ebitengine] driver for the galaxymap engine: it
// implements the engine's collaborator interfaces (frame source, node
// layout, locked feedback), pumps mouse/touch/wheel/keyboard input into a
// galaxymap.Map, and draws a simple planet chart.
//
// The engine stays headless; everything Ebitengine-specific lives here.
//
// [Ebitengine]: https://ebitengine.org
package ebitenmap

import (
	"sort"

	galaxymap "github.com/SatvikPraveen/JSVerseHub-sub001"
)

// Planet is one lesson node on the chart. Pos is the planet's center in
// content space; Requires lists prerequisite planet ids.
type Planet struct {
	ID       string
	Label    string
	Pos      galaxymap.Vec2
	Radius   float64
	Requires []string
}

// Chart is a static planet layout implementing [galaxymap.NodeLayout].
// Geometry lives in content space; screen-space answers are derived from the
// camera on demand, so the chart needs a way to read the current camera.
type Chart struct {
	planets    []*Planet
	order      []string // left-to-right, top-down
	byID       map[string]*Planet
	dependents map[string][]string
	flags      map[string]uint8 // bitmask keyed by NodeFlag

	camera func() galaxymap.Camera
}

// NewChart builds a chart from the given planets. The keyboard-navigation
// order is fixed at construction: top-down rows, left-to-right within a row.
func NewChart(planets []*Planet) *Chart {
	c := &Chart{
		planets:    planets,
		byID:       make(map[string]*Planet, len(planets)),
		dependents: make(map[string][]string),
		flags:      make(map[string]uint8),
		camera:     func() galaxymap.Camera { return galaxymap.Camera{Zoom: 1} },
	}
	for _, p := range planets {
		c.byID[p.ID] = p
		for _, req := range p.Requires {
			c.dependents[req] = append(c.dependents[req], p.ID)
		}
	}

	sorted := append([]*Planet(nil), planets...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Pos.Y != sorted[j].Pos.Y {
			return sorted[i].Pos.Y < sorted[j].Pos.Y
		}
		return sorted[i].Pos.X < sorted[j].Pos.X
	})
	c.order = make([]string, len(sorted))
	for i, p := range sorted {
		c.order[i] = p.ID
	}
	return c
}

// SetCameraSource wires the function the chart uses to read the current
// camera when answering screen-space queries.
func (c *Chart) SetCameraSource(fn func() galaxymap.Camera) {
	c.camera = fn
}

// Planets returns the chart's planets in definition order.
func (c *Chart) Planets() []*Planet {
	return c.planets
}

// NodeBounds returns the planet's screen-space bounding square.
func (c *Chart) NodeBounds(nodeID string) (galaxymap.Rect, bool) {
	p, ok := c.byID[nodeID]
	if !ok {
		return galaxymap.Rect{}, false
	}
	cam := c.camera()
	center := cam.ContentToScreen(p.Pos)
	r := p.Radius * cam.Zoom
	return galaxymap.Rect{X: center.X - r, Y: center.Y - r, Width: 2 * r, Height: 2 * r}, true
}

// Dependencies returns the planet's prerequisite ids.
func (c *Chart) Dependencies(nodeID string) []string {
	p, ok := c.byID[nodeID]
	if !ok {
		return nil
	}
	return p.Requires
}

// Dependents returns the planets that require nodeID.
func (c *Chart) Dependents(nodeID string) []string {
	return c.dependents[nodeID]
}

// NodeOrder returns planet ids in the fixed keyboard-navigation order.
func (c *Chart) NodeOrder() []string {
	return c.order
}

// HitTest returns the planet under the screen point, last-defined first so
// overlapping planets resolve to the one drawn on top.
func (c *Chart) HitTest(sp galaxymap.Vec2) (string, bool) {
	cam := c.camera()
	cp := cam.ScreenToContent(sp)
	for i := len(c.planets) - 1; i >= 0; i-- {
		p := c.planets[i]
		dx := cp.X - p.Pos.X
		dy := cp.Y - p.Pos.Y
		if dx*dx+dy*dy <= p.Radius*p.Radius {
			return p.ID, true
		}
	}
	return "", false
}

// SetNodeFlag records an advisory flag; Draw reads these back.
func (c *Chart) SetNodeFlag(nodeID string, flag galaxymap.NodeFlag, on bool) {
	if _, ok := c.byID[nodeID]; !ok {
		return
	}
	bit := uint8(1) << flag
	if on {
		c.flags[nodeID] |= bit
	} else {
		c.flags[nodeID] &^= bit
	}
}

// Flag reports whether the advisory flag is set on the planet.
func (c *Chart) Flag(nodeID string, flag galaxymap.NodeFlag) bool {
	return c.flags[nodeID]&(uint8(1)<<flag) != 0
}
