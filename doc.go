// Package galaxymap is the viewport and gesture engine behind the course's
// galaxy-map screen: lesson topics are planets on an infinite 2D plane, and
// this package turns raw pointer, touch, and wheel input into a single
// pan/zoom camera over that plane.
//
// The package is headless. Rendering, node layout, lesson progress, and page
// navigation are collaborators supplied at construction time ([NodeLayout],
// [ProgressStore], [Navigator], [FrameSource]); the engine owns only the
// camera value, the in-flight gesture, and the in-flight camera animation,
// and publishes node state changes as advisory flags via
// [NodeLayout.SetNodeFlag].
//
// # Quick start
//
//	m := galaxymap.New(galaxymap.Options{
//		Viewport: galaxymap.Rect{Width: 800, Height: 600},
//		Progress: store,
//		Layout:   layout,
//		Nav:      nav,
//		Frames:   frames,
//	})
//	defer m.Destroy()
//
// Feed it input and read the camera back each frame:
//
//	m.PointerDown(0, galaxymap.Vec2{X: mx, Y: my})
//	m.PointerMove(0, galaxymap.Vec2{X: mx, Y: my})
//	m.PointerUp(0, galaxymap.Vec2{X: mx, Y: my})
//	m.Wheel(deltaY, galaxymap.Vec2{X: mx, Y: my})
//
//	cam := m.Camera() // {PanX, PanY, Zoom}, applied by the renderer
//
// All three input modalities reduce to the same two camera intents (pan and
// zoom-about-anchor), so mouse drag, touch pinch, and wheel zoom share one
// code path and one set of invariants.
//
// The ebitenmap subpackage provides an [Ebitengine] driver implementing the
// collaborator interfaces, and examples/galaxy is a runnable demo.
//
// [Ebitengine]: https://ebitengine.org
package galaxymap
