package ebitenmap

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	galaxymap "github.com/SatvikPraveen/JSVerseHub-sub001"
)

const (
	maxPointers   = 10 // pointer 0 = mouse, 1-9 = touch
	shakeDuration = 0.4
)

// Driver glues a [galaxymap.Map] to Ebitengine. It implements
// [galaxymap.FrameSource] and [galaxymap.FeedbackSink], owns the input pump,
// and draws the chart. Use it as an [ebiten.Game], or call Update/Draw from
// your own game loop.
type Driver struct {
	chart    *Chart
	progress galaxymap.ProgressStore
	width    int
	height   int

	m *galaxymap.Map

	// Frame-tick registry. Snapshot-and-clear per frame so a callback
	// requesting the next tick doesn't run twice in one frame.
	ticks      map[galaxymap.TickHandle]func(dt float64)
	tickOrder  []galaxymap.TickHandle
	nextHandle galaxymap.TickHandle
	fired      []func(dt float64)

	// Touch slot allocation, same scheme as any multi-pointer pump:
	// a TouchID keeps its slot for the lifetime of the contact.
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	touchLast    [maxPointers]galaxymap.Vec2
	prevTouchIDs []ebiten.TouchID

	mouseDown bool

	// Locked-feedback shake timers, seconds remaining per planet.
	shakes map[string]float64
}

// NewDriver creates a driver over the chart for a window of the given size.
// Attach the map with Attach before running.
func NewDriver(chart *Chart, progress galaxymap.ProgressStore, width, height int) *Driver {
	return &Driver{
		chart:    chart,
		progress: progress,
		width:    width,
		height:   height,
		ticks:    make(map[galaxymap.TickHandle]func(dt float64)),
		shakes:   make(map[string]float64),
	}
}

// Attach wires the map the driver pumps input into and reads the camera
// from. Must be called before the game loop starts.
func (d *Driver) Attach(m *galaxymap.Map) {
	d.m = m
	d.chart.SetCameraSource(m.Camera)
}

// RequestTick schedules fn for the next frame and returns its handle.
func (d *Driver) RequestTick(fn func(dt float64)) galaxymap.TickHandle {
	d.nextHandle++
	h := d.nextHandle
	d.ticks[h] = fn
	d.tickOrder = append(d.tickOrder, h)
	return h
}

// CancelTick drops a pending tick. Unknown or already-fired handles are
// ignored.
func (d *Driver) CancelTick(h galaxymap.TickHandle) {
	delete(d.ticks, h)
}

// LockedFeedback starts the shake animation on a locked planet.
func (d *Driver) LockedFeedback(nodeID string) {
	d.shakes[nodeID] = shakeDuration
}

// Update fires pending frame ticks, pumps input, and advances feedback
// animations. Implements [ebiten.Game].
func (d *Driver) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	d.fireTicks(dt)
	if d.m != nil {
		d.pumpMouse()
		d.pumpTouches()
		d.pumpKeys()
	}

	for id, t := range d.shakes {
		t -= dt
		if t <= 0 {
			delete(d.shakes, id)
		} else {
			d.shakes[id] = t
		}
	}
	return nil
}

// fireTicks runs the callbacks that were pending at the start of the frame.
// Requests made during firing land in the next frame.
func (d *Driver) fireTicks(dt float64) {
	if len(d.tickOrder) == 0 {
		return
	}
	d.fired = d.fired[:0]
	for _, h := range d.tickOrder {
		if fn, ok := d.ticks[h]; ok {
			d.fired = append(d.fired, fn)
			delete(d.ticks, h)
		}
	}
	d.tickOrder = d.tickOrder[:0]
	for _, fn := range d.fired {
		fn(dt)
	}
}

// pumpMouse feeds mouse position, left button, and wheel into the map as
// pointer 0.
func (d *Driver) pumpMouse() {
	mx, my := ebiten.CursorPosition()
	p := galaxymap.Vec2{X: float64(mx), Y: float64(my)}

	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	switch {
	case pressed && !d.mouseDown:
		d.mouseDown = true
		d.m.PointerDown(0, p)
	case pressed && d.mouseDown:
		d.m.PointerMove(0, p)
	case !pressed && d.mouseDown:
		d.mouseDown = false
		d.m.PointerUp(0, p)
	default:
		d.m.Hover(p)
	}

	// Ebitengine wheel Y is positive scrolling up (zoom in); the map takes
	// DOM deltaY, positive scrolling down (zoom out).
	if _, wy := ebiten.Wheel(); wy != 0 {
		d.m.Wheel(-wy, p)
	}
}

// pumpTouches feeds touch contacts into the map as pointers 1-9.
func (d *Driver) pumpTouches() {
	touchIDs := ebiten.AppendTouchIDs(d.prevTouchIDs[:0])
	d.prevTouchIDs = touchIDs

	var active [maxPointers]bool
	for _, tid := range touchIDs {
		slot, fresh := d.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		p := galaxymap.Vec2{X: float64(tx), Y: float64(ty)}
		if fresh {
			d.m.PointerDown(slot, p)
		} else if p != d.touchLast[slot] {
			d.m.PointerMove(slot, p)
		}
		d.touchLast[slot] = p
	}

	for i := 1; i < maxPointers; i++ {
		if d.touchUsed[i] && !active[i] {
			d.m.PointerUp(i, d.touchLast[i])
			d.touchUsed[i] = false
			d.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9), allocating on
// first sight. fresh reports a new allocation. Returns -1 when all slots are
// taken.
func (d *Driver) touchSlot(tid ebiten.TouchID) (slot int, fresh bool) {
	for i := 1; i < maxPointers; i++ {
		if d.touchUsed[i] && d.touchMap[i] == tid {
			return i, false
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !d.touchUsed[i] {
			d.touchUsed[i] = true
			d.touchMap[i] = tid
			return i, true
		}
	}
	return -1, false
}

// pumpKeys maps the course's map-screen keys: arrows move the selection,
// Enter opens it, Escape deselects, R resets the camera.
func (d *Driver) pumpKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		d.m.KeyNavigate(galaxymap.NavNext)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		d.m.KeyNavigate(galaxymap.NavPrev)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		d.m.ActivateSelected()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		d.m.Deselect()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		d.m.Reset()
	}
}

// Chart colors.
var (
	colorSpace     = color.RGBA{10, 12, 28, 255}
	colorEdge      = color.RGBA{60, 70, 110, 255}
	colorEdgeLit   = color.RGBA{140, 170, 255, 255}
	colorPlanet    = color.RGBA{90, 160, 230, 255}
	colorLocked    = color.RGBA{55, 60, 75, 255}
	colorHovered   = color.RGBA{150, 210, 255, 255}
	colorSelected  = color.RGBA{255, 215, 120, 255}
	colorCurrent   = color.RGBA{120, 230, 170, 255}
	colorConnected = color.RGBA{170, 150, 240, 255}
)

// Draw renders the chart under the map's camera. Implements [ebiten.Game].
func (d *Driver) Draw(screen *ebiten.Image) {
	screen.Fill(colorSpace)
	if d.m == nil {
		return
	}
	cam := d.m.Camera()

	// Prerequisite edges first, planets on top.
	for _, p := range d.chart.Planets() {
		from := cam.ContentToScreen(p.Pos)
		for _, req := range p.Requires {
			other, ok := d.chart.byID[req]
			if !ok {
				continue
			}
			to := cam.ContentToScreen(other.Pos)
			edge := colorEdge
			if d.chart.Flag(p.ID, galaxymap.FlagHovered) || d.chart.Flag(req, galaxymap.FlagHovered) {
				edge = colorEdgeLit
			}
			vector.StrokeLine(screen,
				float32(from.X), float32(from.Y),
				float32(to.X), float32(to.Y), 1, edge, true)
		}
	}

	for _, p := range d.chart.Planets() {
		center := cam.ContentToScreen(p.Pos)
		if t, ok := d.shakes[p.ID]; ok {
			center.X += math.Sin(t*50) * 4 * (t / shakeDuration)
		}
		rad := p.Radius * cam.Zoom
		r := float32(rad)

		fill := colorPlanet
		if d.progress == nil || !d.progress.IsUnlocked(p.ID) {
			fill = colorLocked
		} else if d.chart.Flag(p.ID, galaxymap.FlagHovered) {
			fill = colorHovered
		} else if d.chart.Flag(p.ID, galaxymap.FlagConnected) {
			fill = colorConnected
		}
		vector.DrawFilledCircle(screen, float32(center.X), float32(center.Y), r, fill, true)

		if d.chart.Flag(p.ID, galaxymap.FlagCurrent) {
			vector.StrokeCircle(screen, float32(center.X), float32(center.Y), r+6, 2, colorCurrent, true)
		}
		if d.chart.Flag(p.ID, galaxymap.FlagSelected) {
			vector.StrokeCircle(screen, float32(center.X), float32(center.Y), r+3, 2, colorSelected, true)
		}

		ebitenutil.DebugPrintAt(screen, p.Label, int(center.X-rad), int(center.Y+rad)+4)
	}
}

// Layout implements [ebiten.Game].
func (d *Driver) Layout(outsideWidth, outsideHeight int) (int, int) {
	return d.width, d.height
}
