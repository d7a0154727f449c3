package galaxymap

import "fmt"

// NodeFlag is an advisory visual-state flag the engine writes onto nodes.
// The renderer decides how (or whether) to depict each flag.
type NodeFlag uint8

const (
	FlagHovered   NodeFlag = iota // pointer is over the node
	FlagSelected                  // node is the current selection
	FlagConnected                 // node is a prerequisite or dependent of the hovered node
	FlagCurrent                   // node is the learner's current lesson
)

// String returns the flag's name for diagnostics.
func (f NodeFlag) String() string {
	switch f {
	case FlagHovered:
		return "hovered"
	case FlagSelected:
		return "selected"
	case FlagConnected:
		return "connected"
	case FlagCurrent:
		return "current"
	default:
		return fmt.Sprintf("NodeFlag(%d)", uint8(f))
	}
}

// ProgressEventKind identifies a kind of progress-store change.
type ProgressEventKind uint8

const (
	NodeUnlocked       ProgressEventKind = iota // a lesson node became available
	ConceptCompleted                            // a concept inside a lesson was finished
	CurrentNodeChanged                          // the learner moved to a different lesson
)

// ProgressEvent is a change notification from the progress store.
type ProgressEvent struct {
	Kind   ProgressEventKind
	NodeID string
}

// ProgressStore is the external owner of the unlock/progress data model.
type ProgressStore interface {
	IsUnlocked(nodeID string) bool
	// OnChange registers a change callback and returns an unsubscribe
	// function. The engine subscribes exactly once, at construction.
	OnChange(fn func(ProgressEvent)) (unsubscribe func())
}

// Navigator is the external page-navigation collaborator. NavigateTo is
// fire-and-forget; the engine enforces no return contract.
type Navigator interface {
	NavigateTo(path string)
}

// NodeLayout is the external layout/renderer collaborator: it owns node
// geometry and visuals, while the engine only reads screen-space bounds,
// hit-tests, and writes advisory flags.
type NodeLayout interface {
	// NodeBounds returns the node's current screen-space bounding
	// rectangle, or false if the node is unknown.
	NodeBounds(nodeID string) (Rect, bool)
	// Dependencies returns the node's prerequisite node ids.
	Dependencies(nodeID string) []string
	// Dependents returns the nodes that list nodeID as a prerequisite.
	Dependents(nodeID string) []string
	// NodeOrder returns all node ids in the fixed left-to-right, top-down
	// ordering used for keyboard navigation.
	NodeOrder() []string
	// HitTest returns the topmost node at the screen point, if any.
	HitTest(p Vec2) (nodeID string, ok bool)
	// SetNodeFlag toggles an advisory visual-state flag on a node.
	SetNodeFlag(nodeID string, flag NodeFlag, on bool)
}

// FeedbackSink receives transient, non-fatal feedback intents (the locked
// planet shake-and-tooltip). Optional; nil disables feedback.
type FeedbackSink interface {
	LockedFeedback(nodeID string)
}

// NavDirection is a keyboard-navigation step through the node ordering.
type NavDirection uint8

const (
	NavNext NavDirection = iota // right / down
	NavPrev                     // left / up
)

// interaction binds pointer targets and keys to logical node ids and applies
// the selection, hover, and lock-feedback rules. Selection has exactly two
// states, none and selected(id); transitions happen only through
// ActivateNode on unlocked nodes, KeyNavigate, and Deselect.
type interaction struct {
	progress ProgressStore
	layout   NodeLayout
	nav      Navigator
	feedback FeedbackSink

	view       *View
	viewport   Rect
	duration   float64
	lessonPath func(nodeID string) string

	selected  string
	hovered   string
	connected []string
	current   string
}

// unlocked consults the progress store. With no store every node is treated
// as locked; selection then simply never happens, which is the degraded
// behavior the map wants when progress data is unavailable.
func (it *interaction) unlocked(nodeID string) bool {
	return it.progress != nil && it.progress.IsUnlocked(nodeID)
}

// ActivateNode is the click/tap/Enter action on a node. Locked nodes get
// transient feedback and nothing else: no selection change, no navigation.
// Unlocked nodes become the selection, the camera eases to center them at
// the current zoom, and the navigator is told to open the lesson.
func (it *interaction) ActivateNode(nodeID string) {
	if it.layout == nil {
		return
	}
	if !it.unlocked(nodeID) {
		if it.feedback != nil {
			it.feedback.LockedFeedback(nodeID)
		}
		return
	}

	it.setSelected(nodeID)
	it.centerOn(nodeID, it.duration)
	if it.nav != nil {
		it.nav.NavigateTo(it.lessonPath(nodeID))
	}
}

// CenterOn animates a pan (zoom preserved) that brings the node's bounds
// center to the viewport center.
func (it *interaction) CenterOn(nodeID string) {
	if it.layout == nil {
		return
	}
	it.centerOn(nodeID, it.duration)
}

func (it *interaction) centerOn(nodeID string, duration float64) {
	bounds, ok := it.layout.NodeBounds(nodeID)
	if !ok {
		return
	}
	cam := it.view.Camera()
	content := cam.ScreenToContent(bounds.Center())
	vc := it.viewport.Center()

	// Solve contentToScreen(content) == viewport center for the pan,
	// keeping the current zoom.
	it.view.AnimateTo(Camera{
		PanX: vc.X - content.X*cam.Zoom,
		PanY: vc.Y - content.Y*cam.Zoom,
		Zoom: cam.Zoom,
	}, duration)
}

// HoverNode toggles the hovered flag on the node and the connected flag on
// its dependency neighborhood, both directions: prerequisites of the node
// and nodes the node is a prerequisite for.
func (it *interaction) HoverNode(nodeID string, entering bool) {
	if it.layout == nil {
		return
	}
	if !entering {
		if nodeID == it.hovered {
			it.clearHover()
		}
		return
	}
	if nodeID == it.hovered {
		return
	}

	it.clearHover()
	it.hovered = nodeID
	it.layout.SetNodeFlag(nodeID, FlagHovered, true)

	deps := it.layout.Dependencies(nodeID)
	rels := make([]string, 0, len(deps))
	rels = append(rels, deps...)
	rels = append(rels, it.layout.Dependents(nodeID)...)

	seen := map[string]bool{nodeID: true}
	for _, rel := range rels {
		if seen[rel] {
			continue
		}
		seen[rel] = true
		it.connected = append(it.connected, rel)
		it.layout.SetNodeFlag(rel, FlagConnected, true)
	}
}

// clearHover removes the hovered flag and the connected neighborhood flags.
func (it *interaction) clearHover() {
	if it.hovered != "" {
		it.layout.SetNodeFlag(it.hovered, FlagHovered, false)
		it.hovered = ""
	}
	for _, rel := range it.connected {
		it.layout.SetNodeFlag(rel, FlagConnected, false)
	}
	it.connected = it.connected[:0]
}

// refreshHover re-applies the hover neighborhood. Called after progress
// changes so a newly unlocked neighbor picks up its connected flag.
func (it *interaction) refreshHover() {
	if it.hovered == "" {
		return
	}
	h := it.hovered
	it.clearHover()
	it.HoverNode(h, true)
}

// KeyNavigate moves the selection to the adjacent unlocked node in the
// layout's fixed cyclic ordering, wrapping at either end. With no current
// selection the first unlocked node is selected.
func (it *interaction) KeyNavigate(dir NavDirection) {
	if it.layout == nil {
		return
	}
	order := it.layout.NodeOrder()
	unlockedIDs := order[:0:0]
	for _, id := range order {
		if it.unlocked(id) {
			unlockedIDs = append(unlockedIDs, id)
		}
	}
	if len(unlockedIDs) == 0 {
		return
	}

	idx := -1
	for i, id := range unlockedIDs {
		if id == it.selected {
			idx = i
			break
		}
	}

	var next string
	switch {
	case idx < 0:
		next = unlockedIDs[0]
	case dir == NavPrev:
		next = unlockedIDs[(idx-1+len(unlockedIDs))%len(unlockedIDs)]
	default:
		next = unlockedIDs[(idx+1)%len(unlockedIDs)]
	}
	it.setSelected(next)
}

// ActivateSelected activates the current selection, if any.
func (it *interaction) ActivateSelected() {
	if it.selected != "" {
		it.ActivateNode(it.selected)
	}
}

// Deselect returns the selection state machine to its initial state.
func (it *interaction) Deselect() {
	it.setSelected("")
}

// Selected returns the selected node id, or "" when nothing is selected.
func (it *interaction) Selected() string {
	return it.selected
}

// setSelected moves the selected flag from the previous node to the new one.
func (it *interaction) setSelected(nodeID string) {
	if nodeID == it.selected {
		return
	}
	if it.selected != "" && it.layout != nil {
		it.layout.SetNodeFlag(it.selected, FlagSelected, false)
	}
	it.selected = nodeID
	if nodeID != "" && it.layout != nil {
		it.layout.SetNodeFlag(nodeID, FlagSelected, true)
	}
}

// setCurrent moves the current-lesson flag to the given node.
func (it *interaction) setCurrent(nodeID string) {
	if nodeID == it.current {
		return
	}
	if it.current != "" && it.layout != nil {
		it.layout.SetNodeFlag(it.current, FlagCurrent, false)
	}
	it.current = nodeID
	if nodeID != "" && it.layout != nil {
		it.layout.SetNodeFlag(nodeID, FlagCurrent, true)
	}
}

// clearFlags removes every flag the controller has written. Used on destroy
// so the renderer isn't left with stale advisory state.
func (it *interaction) clearFlags() {
	if it.layout == nil {
		return
	}
	it.clearHover()
	it.setSelected("")
	it.setCurrent("")
}
