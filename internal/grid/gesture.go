package grid

// Mode is fixed at press time from the pressed cell's committed state
// and applied to the whole gesture, whatever cells it later crosses.
type Mode int

const (
	ModeSelect Mode = iota
	ModeDeselect
)

// String implements fmt.Stringer for debug output.
func (m Mode) String() string {
	if m == ModeDeselect {
		return "deselect"
	}
	return "select"
}

// Phase is the gesture's discrete state.
type Phase int

const (
	// PhaseIdle means no button is held.
	PhaseIdle Phase = iota
	// PhasePendingClick means the button is held but the pointer has not
	// left the pressed cell. Releasing here is a plain toggle.
	PhasePendingClick
	// PhaseDragging means a second cell was entered while held.
	// Releasing here applies the mode to the whole drag set.
	PhaseDragging
)

// String implements fmt.Stringer for debug output.
func (p Phase) String() string {
	switch p {
	case PhasePendingClick:
		return "pending-click"
	case PhaseDragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Gesture is the drag-to-select state machine for a selection grid.
// It owns the committed selection and the transient drag set. All
// transitions are synchronous; the caller feeds it pointer events and
// reads the committed selection back out.
type Gesture struct {
	committed *Selection

	phase   Phase
	mode    Mode
	origin  string
	dragSet map[string]struct{}
}

// NewGesture creates a gesture machine over an initial committed selection.
func NewGesture(committed *Selection) *Gesture {
	if committed == nil {
		committed = NewSelection()
	}
	return &Gesture{committed: committed, phase: PhaseIdle}
}

// Committed returns the committed selection.
func (g *Gesture) Committed() *Selection {
	return g.committed
}

// SetCommitted replaces the committed selection, e.g. after loading a
// stored schedule. Any gesture in progress is discarded.
func (g *Gesture) SetCommitted(s *Selection) {
	if s == nil {
		s = NewSelection()
	}
	g.committed = s
	g.reset()
}

// Phase returns the current gesture phase.
func (g *Gesture) Phase() Phase {
	return g.phase
}

// Mode returns the gesture's mode. Only meaningful outside PhaseIdle.
func (g *Gesture) Mode() Mode {
	return g.mode
}

// PointerDown starts a gesture on the given cell. The mode is inferred
// here and never changes: pressing a selected cell starts a deselect
// gesture, pressing an unselected cell a select gesture.
func (g *Gesture) PointerDown(cell string) {
	if g.phase != PhaseIdle {
		// A stray second press while held; commit what we have first.
		g.PointerUp()
	}
	g.phase = PhasePendingClick
	g.origin = cell
	if g.committed.Contains(cell) {
		g.mode = ModeDeselect
	} else {
		g.mode = ModeSelect
	}
	g.dragSet = map[string]struct{}{cell: {}}
}

// PointerEnter records the pointer crossing into a cell while held.
// Entering any cell other than the origin promotes the gesture to
// Dragging. The drag set only ever grows; revisiting cells is harmless.
func (g *Gesture) PointerEnter(cell string) {
	switch g.phase {
	case PhaseIdle:
		return
	case PhasePendingClick:
		if cell == g.origin {
			return
		}
		g.phase = PhaseDragging
	}
	g.dragSet[cell] = struct{}{}
}

// PointerUp ends the gesture. In PendingClick the press never left its
// cell, so it is a plain toggle. In Dragging the mode is applied to
// every cell the gesture crossed.
func (g *Gesture) PointerUp() {
	switch g.phase {
	case PhasePendingClick:
		g.committed = g.committed.Toggle(g.origin)
	case PhaseDragging:
		g.applyDragSet()
	}
	g.reset()
}

// PointerCancel handles the pointer leaving the window while held.
// A pending click is discarded without touching the committed set.
// A drag in progress cannot be cancelled and commits like a release.
func (g *Gesture) PointerCancel() {
	if g.phase == PhaseDragging {
		g.applyDragSet()
	}
	g.reset()
}

// ToggleCell flips a cell's committed membership directly. This is the
// keyboard path (space/enter on the focused cell): no drag semantics,
// no mode inference. Ignored mid-gesture.
func (g *Gesture) ToggleCell(cell string) {
	if g.phase != PhaseIdle {
		return
	}
	g.committed = g.committed.Toggle(cell)
}

// CellSelected reports the cell's visual state: while a gesture is in
// progress, drag-set membership rendered per the mode overrides the
// committed value.
func (g *Gesture) CellSelected(cell string) bool {
	if g.phase != PhaseIdle {
		if _, inDrag := g.dragSet[cell]; inDrag {
			return g.mode == ModeSelect
		}
	}
	return g.committed.Contains(cell)
}

// InDragSet reports whether the cell is part of the gesture in progress.
func (g *Gesture) InDragSet(cell string) bool {
	if g.phase == PhaseIdle {
		return false
	}
	_, ok := g.dragSet[cell]
	return ok
}

func (g *Gesture) applyDragSet() {
	ids := make([]string, 0, len(g.dragSet))
	for id := range g.dragSet {
		ids = append(ids, id)
	}
	if g.mode == ModeSelect {
		g.committed = g.committed.With(ids...)
	} else {
		g.committed = g.committed.Without(ids...)
	}
}

func (g *Gesture) reset() {
	g.phase = PhaseIdle
	g.origin = ""
	g.dragSet = nil
}
