// Package tui implements the interactive terminal interface: an event
// list, the drag-to-select availability grid, and the aggregate heatmap.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"quorum/internal/aggregate"
	"quorum/internal/config"
	"quorum/internal/event"
	"quorum/internal/grid"
	"quorum/internal/identity"
	"quorum/internal/slot"
	"quorum/internal/tui/theme"
)

// Page identifies the active screen.
type Page int

const (
	PageEvents Page = iota
	PageSelect
	PageForm
	PageResults
)

// String implements fmt.Stringer for debug logs.
func (p Page) String() string {
	switch p {
	case PageEvents:
		return "events"
	case PageSelect:
		return "select"
	case PageForm:
		return "form"
	case PageResults:
		return "results"
	default:
		return "unknown"
	}
}

// Grid geometry. The selection and results grids share a fixed layout:
// the header block is headerLines tall, each lattice row is one line,
// and each day column is cellWidth characters after the time gutter.
const (
	headerLines  = 4
	timeColWidth = 6
	cellWidth    = 4
)

// Model is the root bubbletea model.
type Model struct {
	repo   event.Repository
	cfg    *config.Config
	store  *identity.Store
	styles *Styles

	page   Page
	width  int
	height int

	// Events page
	events      []*event.Event
	eventCursor int

	// Open event (select, form, and results pages)
	event      *event.Event
	lattice    *slot.Lattice
	viewer     identity.Viewer
	scheduleID string // viewer's existing schedule, "" if none

	// Selection page
	gesture   *grid.Gesture
	cursorDay int
	cursorRow int
	scrollRow int

	// Form page
	form submitForm

	// Results page
	agg     aggregate.Result
	best    []aggregate.RankedSlot
	pinned  bool // disclosure pinned into a modal
	overlay overlay

	// Set when the results view was requested before the event loaded.
	pendingResults bool

	status  string
	loadErr error
}

// New creates the root model.
func New(repo event.Repository, cfg *config.Config) *Model {
	t, _ := theme.Load(cfg.UI.Theme)
	styles := NewStyles(t)
	return &Model{
		repo:    repo,
		cfg:     cfg,
		store:   identity.NewStore(config.DefaultStateDir()),
		styles:  styles,
		page:    PageEvents,
		overlay: overlay{bg: styles.Palette().Bg},
	}
}

// Styles exposes the style set, mainly for view tests.
func (m *Model) Styles() *Styles {
	return m.styles
}

// Page returns the active page.
func (m *Model) Page() Page {
	return m.page
}

// Gesture exposes the selection gesture machine.
func (m *Model) Gesture() *grid.Gesture {
	return m.gesture
}

// CursorSlotID returns the slot id under the keyboard cursor, or "".
func (m *Model) CursorSlotID() string {
	if m.lattice == nil {
		return ""
	}
	return m.lattice.IDAt(m.cursorDay, m.cursorRow)
}

// cellAt maps terminal coordinates to a lattice cell.
func (m *Model) cellAt(x, y int) (day, row int, ok bool) {
	if m.lattice == nil {
		return 0, 0, false
	}
	row = y - headerLines + m.scrollRow
	if row < 0 || row >= m.lattice.SlotsPerDay() {
		return 0, 0, false
	}
	if x < timeColWidth {
		return 0, 0, false
	}
	day = (x - timeColWidth) / cellWidth
	if day < 0 || day >= m.lattice.NumDays() {
		return 0, 0, false
	}
	return day, row, true
}

// visibleRows is how many lattice rows fit under the header and footer.
func (m *Model) visibleRows() int {
	rows := m.height - headerLines - 2
	if m.lattice != nil && rows > m.lattice.SlotsPerDay() {
		rows = m.lattice.SlotsPerDay()
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

// scrollCursorIntoView adjusts the scroll offset after cursor movement.
func (m *Model) scrollCursorIntoView() {
	if m.cursorRow < m.scrollRow {
		m.scrollRow = m.cursorRow
	}
	if last := m.scrollRow + m.visibleRows() - 1; m.cursorRow > last {
		m.scrollRow = m.cursorRow - m.visibleRows() + 1
	}
}

// openEvent installs a loaded event and the viewer's prior submission.
func (m *Model) openEvent(e *event.Event, sched *event.Schedule, viewer identity.Viewer) error {
	lat, err := e.Lattice()
	if err != nil {
		return err
	}

	committed := grid.NewSelection()
	scheduleID := ""
	if sched != nil {
		scheduleID = sched.ID
		ids := make([]string, 0, len(sched.Availability))
		for _, a := range sched.Availability {
			ids = append(ids, a.SlotID())
		}
		committed = grid.SelectionOf(ids...)
	}

	m.event = e
	m.lattice = lat
	m.viewer = viewer
	m.scheduleID = scheduleID
	m.gesture = grid.NewGesture(committed)
	m.cursorDay, m.cursorRow, m.scrollRow = 0, 0, 0
	m.pinned = false
	return nil
}

// selectedSlots decodes the committed selection into availability values.
func (m *Model) selectedSlots() ([]event.Availability, error) {
	ids := m.gesture.Committed().IDs()
	out := make([]event.Availability, 0, len(ids))
	for _, id := range ids {
		a, err := event.AvailabilityFromSlotID(id, m.event.SlotDuration)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// cursorAggregation returns the aggregation under the cursor on the
// results page. The second value is false for cells nobody selected.
func (m *Model) cursorAggregation() (aggregate.SlotAggregation, bool) {
	id := m.CursorSlotID()
	for _, sa := range m.agg.Slots {
		if sa.SlotID == id {
			return sa, true
		}
	}
	return aggregate.SlotAggregation{}, false
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg { return initMsg{} }
}

type initMsg struct{}
