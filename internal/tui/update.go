package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"quorum/internal/aggregate"
	"quorum/internal/event"
	"quorum/internal/tui/commands"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case initMsg:
		return m, commands.LoadEvents(m.repo)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.BlurMsg:
		// Terminal lost focus with a gesture possibly in flight; this is
		// the pointer-left-the-window case.
		if m.gesture != nil {
			m.gesture.PointerCancel()
		}
		return m, nil

	case commands.EventsLoadedMsg:
		m.events = msg.Events
		m.loadErr = nil
		if m.eventCursor >= len(m.events) {
			m.eventCursor = 0
		}
		return m, nil

	case commands.EventOpenedMsg:
		if err := m.openEvent(msg.Event, msg.Schedule, msg.Viewer); err != nil {
			m.loadErr = err
			return m, nil
		}
		m.loadErr = nil
		if m.pendingResults {
			m.pendingResults = false
			return m, commands.LoadRows(m.repo, m.event)
		}
		m.setPage(PageSelect, "event opened")
		return m, nil

	case commands.RowsLoadedMsg:
		m.agg = aggregate.Aggregate(msg.Rows)
		m.best = aggregate.BestSlots(m.agg, aggregate.DefaultBestSlots)
		m.loadErr = nil
		m.setPage(PageResults, "rows loaded")
		return m, nil

	case commands.SubmittedMsg:
		m.scheduleID = msg.ScheduleID
		if m.viewer.Anonymous() {
			m.viewer.RememberedScheduleID = msg.ScheduleID
		}
		m.status = "Availability submitted"
		return m, tea.Batch(
			commands.LoadRows(m.repo, m.event),
			clearStatusAfter(3*time.Second),
		)

	case commands.CopiedMsg:
		m.status = "Copied best slots to clipboard"
		return m, clearStatusAfter(3 * time.Second)

	case commands.StatusMsgCmd:
		m.status = msg.Msg
		return m, clearStatusAfter(3 * time.Second)

	case commands.ClearStatusMsg:
		m.status = ""
		return m, nil

	case commands.ErrMsg:
		m.loadErr = msg.Err
		LogError("command", msg.Err)
		return m, nil

	case tea.KeyMsg:
		LogKeyPress(msg)
		return m.updateKey(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}

	if m.page == PageForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) setPage(p Page, reason string) {
	LogPageChange(m.page, p, reason)
	m.page = p
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.page {
	case PageEvents:
		return m.updateEventsKey(msg)
	case PageSelect:
		return m.updateSelectKey(msg)
	case PageForm:
		return m.updateFormKey(msg)
	case PageResults:
		return m.updateResultsKey(msg)
	}
	return m, nil
}

func (m *Model) updateEventsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.eventCursor > 0 {
			m.eventCursor--
		}
	case "down", "j":
		if m.eventCursor < len(m.events)-1 {
			m.eventCursor++
		}
	case "enter":
		if e := m.selectedEvent(); e != nil {
			return m, commands.OpenEvent(m.repo, m.store, e.ID, m.cfg.Identity.UserID)
		}
	case "v":
		if e := m.selectedEvent(); e != nil {
			m.pendingResults = true
			return m, commands.OpenEvent(m.repo, m.store, e.ID, m.cfg.Identity.UserID)
		}
	case "r":
		return m, commands.LoadEvents(m.repo)
	}
	return m, nil
}

func (m *Model) selectedEvent() *event.Event {
	if m.eventCursor < 0 || m.eventCursor >= len(m.events) {
		return nil
	}
	return m.events[m.eventCursor]
}

func (m *Model) updateSelectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.setPage(PageEvents, "left selection")
		return m, commands.LoadEvents(m.repo)
	case "up", "k":
		if m.cursorRow > 0 {
			m.cursorRow--
			m.scrollCursorIntoView()
		}
	case "down", "j":
		if m.cursorRow < m.lattice.SlotsPerDay()-1 {
			m.cursorRow++
			m.scrollCursorIntoView()
		}
	case "left", "h":
		if m.cursorDay > 0 {
			m.cursorDay--
		}
	case "right", "l":
		if m.cursorDay < m.lattice.NumDays()-1 {
			m.cursorDay++
		}
	case " ", "enter":
		if id := m.CursorSlotID(); id != "" {
			m.gesture.ToggleCell(id)
			LogGesture("toggle", id, m.gesture.Phase().String(), m.gesture.Mode().String())
		}
	case "s":
		if m.gesture.Committed().Len() == 0 {
			m.status = "Select at least one slot before submitting"
			return m, clearStatusAfter(3 * time.Second)
		}
		m.form = newSubmitForm(m.cfg.Identity.Name, m.cfg.Identity.Email)
		m.setPage(PageForm, "submit requested")
	case "v":
		return m, commands.LoadRows(m.repo, m.event)
	}
	return m, nil
}

func (m *Model) updateFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.setPage(PageSelect, "form cancelled")
		return m, nil
	case "enter":
		ident := m.form.Identity(m.cfg.Identity.UserID)
		if err := ident.Validate(); err != nil {
			m.status = "A name is required"
			return m, clearStatusAfter(3 * time.Second)
		}
		slots, err := m.selectedSlots()
		if err != nil {
			m.loadErr = fmt.Errorf("decoding selection: %w", err)
			return m, nil
		}
		return m, commands.Submit(m.repo, m.store, m.event.ID, m.scheduleID, ident, slots)
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m *Model) updateResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		if m.pinned {
			m.pinned = false
			return m, nil
		}
		m.setPage(PageSelect, "left results")
		return m, nil
	case "up", "k":
		if m.cursorRow > 0 {
			m.cursorRow--
			m.scrollCursorIntoView()
		}
	case "down", "j":
		if m.cursorRow < m.lattice.SlotsPerDay()-1 {
			m.cursorRow++
			m.scrollCursorIntoView()
		}
	case "left", "h":
		if m.cursorDay > 0 {
			m.cursorDay--
		}
	case "right", "l":
		if m.cursorDay < m.lattice.NumDays()-1 {
			m.cursorDay++
		}
	case "enter", " ":
		// Pin the disclosure for the hovered cell into a modal.
		if _, ok := m.cursorAggregation(); ok {
			m.pinned = !m.pinned
		}
	case "c":
		return m, commands.CopyText(m.bestSlotsSummary())
	case "r":
		return m, commands.LoadRows(m.repo, m.event)
	}
	return m, nil
}

// updateMouse feeds pointer events into the gesture machine on the
// selection page and drives hover/pin on the results page.
func (m *Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft && msg.Button != tea.MouseButtonNone {
		return m, nil
	}

	day, row, hit := m.cellAt(msg.X, msg.Y)
	cell := ""
	if hit {
		cell = m.lattice.IDAt(day, row)
	}
	LogMouse(msg, cell, hit)

	switch m.page {
	case PageSelect:
		switch msg.Action {
		case tea.MouseActionPress:
			if hit {
				m.cursorDay, m.cursorRow = day, row
				m.gesture.PointerDown(cell)
				LogGesture("down", cell, m.gesture.Phase().String(), m.gesture.Mode().String())
			}
		case tea.MouseActionMotion:
			if hit {
				m.cursorDay, m.cursorRow = day, row
				m.gesture.PointerEnter(cell)
			}
		case tea.MouseActionRelease:
			m.gesture.PointerUp()
			LogGesture("up", cell, m.gesture.Phase().String(), m.gesture.Mode().String())
		}

	case PageResults:
		switch msg.Action {
		case tea.MouseActionMotion:
			// Hover moves the disclosure cursor unless pinned.
			if hit && !m.pinned {
				m.cursorDay, m.cursorRow = day, row
			}
		case tea.MouseActionPress:
			if hit {
				m.cursorDay, m.cursorRow = day, row
				if _, ok := m.cursorAggregation(); ok {
					m.pinned = !m.pinned
				}
			}
		}
	}

	return m, nil
}
