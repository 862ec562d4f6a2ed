package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quorum/internal/aggregate"
	"quorum/internal/grid"
	"quorum/internal/identity"
	"quorum/internal/slot"
)

// View implements tea.Model.
func (m *Model) View() string {
	switch m.page {
	case PageEvents:
		return m.viewEvents()
	case PageSelect:
		return m.viewSelect()
	case PageForm:
		return m.viewForm()
	case PageResults:
		return m.viewResults()
	}
	return ""
}

func (m *Model) statusLine() string {
	if m.loadErr != nil {
		return m.styles.Error.Render("Error: " + m.loadErr.Error())
	}
	if m.status != "" {
		return m.styles.Status.Render(m.status)
	}
	return ""
}

func (m *Model) viewEvents() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("quorum") + "  " +
		m.styles.Subtitle.Render("find a time that works") + "\n")
	b.WriteString(m.statusLine() + "\n\n")

	if len(m.events) == 0 {
		b.WriteString(m.styles.Subtitle.Render("No events yet. Create one with: quorum create") + "\n")
	}
	for i, e := range m.events {
		line := fmt.Sprintf("%s  %s to %s  %d min",
			e.Name,
			e.DateRangeStart.Format("2006-01-02"),
			e.DateRangeEnd.Format("2006-01-02"),
			e.SlotDuration,
		)
		if i == m.eventCursor {
			b.WriteString(m.styles.ListSelected.Render("> "+line) + "\n")
		} else {
			b.WriteString(m.styles.ListItem.Render("  "+line) + "\n")
		}
	}

	b.WriteString("\n" + m.styles.Help.Render("enter open · v results · r refresh · q quit"))
	return b.String()
}

// dayHeader renders the two header lines of the grid: weekday and date.
func (m *Model) dayHeader() (string, string) {
	var wd, md strings.Builder
	wd.WriteString(strings.Repeat(" ", timeColWidth))
	md.WriteString(strings.Repeat(" ", timeColWidth))
	for _, d := range m.lattice.Dates() {
		wd.WriteString(m.styles.DayHeader.Render(pad(d.Format("Mon")[:3], cellWidth)))
		md.WriteString(m.styles.DayHeader.Render(pad(d.Format("2"), cellWidth)))
	}
	return wd.String(), md.String()
}

func pad(s string, w int) string {
	if len(s) >= w {
		return s[:w]
	}
	return s + strings.Repeat(" ", w-len(s))
}

// timeLabel renders the gutter for a lattice row. Only rows on the hour
// are labeled, to keep the gutter readable at 15-minute durations.
func (m *Model) timeLabel(row int) string {
	mins := m.lattice.MinutesAt(row)
	if mins%60 != 0 && m.lattice.SlotsPerDay() > 24 {
		return strings.Repeat(" ", timeColWidth)
	}
	return m.styles.TimeLabel.Render(pad(slot.MinutesToClock(mins), timeColWidth))
}

func (m *Model) viewSelect() string {
	var b strings.Builder

	cursorID := m.CursorSlotID()
	b.WriteString(m.styles.Title.Render(m.event.Name) + "  " +
		m.styles.Subtitle.Render(fmt.Sprintf("%d selected · %s",
			m.gesture.Committed().Len(),
			grid.CellLabel(cursorID, m.gesture.CellSelected(cursorID)))) + "\n")
	b.WriteString(m.statusLine() + "\n")

	wd, md := m.dayHeader()
	b.WriteString(wd + "\n" + md + "\n")

	last := m.scrollRow + m.visibleRows()
	if last > m.lattice.SlotsPerDay() {
		last = m.lattice.SlotsPerDay()
	}
	for row := m.scrollRow; row < last; row++ {
		b.WriteString(m.timeLabel(row))
		for day := 0; day < m.lattice.NumDays(); day++ {
			b.WriteString(m.renderSelectCell(day, row))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + m.styles.Help.Render("drag or space to select · s submit · v results · esc back"))
	return b.String()
}

// renderSelectCell renders one selection-grid cell. Drag-set membership
// rendered per the gesture mode overrides the committed value.
func (m *Model) renderSelectCell(day, row int) string {
	id := m.lattice.IDAt(day, row)
	selected := m.gesture.CellSelected(id)
	cursor := day == m.cursorDay && row == m.cursorRow

	content := "    "
	if selected {
		content = " ✓  "
	}

	switch {
	case cursor:
		return m.styles.CellCursor.Render(content)
	case selected:
		return m.styles.CellSelected.Render(content)
	default:
		return m.styles.Cell.Render(content)
	}
}

func (m *Model) viewForm() string {
	var b strings.Builder

	b.WriteString(m.styles.ModalTitle.Render("Submit availability") + "\n\n")
	b.WriteString(m.styles.FormLabel.Render("Name") + "\n")
	b.WriteString(m.form.name.View() + "\n\n")
	b.WriteString(m.styles.FormLabel.Render("Email") + "\n")
	b.WriteString(m.form.email.View() + "\n\n")
	b.WriteString(m.styles.ModalMuted.Render(
		fmt.Sprintf("%d slots selected · enter submit · esc cancel", m.gesture.Committed().Len())))

	box := m.styles.Modal.Render(b.String())
	status := m.statusLine()
	if status == "" {
		return box
	}
	return box + "\n" + status
}

func (m *Model) viewResults() string {
	counts := m.agg.CountBySlotID()
	maxCount := m.agg.MaxCount()

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.event.Name+" · results") + "  " +
		m.styles.Subtitle.Render(fmt.Sprintf("%d participants", m.agg.TotalParticipants)) + "\n")
	b.WriteString(m.statusLine() + "\n")

	wd, md := m.dayHeader()
	b.WriteString(wd + "\n" + md + "\n")

	last := m.scrollRow + m.visibleRows()
	if last > m.lattice.SlotsPerDay() {
		last = m.lattice.SlotsPerDay()
	}
	var gridRows []string
	for row := m.scrollRow; row < last; row++ {
		var line strings.Builder
		line.WriteString(m.timeLabel(row))
		for day := 0; day < m.lattice.NumDays(); day++ {
			line.WriteString(m.renderHeatCell(day, row, counts, maxCount))
		}
		gridRows = append(gridRows, line.String())
	}

	gridBlock := strings.Join(gridRows, "\n")
	panel := m.disclosurePanel()
	body := lipgloss.JoinHorizontal(lipgloss.Top, gridBlock, "  ", panel)
	b.WriteString(body + "\n")

	b.WriteString("\n" + m.styles.Help.Render("move or hover to inspect · enter pin · c copy best · r refresh · esc back"))

	if m.pinned {
		if sa, ok := m.cursorAggregation(); ok {
			return m.overlay.Render(b.String(), m.width, m.height, m.disclosureModal(sa))
		}
	}
	return b.String()
}

// renderHeatCell renders one heatmap cell: band-colored background with
// the participant count, the viewer's own slots marked.
func (m *Model) renderHeatCell(day, row int, counts map[string]int, maxCount int) string {
	id := m.lattice.IDAt(day, row)
	count := counts[id]
	cursor := day == m.cursorDay && row == m.cursorRow

	content := "    "
	if count > 0 {
		content = fmt.Sprintf("%3d ", count)
	}

	mine := false
	if sa, ok := m.slotAggregation(id); ok {
		for _, p := range sa.Participants {
			if identity.IsViewerSlot(p.UserID, p.ScheduleID, m.viewer) {
				mine = true
				break
			}
		}
	}

	if cursor {
		return m.styles.CellCursor.Render(content)
	}
	if mine {
		return m.styles.CellMine.Render(content)
	}

	band := aggregate.BandFor(count, maxCount)
	bg := m.styles.Palette().HeatColor(band)
	style := lipgloss.NewStyle().Background(bg)
	if band >= aggregate.BandC {
		style = style.Foreground(m.styles.Palette().TextOnHeat)
	}
	return style.Render(content)
}

func (m *Model) slotAggregation(id string) (aggregate.SlotAggregation, bool) {
	for _, sa := range m.agg.Slots {
		if sa.SlotID == id {
			return sa, true
		}
	}
	return aggregate.SlotAggregation{}, false
}

// disclosurePanel shows the hovered cell's participants and the ranked
// best slots beside the heatmap.
func (m *Model) disclosurePanel() string {
	var b strings.Builder

	if sa, ok := m.cursorAggregation(); ok {
		d := sa.Disclose(true)
		b.WriteString(m.styles.PanelTitle.Render(formatSlot(sa)) + "\n")
		b.WriteString(fmt.Sprintf("%d available\n", d.Count))
		for _, p := range d.Participants {
			line := p.DisplayName
			if identity.IsViewerSlot(p.UserID, p.ScheduleID, m.viewer) {
				line += " (you)"
			}
			b.WriteString("  " + line + "\n")
		}
	} else {
		b.WriteString(m.styles.PanelTitle.Render(formatSlotID(m.CursorSlotID())) + "\n")
		b.WriteString("nobody available\n")
	}

	b.WriteString("\n" + m.styles.PanelTitle.Render("Best slots") + "\n")
	if len(m.best) == 0 {
		b.WriteString(m.styles.ModalMuted.Render("no submissions yet"))
	}
	for i, rs := range m.best {
		b.WriteString(fmt.Sprintf("%d. %s  %d (%.0f%%)\n", i+1, formatSlot(rs.SlotAggregation), rs.Count, rs.Percent))
	}

	return m.styles.Panel.Render(strings.TrimRight(b.String(), "\n"))
}

// disclosureModal is the pinned variant of the disclosure panel. It
// shows the same data; pinning just keeps it put while the pointer moves.
func (m *Model) disclosureModal(sa aggregate.SlotAggregation) string {
	d := sa.Disclose(true)

	var b strings.Builder
	b.WriteString(m.styles.ModalTitle.Render(formatSlot(sa)) + "\n")
	b.WriteString(fmt.Sprintf("%d of %d available\n\n", d.Count, m.agg.TotalParticipants))
	for _, p := range d.Participants {
		line := p.DisplayName
		if p.Email != "" {
			line += "  <" + p.Email + ">"
		}
		if identity.IsViewerSlot(p.UserID, p.ScheduleID, m.viewer) {
			line += "  (you)"
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + m.styles.ModalMuted.Render("enter or esc to unpin"))

	return m.styles.Modal.Render(b.String())
}

func formatSlotID(id string) string {
	date, mins, err := slot.Parse(id)
	if err != nil {
		return id
	}
	return fmt.Sprintf("%s %s", date.Format("Mon Jan 2"), slot.MinutesToClock(mins))
}

func formatSlot(sa aggregate.SlotAggregation) string {
	return fmt.Sprintf("%s %s-%s",
		sa.Date.Format("Mon Jan 2"),
		slot.MinutesToClock(sa.StartTime),
		slot.MinutesToClock(sa.EndTime))
}

// bestSlotsSummary builds the plain-text summary copied to the clipboard.
func (m *Model) bestSlotsSummary() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Best slots for %s:\n", m.event.Name))
	for i, rs := range m.best {
		b.WriteString(fmt.Sprintf("%d. %s: %d of %d available (%.0f%%)\n",
			i+1, formatSlot(rs.SlotAggregation), rs.Count, m.agg.TotalParticipants, rs.Percent))
	}
	return b.String()
}
