package tui

import (
	"github.com/charmbracelet/lipgloss"

	"quorum/internal/tui/theme"
)

// Styles holds the lipgloss styles used by the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style

	DayHeader lipgloss.Style
	TimeLabel lipgloss.Style

	Cell         lipgloss.Style
	CellSelected lipgloss.Style
	CellCursor   lipgloss.Style
	CellMine     lipgloss.Style

	ListItem     lipgloss.Style
	ListSelected lipgloss.Style

	Panel       lipgloss.Style
	PanelTitle  lipgloss.Style
	Modal       lipgloss.Style
	ModalTitle  lipgloss.Style
	ModalMuted  lipgloss.Style
	FormLabel   lipgloss.Style
	FormFocused lipgloss.Style
}

// NewStyles builds styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)

	return &Styles{
		palette: p,

		Title:    lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(p.FgMuted),
		Status:   lipgloss.NewStyle().Foreground(p.Fg),
		Error:    lipgloss.NewStyle().Foreground(p.Warning).Bold(true),
		Help:     lipgloss.NewStyle().Foreground(p.FgMuted),

		DayHeader: lipgloss.NewStyle().Foreground(p.Accent),
		TimeLabel: lipgloss.NewStyle().Foreground(p.FgMuted),

		Cell:         lipgloss.NewStyle().Background(p.BgHighlight),
		CellSelected: lipgloss.NewStyle().Background(p.Selected).Foreground(p.TextOnSelected),
		CellCursor:   lipgloss.NewStyle().Background(p.BgSelection).Foreground(p.Fg),
		CellMine:     lipgloss.NewStyle().Background(p.Mine).Foreground(p.Bg),

		ListItem:     lipgloss.NewStyle().Foreground(p.Fg),
		ListSelected: lipgloss.NewStyle().Foreground(p.Accent).Bold(true),

		Panel:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.ModalBorder).Padding(0, 1),
		PanelTitle:  lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		Modal:       lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(p.ModalBorder).Padding(1, 2),
		ModalTitle:  lipgloss.NewStyle().Foreground(p.ModalText).Bold(true),
		ModalMuted:  lipgloss.NewStyle().Foreground(p.ModalMuted),
		FormLabel:   lipgloss.NewStyle().Foreground(p.FgMuted),
		FormFocused: lipgloss.NewStyle().Foreground(p.Accent),
	}
}

// Palette exposes the derived palette for band coloring.
func (s *Styles) Palette() *theme.Palette {
	return s.palette
}
