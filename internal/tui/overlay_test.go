package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestOverlayRenderCentersContent(t *testing.T) {
	o := overlay{bg: lipgloss.Color("#1e1e2e")}

	width := 30
	height := 11
	row := strings.Repeat(".", width)
	base := strings.Repeat(row+"\n", height-1) + row
	got := o.Render(base, width, height, "PINNED")

	lines := strings.Split(got, "\n")
	if len(lines) != height {
		t.Fatalf("expected %d lines, got %d", height, len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != width {
			t.Fatalf("line %d width = %d, want %d", i, w, width)
		}
	}

	stripped := ansi.Strip(got)
	if !strings.Contains(stripped, "PINNED") {
		t.Fatal("expected the overlay content in the output")
	}
	mid := strings.Split(stripped, "\n")[height/2]
	if !strings.Contains(mid, "PINNED") {
		t.Errorf("content should land on the middle line, got %q", mid)
	}

	bgSeq := ansi.Style{}.BackgroundColor(ansi.HexColor(string(o.bg))).String()
	if !strings.Contains(got, bgSeq) {
		t.Error("expected the overlay background sequence in the output")
	}
}

func TestOverlayRenderEmptyContentReturnsBase(t *testing.T) {
	o := overlay{bg: lipgloss.Color("#1e1e2e")}
	base := "alpha\nbeta"
	if got := o.Render(base, 10, 2, ""); got != base {
		t.Fatal("empty content must leave the base untouched")
	}
}

func TestOverlayRenderLeavesBaseOutsideBox(t *testing.T) {
	o := overlay{bg: lipgloss.Color("#1e1e2e")}

	width, height := 20, 9
	row := strings.Repeat(".", width)
	base := strings.Repeat(row+"\n", height-1) + row
	got := o.Render(base, width, height, "x")

	lines := strings.Split(ansi.Strip(got), "\n")
	if lines[0] != row {
		t.Errorf("first line changed: %q", lines[0])
	}
	if lines[height-1] != row {
		t.Errorf("last line changed: %q", lines[height-1])
	}
}
