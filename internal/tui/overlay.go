package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// overlay composites an opaque box over already-rendered page content.
// The pinned disclosure modal is drawn this way so the heatmap stays
// visible around it and keeps its own styling.
type overlay struct {
	bg lipgloss.Color
}

// Render draws content centered on top of base. The base is normalized
// to width x height first; styled cells outside the box are untouched.
func (o overlay) Render(base string, width, height int, content string) string {
	if width <= 0 || height <= 0 || content == "" {
		return base
	}

	contentLines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	boxW, boxH := blockSize(contentLines)
	if boxW > width {
		boxW = width
	}
	if boxH > height {
		boxH = height
	}

	top := (height - boxH) / 2
	left := (width - boxW) / 2

	bgSeq := ansi.Style{}.BackgroundColor(ansi.HexColor(string(o.bg))).String()
	baseLines := normalizeBlock(base, width, height)

	lines := make([]string, 0, height)
	for row := 0; row < height; row++ {
		if row < top || row >= top+boxH {
			lines = append(lines, baseLines[row])
			continue
		}

		line := contentLines[row-top]
		if w := lipgloss.Width(line); w > boxW {
			line = ansi.Cut(line, 0, boxW)
		} else if w < boxW {
			line += strings.Repeat(" ", boxW-w)
		}
		// Inner resets would drop the box background; re-arm it.
		line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+bgSeq)

		baseLine := baseLines[row]
		lines = append(lines,
			ansi.Cut(baseLine, 0, left)+
				bgSeq+line+ansi.ResetStyle+
				ansi.Cut(baseLine, left+boxW, width))
	}

	return strings.Join(lines, "\n")
}

// blockSize measures a block of lines in terminal cells.
func blockSize(lines []string) (w, h int) {
	for _, line := range lines {
		if lw := lipgloss.Width(line); lw > w {
			w = lw
		}
	}
	return w, len(lines)
}

// normalizeBlock pads or cuts base to exactly width x height.
func normalizeBlock(base string, width, height int) []string {
	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]

	for i, line := range lines {
		switch w := lipgloss.Width(line); {
		case w > width:
			lines[i] = ansi.Cut(line, 0, width)
		case w < width:
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return lines
}
