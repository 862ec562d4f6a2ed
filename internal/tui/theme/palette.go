// Package theme provides color themes for the TUI.
package theme

import (
	"math"

	"github.com/charmbracelet/lipgloss"

	"quorum/internal/aggregate"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Selected    lipgloss.Color
	Mine        lipgloss.Color
	Warning     lipgloss.Color

	// Heat ramp, one background per band, strongest first.
	HeatA lipgloss.Color
	HeatB lipgloss.Color
	HeatC lipgloss.Color
	HeatD lipgloss.Color
	HeatE lipgloss.Color

	TextOnAccent   lipgloss.Color
	TextOnSelected lipgloss.Color
	TextOnHeat     lipgloss.Color
	TextOnWarning  lipgloss.Color

	ModalBorder lipgloss.Color
	ModalText   lipgloss.Color
	ModalMuted  lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load("mocha")
	}

	heatA := t.Heat
	heatB := blendColors(t.Heat, t.Bg, 0.25)
	heatC := blendColors(t.Heat, t.Bg, 0.45)
	heatD := blendColors(t.Heat, t.Bg, 0.65)
	heatE := blendColors(t.Heat, t.Bg, 0.82)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Selected:    lipgloss.Color(t.Selected),
		Mine:        lipgloss.Color(t.Mine),
		Warning:     lipgloss.Color(t.Warning),

		HeatA: lipgloss.Color(heatA),
		HeatB: lipgloss.Color(heatB),
		HeatC: lipgloss.Color(heatC),
		HeatD: lipgloss.Color(heatD),
		HeatE: lipgloss.Color(heatE),

		TextOnAccent:   lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnSelected: lipgloss.Color(chooseTextColor(t.Selected, t.Bg, t.Fg)),
		TextOnHeat:     lipgloss.Color(chooseTextColor(heatA, t.Bg, t.Fg)),
		TextOnWarning:  lipgloss.Color(chooseTextColor(t.Warning, t.Bg, t.Fg)),

		ModalBorder: lipgloss.Color(coalesce(t.ModalBorder, t.Accent)),
		ModalText:   lipgloss.Color(coalesce(t.TextPrimary, t.Fg)),
		ModalMuted:  lipgloss.Color(coalesce(t.TextMuted, t.FgMuted)),
	}
}

// HeatColor returns the cell background for a heat band.
// BandNone gets the plain unselected cell background.
func (p *Palette) HeatColor(b aggregate.Band) lipgloss.Color {
	switch b {
	case aggregate.BandA:
		return p.HeatA
	case aggregate.BandB:
		return p.HeatB
	case aggregate.BandC:
		return p.HeatC
	case aggregate.BandD:
		return p.HeatD
	case aggregate.BandE:
		return p.HeatE
	default:
		return p.BgHighlight
	}
}

func chooseTextColor(bg, lightText, darkText string) string {
	lightContrast := contrastRatio(bg, lightText)
	darkContrast := contrastRatio(bg, darkText)
	if lightContrast >= darkContrast {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	if len(hex) != 7 || hex[0] != '#' {
		return 0
	}
	var r, g, b int
	parseHex(hex[1:3], &r)
	parseHex(hex[3:5], &g)
	parseHex(hex[5:7], &b)
	return 0.2126*srgbToLinear(r) + 0.7152*srgbToLinear(g) + 0.0722*srgbToLinear(b)
}

func srgbToLinear(c int) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// parseHex parses a 2-character hex string into an integer.
func parseHex(s string, v *int) {
	var val int
	for i := 0; i < len(s); i++ {
		val *= 16
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	*v = val
}

// formatHexColor formats RGB values as a hex color string.
func formatHexColor(r, g, b int) string {
	const hex = "0123456789abcdef"
	result := make([]byte, 7)
	result[0] = '#'
	result[1] = hex[r>>4]
	result[2] = hex[r&0xf]
	result[3] = hex[g>>4]
	result[4] = hex[g&0xf]
	result[5] = hex[b>>4]
	result[6] = hex[b&0xf]
	return string(result)
}

func blendColors(a, b string, ratio float64) string {
	if len(a) != 7 || a[0] != '#' || len(b) != 7 || b[0] != '#' {
		return a
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	var ar, ag, ab int
	var br, bg, bb int
	parseHex(a[1:3], &ar)
	parseHex(a[3:5], &ag)
	parseHex(a[5:7], &ab)
	parseHex(b[1:3], &br)
	parseHex(b[3:5], &bg)
	parseHex(b[5:7], &bb)

	r := int(float64(ar)*(1-ratio) + float64(br)*ratio)
	g := int(float64(ag)*(1-ratio) + float64(bg)*ratio)
	bv := int(float64(ab)*(1-ratio) + float64(bb)*ratio)

	return formatHexColor(r, g, bv)
}
