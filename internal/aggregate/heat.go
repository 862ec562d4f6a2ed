package aggregate

// Band is a discrete heatmap intensity band. Discrete banding keeps the
// palette legible; the ordering and thresholds are the contract, the colors
// belong to the theme.
type Band int

const (
	BandNone Band = iota // count == 0, no fill
	BandE                // faintest
	BandD
	BandC
	BandB
	BandA // strongest
)

// String returns the band name for logs and tests.
func (b Band) String() string {
	switch b {
	case BandA:
		return "A"
	case BandB:
		return "B"
	case BandC:
		return "C"
	case BandD:
		return "D"
	case BandE:
		return "E"
	default:
		return "none"
	}
}

// Intensity returns count/maxCount. maxCount is floored at 1 upstream
// (Result.MaxCount), so the division is always defined.
func Intensity(count, maxCount int) float64 {
	if maxCount < 1 {
		maxCount = 1
	}
	return float64(count) / float64(maxCount)
}

// BandFor maps a per-slot count onto its intensity band:
// intensity >= 0.8 -> A, >= 0.6 -> B, >= 0.4 -> C, >= 0.2 -> D,
// anything above zero -> E, and a zero count -> BandNone.
func BandFor(count, maxCount int) Band {
	if count == 0 {
		return BandNone
	}
	intensity := Intensity(count, maxCount)
	switch {
	case intensity >= 0.8:
		return BandA
	case intensity >= 0.6:
		return BandB
	case intensity >= 0.4:
		return BandC
	case intensity >= 0.2:
		return BandD
	default:
		return BandE
	}
}
