package grid

import (
	"fmt"

	"quorum/internal/slot"
)

// CellLabel builds the accessible description for a grid cell, e.g.
// "Selected 2025-01-20 09:00". Malformed IDs fall back to the raw ID so
// a rendering bug never hides the cell entirely.
func CellLabel(id string, selected bool) string {
	state := "Not selected"
	if selected {
		state = "Selected"
	}
	date, mins, err := slot.Parse(id)
	if err != nil {
		return fmt.Sprintf("%s %s", state, id)
	}
	return fmt.Sprintf("%s %s %s", state, date.Format("2006-01-02"), slot.MinutesToClock(mins))
}
