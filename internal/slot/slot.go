// Package slot defines the canonical time-slot identity scheme shared by the
// editable grid, the heatmap, and the aggregation engine.
package slot

import (
	"errors"
	"fmt"
	"time"

	"quorum/internal/dateutil"
)

// Slot errors.
var (
	ErrInvalidID       = errors.New("malformed slot identifier")
	ErrInvalidDuration = errors.New("slot duration must be 15, 30, or 60 minutes")
)

// MinutesPerDay is 24 hours * 60 minutes.
const MinutesPerDay = 1440

// Durations lists the allowed slot durations in minutes.
var Durations = []int{15, 30, 60}

// ValidDuration reports whether d is an allowed slot duration.
func ValidDuration(d int) bool {
	for _, v := range Durations {
		if v == d {
			return true
		}
	}
	return false
}

// ID returns the canonical identifier for the slot starting at startMinutes
// (minutes since midnight) on the given calendar date. The identifier is
// derived, never stored: "2025-01-20_09:00".
func ID(date time.Time, startMinutes int) string {
	return fmt.Sprintf("%s_%02d:%02d", date.Format("2006-01-02"), startMinutes/60, startMinutes%60)
}

// Parse inverts ID, returning the calendar date (midnight) and the start
// minute-of-day. Identifiers are always code-generated, so a parse failure
// indicates a bug in the caller rather than bad user input; use MustParse
// where that contract holds.
func Parse(id string) (time.Time, int, error) {
	// "2006-01-02_15:04" is exactly 16 bytes.
	if len(id) != 16 || id[10] != '_' {
		return time.Time{}, 0, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	date, err := dateutil.ParseDate(id[:10])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	clock, err := time.Parse("15:04", id[11:])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	return date, clock.Hour()*60 + clock.Minute(), nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(id string) (time.Time, int) {
	date, mins, err := Parse(id)
	if err != nil {
		panic(err)
	}
	return date, mins
}

// MinutesToClock formats minutes since midnight as "HH:MM".
func MinutesToClock(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= MinutesPerDay {
		m = MinutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ClockToMinutes converts "HH:MM" to minutes since midnight.
// Returns 0 for invalid input.
func ClockToMinutes(s string) int {
	if len(s) != 5 || s[2] != ':' {
		return 0
	}
	for _, i := range [...]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0
		}
	}
	hours := int(s[0]-'0')*10 + int(s[1]-'0')
	mins := int(s[3]-'0')*10 + int(s[4]-'0')
	if hours > 23 || mins > 59 {
		return 0
	}
	return hours*60 + mins
}
