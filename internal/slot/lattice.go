package slot

import (
	"time"

	"quorum/internal/dateutil"
)

// Lattice is the immutable grid of slots spanned by an event: one column per
// calendar date in the range (ascending, inclusive) and one row per
// time-of-day value, stepping by the slot duration from midnight.
type Lattice struct {
	start    time.Time
	end      time.Time
	duration int
}

// NewLattice creates a Lattice for the inclusive date range and duration.
func NewLattice(start, end time.Time, duration int) (*Lattice, error) {
	if !ValidDuration(duration) {
		return nil, ErrInvalidDuration
	}
	if end.Before(start) {
		return nil, dateutil.ErrEndDateBeforeStart
	}
	return &Lattice{
		start:    dateutil.TruncateToDay(start),
		end:      dateutil.TruncateToDay(end),
		duration: duration,
	}, nil
}

// Duration returns the slot duration in minutes.
func (l *Lattice) Duration() int {
	return l.duration
}

// NumDays returns the number of date columns.
func (l *Lattice) NumDays() int {
	return dateutil.DaysBetween(l.start, l.end) + 1
}

// SlotsPerDay returns the number of time rows per day.
func (l *Lattice) SlotsPerDay() int {
	return MinutesPerDay / l.duration
}

// TotalSlots returns the total number of cells in the lattice.
func (l *Lattice) TotalSlots() int {
	return l.NumDays() * l.SlotsPerDay()
}

// Dates returns every date column, ascending.
func (l *Lattice) Dates() []time.Time {
	dates := make([]time.Time, 0, l.NumDays())
	for d := l.start; !d.After(l.end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// Times returns every time row as minutes since midnight, ascending from 0.
func (l *Lattice) Times() []int {
	times := make([]int, 0, l.SlotsPerDay())
	for m := 0; m < MinutesPerDay; m += l.duration {
		times = append(times, m)
	}
	return times
}

// DateAt converts a day index to a calendar date.
func (l *Lattice) DateAt(day int) time.Time {
	return l.start.AddDate(0, 0, day)
}

// DayIndex converts a date to a day index.
// Returns -1 if the date falls outside the lattice.
func (l *Lattice) DayIndex(date time.Time) int {
	days := dateutil.DaysBetween(l.start, date)
	if days < 0 || days >= l.NumDays() {
		return -1
	}
	return days
}

// RowIndex converts minutes since midnight to a time-row index.
func (l *Lattice) RowIndex(minutes int) int {
	return minutes / l.duration
}

// MinutesAt converts a time-row index to minutes since midnight.
func (l *Lattice) MinutesAt(row int) int {
	return row * l.duration
}

// IDAt returns the slot identifier for the cell at (day, row).
func (l *Lattice) IDAt(day, row int) string {
	return ID(l.DateAt(day), l.MinutesAt(row))
}

// Contains reports whether (day, row) is a valid cell position.
func (l *Lattice) Contains(day, row int) bool {
	return day >= 0 && day < l.NumDays() && row >= 0 && row < l.SlotsPerDay()
}

// IDs returns every cell's slot identifier, dates ascending then times
// ascending within each date.
func (l *Lattice) IDs() []string {
	ids := make([]string, 0, l.TotalSlots())
	for day := 0; day < l.NumDays(); day++ {
		for row := 0; row < l.SlotsPerDay(); row++ {
			ids = append(ids, l.IDAt(day, row))
		}
	}
	return ids
}
