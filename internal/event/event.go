// Package event defines the core domain types for quorum.
package event

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"quorum/internal/dateutil"
	"quorum/internal/slot"
)

// Validation errors.
var (
	ErrEmptyName       = errors.New("event name cannot be empty")
	ErrEmptyPartName   = errors.New("participant name cannot be empty")
	ErrNoSlotsSelected = errors.New("at least one slot must be selected")
	ErrBadSlotBounds   = errors.New("slot end must equal start plus the event duration")
)

// Domain errors.
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrScheduleNotFound = errors.New("schedule not found")
)

// Event is an organizer-defined window of candidate meeting times.
// The date range is inclusive and carries calendar-date semantics: dates are
// already localized, and no timezone conversion happens below this layer.
type Event struct {
	ID             string
	Name           string
	DateRangeStart time.Time
	DateRangeEnd   time.Time
	SlotDuration   int // minutes, one of 15/30/60
	CreatedAt      time.Time
}

// New creates a new Event with validation.
// startDate and endDate are in YYYY-MM-DD format (start defaults to today,
// end defaults to start). duration must be 15, 30, or 60.
func New(name, startDate, endDate string, duration int) (*Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if !slot.ValidDuration(duration) {
		return nil, slot.ErrInvalidDuration
	}

	r, err := dateutil.NewDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:             uuid.NewString(),
		Name:           name,
		DateRangeStart: r.Start,
		DateRangeEnd:   r.End,
		SlotDuration:   duration,
		CreatedAt:      time.Now(),
	}, nil
}

// Lattice returns the event's slot lattice.
func (e *Event) Lattice() (*slot.Lattice, error) {
	return slot.NewLattice(e.DateRangeStart, e.DateRangeEnd, e.SlotDuration)
}

// Schedule is one participant's full submitted availability for one Event.
// UserID is empty for anonymous participants.
type Schedule struct {
	ID           string
	EventID      string
	UserID       string
	DisplayName  string
	Email        string
	Availability []Availability
	CreatedAt    time.Time
}

// Availability denotes exactly one atomic slot a participant can attend;
// never a multi-slot range.
type Availability struct {
	Date      time.Time
	StartTime int // minutes since midnight
	EndTime   int // always StartTime + Event.SlotDuration
}

// SlotID returns the canonical slot identifier for this availability.
func (a Availability) SlotID() string {
	return slot.ID(a.Date, a.StartTime)
}

// AvailabilityFromSlotID decodes a slot identifier into an Availability for
// an event with the given duration.
func AvailabilityFromSlotID(id string, duration int) (Availability, error) {
	date, start, err := slot.Parse(id)
	if err != nil {
		return Availability{}, err
	}
	return Availability{Date: date, StartTime: start, EndTime: start + duration}, nil
}

// Validate checks the availability invariants against the event duration.
func (a Availability) Validate(duration int) error {
	if a.StartTime < 0 || a.StartTime >= slot.MinutesPerDay {
		return ErrBadSlotBounds
	}
	if a.EndTime != a.StartTime+duration {
		return ErrBadSlotBounds
	}
	return nil
}

// ParticipantIdentity identifies who is submitting availability.
// UserID is empty for anonymous participants, in which case DisplayName is
// required so other participants can recognize the submission.
type ParticipantIdentity struct {
	UserID      string
	DisplayName string
	Email       string
}

// Validate checks that the identity is sufficient for a submission.
func (p ParticipantIdentity) Validate() error {
	if strings.TrimSpace(p.DisplayName) == "" {
		return ErrEmptyPartName
	}
	return nil
}
