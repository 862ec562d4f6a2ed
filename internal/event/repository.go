package event

import "context"

// AvailabilityRow is one raw availability record as returned by the store,
// joined with its schedule. The date is kept as the stored string so the
// aggregation engine owns parsing (and can drop unparseable date groups
// without failing the whole read). Slot identity is re-derived from
// (date, start, end) by the engine, never read from the store.
type AvailabilityRow struct {
	Date        string
	StartTime   int
	EndTime     int
	ScheduleID  string
	DisplayName string
	UserID      string
	Email       string
}

// Repository defines the storage interface for events and schedules.
type Repository interface {
	// CreateEvent adds a new event.
	CreateEvent(ctx context.Context, e *Event) error

	// GetEvent retrieves an event by ID.
	// Returns ErrEventNotFound if it does not exist.
	GetEvent(ctx context.Context, id string) (*Event, error)

	// ListEvents returns all events, newest first.
	ListEvents(ctx context.Context) ([]*Event, error)

	// SubmitAvailability records one participant's availability for an event,
	// replacing any previous submission by the same schedule wholesale.
	// For authenticated identities the participant's existing schedule (if
	// any) is reused; anonymous identities always get a fresh schedule unless
	// scheduleID names the one to replace. Returns the schedule ID.
	SubmitAvailability(ctx context.Context, eventID, scheduleID string, identity ParticipantIdentity, slots []Availability) (string, error)

	// GetSchedule retrieves a schedule with its availability.
	// Returns ErrScheduleNotFound if it does not exist.
	GetSchedule(ctx context.Context, id string) (*Schedule, error)

	// GetScheduleByUser retrieves the schedule a user submitted for an event.
	// Returns ErrScheduleNotFound if the user has not submitted.
	GetScheduleByUser(ctx context.Context, eventID, userID string) (*Schedule, error)

	// ListAvailabilityRows returns every availability record for an event
	// across all schedules, as raw rows for aggregation.
	ListAvailabilityRows(ctx context.Context, eventID string) ([]AvailabilityRow, error)

	// Close releases any resources held by the repository.
	Close() error
}
