// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"quorum/internal/event"
)

// SQLite implements event.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// CreateEvent adds a new event.
func (s *SQLite) CreateEvent(ctx context.Context, e *event.Event) error {
	query := `
		INSERT INTO events (id, name, date_range_start, date_range_end, slot_duration, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		e.ID,
		e.Name,
		e.DateRangeStart.Format("2006-01-02"),
		e.DateRangeEnd.Format("2006-01-02"),
		e.SlotDuration,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}

	return nil
}

// GetEvent retrieves an event by ID.
func (s *SQLite) GetEvent(ctx context.Context, id string) (*event.Event, error) {
	query := `
		SELECT id, name, date_range_start, date_range_end, slot_duration, created_at
		FROM events
		WHERE id = ?
	`

	e, err := scanEvent(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, event.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying event: %w", err)
	}

	return e, nil
}

// ListEvents returns all events, newest first.
func (s *SQLite) ListEvents(ctx context.Context) ([]*event.Event, error) {
	query := `
		SELECT id, name, date_range_start, date_range_end, slot_duration, created_at
		FROM events
		ORDER BY created_at DESC, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []*event.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}

	return events, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*event.Event, error) {
	var (
		e         event.Event
		start     string
		end       string
		createdAt string
	)

	err := row.Scan(&e.ID, &e.Name, &start, &end, &e.SlotDuration, &createdAt)
	if err != nil {
		return nil, err
	}

	if e.DateRangeStart, err = parseDate(start); err != nil {
		return nil, fmt.Errorf("parsing date_range_start: %w", err)
	}
	if e.DateRangeEnd, err = parseDate(end); err != nil {
		return nil, fmt.Errorf("parsing date_range_end: %w", err)
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &e, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// SubmitAvailability records one participant's availability, replacing any
// previous submission by the same schedule wholesale, inside one transaction.
// Returns the schedule ID.
func (s *SQLite) SubmitAvailability(ctx context.Context, eventID, scheduleID string, identity event.ParticipantIdentity, slots []event.Availability) (string, error) {
	if err := identity.Validate(); err != nil {
		return "", err
	}
	if len(slots) == 0 {
		return "", event.ErrNoSlotsSelected
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Authenticated participants resubmit into their existing schedule.
	if scheduleID == "" && identity.UserID != "" {
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM schedules WHERE event_id = ? AND user_id = ?`,
			eventID, identity.UserID,
		).Scan(&scheduleID)
		if err != nil && err != sql.ErrNoRows {
			return "", fmt.Errorf("finding existing schedule: %w", err)
		}
	}

	if scheduleID == "" {
		scheduleID = uuid.NewString()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO schedules (id, event_id, user_id, display_name, email, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			scheduleID, eventID, identity.UserID, identity.DisplayName, identity.Email,
			time.Now().Format(time.RFC3339),
		)
		if err != nil {
			return "", fmt.Errorf("inserting schedule: %w", err)
		}
	} else {
		result, err := tx.ExecContext(ctx,
			`UPDATE schedules SET display_name = ?, email = ? WHERE id = ? AND event_id = ?`,
			identity.DisplayName, identity.Email, scheduleID, eventID,
		)
		if err != nil {
			return "", fmt.Errorf("updating schedule: %w", err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return "", event.ErrScheduleNotFound
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM availability WHERE schedule_id = ?`, scheduleID,
		); err != nil {
			return "", fmt.Errorf("clearing previous availability: %w", err)
		}
	}

	for _, a := range slots {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO availability (schedule_id, date, start_time, end_time) VALUES (?, ?, ?, ?)`,
			scheduleID, a.Date.Format("2006-01-02"), a.StartTime, a.EndTime,
		)
		if err != nil {
			return "", fmt.Errorf("inserting availability: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing submission: %w", err)
	}

	return scheduleID, nil
}

// GetSchedule retrieves a schedule with its availability.
func (s *SQLite) GetSchedule(ctx context.Context, id string) (*event.Schedule, error) {
	query := `
		SELECT id, event_id, user_id, display_name, email, created_at
		FROM schedules
		WHERE id = ?
	`

	sched, err := scanSchedule(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, event.ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying schedule: %w", err)
	}

	if sched.Availability, err = s.listAvailability(ctx, sched.ID); err != nil {
		return nil, err
	}

	return sched, nil
}

// GetScheduleByUser retrieves the schedule a user submitted for an event.
func (s *SQLite) GetScheduleByUser(ctx context.Context, eventID, userID string) (*event.Schedule, error) {
	if userID == "" {
		return nil, event.ErrScheduleNotFound
	}

	query := `
		SELECT id, event_id, user_id, display_name, email, created_at
		FROM schedules
		WHERE event_id = ? AND user_id = ?
	`

	sched, err := scanSchedule(s.db.QueryRowContext(ctx, query, eventID, userID))
	if err == sql.ErrNoRows {
		return nil, event.ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying schedule: %w", err)
	}

	if sched.Availability, err = s.listAvailability(ctx, sched.ID); err != nil {
		return nil, err
	}

	return sched, nil
}

func scanSchedule(row rowScanner) (*event.Schedule, error) {
	var (
		sched     event.Schedule
		createdAt string
	)

	err := row.Scan(&sched.ID, &sched.EventID, &sched.UserID, &sched.DisplayName, &sched.Email, &createdAt)
	if err != nil {
		return nil, err
	}

	if sched.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &sched, nil
}

func (s *SQLite) listAvailability(ctx context.Context, scheduleID string) ([]event.Availability, error) {
	query := `
		SELECT date, start_time, end_time
		FROM availability
		WHERE schedule_id = ?
		ORDER BY date, start_time
	`

	rows, err := s.db.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("querying availability: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []event.Availability
	for rows.Next() {
		var (
			a    event.Availability
			date string
		)
		if err := rows.Scan(&date, &a.StartTime, &a.EndTime); err != nil {
			return nil, fmt.Errorf("scanning availability: %w", err)
		}
		if a.Date, err = parseDate(date); err != nil {
			return nil, fmt.Errorf("parsing availability date: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating availability: %w", err)
	}

	return result, nil
}

// ListAvailabilityRows returns every availability record for an event across
// all schedules, as raw rows for aggregation. Dates stay as stored strings.
func (s *SQLite) ListAvailabilityRows(ctx context.Context, eventID string) ([]event.AvailabilityRow, error) {
	query := `
		SELECT a.date, a.start_time, a.end_time, s.id, s.display_name, s.user_id, s.email
		FROM availability a
		JOIN schedules s ON s.id = a.schedule_id
		WHERE s.event_id = ?
		ORDER BY a.date, a.start_time, s.id
	`

	rows, err := s.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("querying availability rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []event.AvailabilityRow
	for rows.Next() {
		var r event.AvailabilityRow
		if err := rows.Scan(&r.Date, &r.StartTime, &r.EndTime, &r.ScheduleID, &r.DisplayName, &r.UserID, &r.Email); err != nil {
			return nil, fmt.Errorf("scanning availability row: %w", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating availability rows: %w", err)
	}

	return result, nil
}
