// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"quorum/internal/event"
	"quorum/internal/identity"
)

// EventsLoadedMsg is sent when the event list is loaded.
type EventsLoadedMsg struct {
	Events []*event.Event
}

// EventOpenedMsg is sent when an event and the viewer's prior submission
// (if any) are loaded for the selection grid.
type EventOpenedMsg struct {
	Event    *event.Event
	Schedule *event.Schedule // nil when the viewer has not submitted
	Viewer   identity.Viewer
}

// RowsLoadedMsg is sent when the availability snapshot for the results
// view is loaded. The aggregation pass runs over these rows.
type RowsLoadedMsg struct {
	Event *event.Event
	Rows  []event.AvailabilityRow
}

// SubmittedMsg is sent when a submission is stored.
type SubmittedMsg struct {
	ScheduleID string
}

// CopiedMsg is sent when text was copied to the clipboard.
type CopiedMsg struct{}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadEvents loads all events, newest first.
func LoadEvents(repo event.Repository) tea.Cmd {
	return func() tea.Msg {
		events, err := repo.ListEvents(context.Background())
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading events: %w", err)}
		}
		return EventsLoadedMsg{Events: events}
	}
}

// OpenEvent loads one event plus the viewer's existing schedule, found
// through their user id or, for anonymous viewers, the schedule id
// remembered from an earlier submission.
func OpenEvent(repo event.Repository, store *identity.Store, eventID, userID string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		e, err := repo.GetEvent(ctx, eventID)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading event: %w", err)}
		}

		remembered, err := store.Lookup(eventID)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("reading remembered schedule: %w", err)}
		}
		viewer := identity.Viewer{UserID: userID, RememberedScheduleID: remembered}

		var sched *event.Schedule
		if userID != "" {
			sched, err = repo.GetScheduleByUser(ctx, eventID, userID)
		} else if remembered != "" {
			sched, err = repo.GetSchedule(ctx, remembered)
		}
		if err != nil && !errors.Is(err, event.ErrScheduleNotFound) {
			return ErrMsg{Err: fmt.Errorf("loading schedule: %w", err)}
		}

		return EventOpenedMsg{Event: e, Schedule: sched, Viewer: viewer}
	}
}

// LoadRows fetches the availability snapshot for an event. This is the
// one asynchronous boundary before aggregation; the pass itself runs
// synchronously over the delivered rows.
func LoadRows(repo event.Repository, e *event.Event) tea.Cmd {
	return func() tea.Msg {
		rows, err := repo.ListAvailabilityRows(context.Background(), e.ID)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading availability: %w", err)}
		}
		return RowsLoadedMsg{Event: e, Rows: rows}
	}
}

// Submit stores the participant's availability, remembering the returned
// schedule id for anonymous submissions.
func Submit(repo event.Repository, store *identity.Store, eventID, scheduleID string, ident event.ParticipantIdentity, slots []event.Availability) tea.Cmd {
	return func() tea.Msg {
		id, err := repo.SubmitAvailability(context.Background(), eventID, scheduleID, ident, slots)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("submitting availability: %w", err)}
		}
		if ident.UserID == "" {
			if err := store.Remember(eventID, id); err != nil {
				return ErrMsg{Err: fmt.Errorf("remembering schedule: %w", err)}
			}
		}
		return SubmittedMsg{ScheduleID: id}
	}
}

// CopyText copies text to the system clipboard.
func CopyText(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return CopiedMsg{}
	}
}
