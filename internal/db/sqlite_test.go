package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"quorum/internal/event"
)

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()
	repo, err := New(":memory:")
	if err != nil {
		t.Fatalf("creating test repository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func newTestEvent(t *testing.T) *event.Event {
	t.Helper()
	e, err := event.New("Team offsite", "2025-01-20", "2025-01-21", 30)
	if err != nil {
		t.Fatalf("creating test event: %v", err)
	}
	return e
}

func slots30(t *testing.T, ids ...string) []event.Availability {
	t.Helper()
	var out []event.Availability
	for _, id := range ids {
		a, err := event.AvailabilityFromSlotID(id, 30)
		if err != nil {
			t.Fatalf("decoding slot %s: %v", id, err)
		}
		out = append(out, a)
	}
	return out
}

func TestCreateAndGetEvent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	e := newTestEvent(t)
	if err := repo.CreateEvent(ctx, e); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	got, err := repo.GetEvent(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if got.Name != "Team offsite" || got.SlotDuration != 30 {
		t.Errorf("got %+v", got)
	}
	if got.DateRangeStart.Format("2006-01-02") != "2025-01-20" {
		t.Errorf("start = %s", got.DateRangeStart.Format("2006-01-02"))
	}
	if got.DateRangeEnd.Format("2006-01-02") != "2025-01-21" {
		t.Errorf("end = %s", got.DateRangeEnd.Format("2006-01-02"))
	}
}

func TestGetEvent_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetEvent(context.Background(), "missing")
	if !errors.Is(err, event.ErrEventNotFound) {
		t.Errorf("error = %v, want ErrEventNotFound", err)
	}
}

func TestListEvents_NewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := newTestEvent(t)
	second := newTestEvent(t)
	second.Name = "Later event"
	second.CreatedAt = second.CreatedAt.Add(time.Second)

	if err := repo.CreateEvent(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := repo.CreateEvent(ctx, second); err != nil {
		t.Fatal(err)
	}

	events, err := repo.ListEvents(ctx)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len = %d, want 2", len(events))
	}
	if events[0].Name != "Later event" {
		t.Errorf("first listed = %s, want Later event", events[0].Name)
	}
}

func TestSubmitAvailability_Anonymous(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	e := newTestEvent(t)
	if err := repo.CreateEvent(ctx, e); err != nil {
		t.Fatal(err)
	}

	identity := event.ParticipantIdentity{DisplayName: "Ada"}
	slots := slots30(t, "2025-01-20_09:00", "2025-01-20_09:30")

	scheduleID, err := repo.SubmitAvailability(ctx, e.ID, "", identity, slots)
	if err != nil {
		t.Fatalf("SubmitAvailability: %v", err)
	}
	if scheduleID == "" {
		t.Fatal("expected a schedule ID")
	}

	sched, err := repo.GetSchedule(ctx, scheduleID)
	if err != nil {
		t.Fatalf("GetSchedule: %v", err)
	}
	if sched.DisplayName != "Ada" || sched.UserID != "" {
		t.Errorf("schedule = %+v", sched)
	}
	if len(sched.Availability) != 2 {
		t.Errorf("len(Availability) = %d, want 2", len(sched.Availability))
	}
}

func TestSubmitAvailability_WholesaleReplace(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	e := newTestEvent(t)
	if err := repo.CreateEvent(ctx, e); err != nil {
		t.Fatal(err)
	}

	identity := event.ParticipantIdentity{DisplayName: "Ada"}
	scheduleID, err := repo.SubmitAvailability(ctx, e.ID, "", identity,
		slots30(t, "2025-01-20_09:00", "2025-01-20_09:30"))
	if err != nil {
		t.Fatal(err)
	}

	// Resubmit with a different set; old rows must be gone.
	_, err = repo.SubmitAvailability(ctx, e.ID, scheduleID, identity,
		slots30(t, "2025-01-21_14:00"))
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}

	sched, err := repo.GetSchedule(ctx, scheduleID)
	if err != nil {
		t.Fatal(err)
	}
	if len(sched.Availability) != 1 {
		t.Fatalf("len(Availability) = %d, want 1 (wholesale replace)", len(sched.Availability))
	}
	if got := sched.Availability[0].SlotID(); got != "2025-01-21_14:00" {
		t.Errorf("remaining slot = %s", got)
	}
}

func TestSubmitAvailability_AuthenticatedReusesSchedule(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	e := newTestEvent(t)
	if err := repo.CreateEvent(ctx, e); err != nil {
		t.Fatal(err)
	}

	identity := event.ParticipantIdentity{UserID: "u-1", DisplayName: "Ada"}
	first, err := repo.SubmitAvailability(ctx, e.ID, "", identity,
		slots30(t, "2025-01-20_09:00"))
	if err != nil {
		t.Fatal(err)
	}

	// Same user submits again without naming the schedule.
	second, err := repo.SubmitAvailability(ctx, e.ID, "", identity,
		slots30(t, "2025-01-20_10:00"))
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("schedule IDs differ: %s vs %s", first, second)
	}

	sched, err := repo.GetScheduleByUser(ctx, e.ID, "u-1")
	if err != nil {
		t.Fatalf("GetScheduleByUser: %v", err)
	}
	if len(sched.Availability) != 1 || sched.Availability[0].SlotID() != "2025-01-20_10:00" {
		t.Errorf("availability = %+v", sched.Availability)
	}
}

func TestSubmitAvailability_AnonymousAlwaysFresh(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	e := newTestEvent(t)
	if err := repo.CreateEvent(ctx, e); err != nil {
		t.Fatal(err)
	}

	a := event.ParticipantIdentity{DisplayName: "Anon one"}
	b := event.ParticipantIdentity{DisplayName: "Anon two"}

	idA, err := repo.SubmitAvailability(ctx, e.ID, "", a, slots30(t, "2025-01-20_09:00"))
	if err != nil {
		t.Fatal(err)
	}
	idB, err := repo.SubmitAvailability(ctx, e.ID, "", b, slots30(t, "2025-01-20_09:00"))
	if err != nil {
		t.Fatal(err)
	}
	if idA == idB {
		t.Error("two anonymous submissions must get distinct schedules")
	}
}

func TestSubmitAvailability_Validation(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	e := newTestEvent(t)
	if err := repo.CreateEvent(ctx, e); err != nil {
		t.Fatal(err)
	}

	_, err := repo.SubmitAvailability(ctx, e.ID, "",
		event.ParticipantIdentity{}, slots30(t, "2025-01-20_09:00"))
	if !errors.Is(err, event.ErrEmptyPartName) {
		t.Errorf("error = %v, want ErrEmptyPartName", err)
	}

	_, err = repo.SubmitAvailability(ctx, e.ID, "",
		event.ParticipantIdentity{DisplayName: "Ada"}, nil)
	if !errors.Is(err, event.ErrNoSlotsSelected) {
		t.Errorf("error = %v, want ErrNoSlotsSelected", err)
	}

	_, err = repo.SubmitAvailability(ctx, e.ID, "missing-schedule",
		event.ParticipantIdentity{DisplayName: "Ada"}, slots30(t, "2025-01-20_09:00"))
	if !errors.Is(err, event.ErrScheduleNotFound) {
		t.Errorf("error = %v, want ErrScheduleNotFound", err)
	}
}

func TestGetScheduleByUser_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetScheduleByUser(context.Background(), "ev", "u-1")
	if !errors.Is(err, event.ErrScheduleNotFound) {
		t.Errorf("error = %v, want ErrScheduleNotFound", err)
	}

	// The empty user id must not match anonymous schedules.
	_, err = repo.GetScheduleByUser(context.Background(), "ev", "")
	if !errors.Is(err, event.ErrScheduleNotFound) {
		t.Errorf("error for empty user = %v, want ErrScheduleNotFound", err)
	}
}

func TestListAvailabilityRows(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	e := newTestEvent(t)
	if err := repo.CreateEvent(ctx, e); err != nil {
		t.Fatal(err)
	}
	other := newTestEvent(t)
	if err := repo.CreateEvent(ctx, other); err != nil {
		t.Fatal(err)
	}

	_, err := repo.SubmitAvailability(ctx, e.ID, "",
		event.ParticipantIdentity{DisplayName: "Ada", Email: "ada@example.com"},
		slots30(t, "2025-01-20_09:00", "2025-01-20_09:30"))
	if err != nil {
		t.Fatal(err)
	}
	_, err = repo.SubmitAvailability(ctx, e.ID, "",
		event.ParticipantIdentity{UserID: "u-b", DisplayName: "Brin"},
		slots30(t, "2025-01-20_09:00"))
	if err != nil {
		t.Fatal(err)
	}
	// A row on another event must not leak in.
	_, err = repo.SubmitAvailability(ctx, other.ID, "",
		event.ParticipantIdentity{DisplayName: "Cy"},
		slots30(t, "2025-01-21_09:00"))
	if err != nil {
		t.Fatal(err)
	}

	rows, err := repo.ListAvailabilityRows(ctx, e.ID)
	if err != nil {
		t.Fatalf("ListAvailabilityRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	for _, r := range rows {
		if r.Date != "2025-01-20" {
			t.Errorf("unexpected date %s", r.Date)
		}
		if r.DisplayName == "Cy" {
			t.Error("row from another event leaked into the result")
		}
	}
	// Join carries identity fields through.
	var sawEmail, sawUser bool
	for _, r := range rows {
		if r.Email == "ada@example.com" {
			sawEmail = true
		}
		if r.UserID == "u-b" {
			sawUser = true
		}
	}
	if !sawEmail || !sawUser {
		t.Error("expected joined schedule identity fields on rows")
	}
}
