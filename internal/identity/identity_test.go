package identity

import "testing"

func TestIsViewerSlot(t *testing.T) {
	tests := []struct {
		name        string
		ownerUserID string
		scheduleID  string
		viewer      Viewer
		want        bool
	}{
		{
			name:        "configured viewer matches own user id",
			ownerUserID: "u-1", scheduleID: "s-9",
			viewer: Viewer{UserID: "u-1"},
			want:   true,
		},
		{
			name:        "configured viewer matches regardless of schedule id",
			ownerUserID: "u-1", scheduleID: "s-other",
			viewer: Viewer{UserID: "u-1", RememberedScheduleID: "s-mine"},
			want:   true,
		},
		{
			name:        "configured viewer does not match other users",
			ownerUserID: "u-2", scheduleID: "s-1",
			viewer: Viewer{UserID: "u-1"},
			want:   false,
		},
		{
			name:        "configured viewer never matches anonymous entries",
			ownerUserID: "", scheduleID: "s-1",
			viewer: Viewer{UserID: "u-1"},
			want:   false,
		},
		{
			name:        "anonymous viewer matches remembered schedule",
			ownerUserID: "", scheduleID: "s-1",
			viewer: Viewer{RememberedScheduleID: "s-1"},
			want:   true,
		},
		{
			name:        "anonymous viewer matches remembered schedule even if entry has a user",
			ownerUserID: "u-9", scheduleID: "s-1",
			viewer: Viewer{RememberedScheduleID: "s-1"},
			want:   true,
		},
		{
			name:        "anonymous viewer with nothing remembered matches nothing",
			ownerUserID: "", scheduleID: "s-1",
			viewer: Viewer{},
			want:   false,
		},
		{
			name:        "empty owner never matches empty viewer id",
			ownerUserID: "", scheduleID: "s-1",
			viewer: Viewer{RememberedScheduleID: "s-2"},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsViewerSlot(tt.ownerUserID, tt.scheduleID, tt.viewer); got != tt.want {
				t.Errorf("IsViewerSlot(%q, %q, %+v) = %v, want %v",
					tt.ownerUserID, tt.scheduleID, tt.viewer, got, tt.want)
			}
		})
	}
}

func TestStore_RememberAndLookup(t *testing.T) {
	s := NewStore(t.TempDir())

	got, err := s.Lookup("ev-1")
	if err != nil {
		t.Fatalf("Lookup on empty store: %v", err)
	}
	if got != "" {
		t.Errorf("Lookup on empty store = %q, want empty", got)
	}

	if err := s.Remember("ev-1", "sched-1"); err != nil {
		t.Fatalf("Remember: %v", err)
	}
	if err := s.Remember("ev-2", "sched-2"); err != nil {
		t.Fatalf("Remember: %v", err)
	}

	got, err = s.Lookup("ev-1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got != "sched-1" {
		t.Errorf("Lookup(ev-1) = %q, want sched-1", got)
	}

	// Resubmitting replaces the remembered id.
	if err := s.Remember("ev-1", "sched-3"); err != nil {
		t.Fatalf("Remember: %v", err)
	}
	got, _ = s.Lookup("ev-1")
	if got != "sched-3" {
		t.Errorf("Lookup(ev-1) after resubmit = %q, want sched-3", got)
	}

	// Other events are untouched.
	got, _ = s.Lookup("ev-2")
	if got != "sched-2" {
		t.Errorf("Lookup(ev-2) = %q, want sched-2", got)
	}
}
