package slot

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestID(t *testing.T) {
	tests := []struct {
		name    string
		date    time.Time
		minutes int
		want    string
	}{
		{name: "morning", date: date(2025, 1, 20), minutes: 540, want: "2025-01-20_09:00"},
		{name: "midnight", date: date(2025, 1, 20), minutes: 0, want: "2025-01-20_00:00"},
		{name: "half past", date: date(2025, 1, 20), minutes: 570, want: "2025-01-20_09:30"},
		{name: "last slot of day", date: date(2025, 12, 31), minutes: 1425, want: "2025-12-31_23:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ID(tt.date, tt.minutes); got != tt.want {
				t.Errorf("ID = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	gotDate, gotMins, err := Parse("2025-01-20_09:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotDate.Format("2006-01-02") != "2025-01-20" {
		t.Errorf("date = %s, want 2025-01-20", gotDate.Format("2006-01-02"))
	}
	if gotMins != 570 {
		t.Errorf("minutes = %d, want 570", gotMins)
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, id := range []string{
		"",
		"2025-01-20",
		"2025-01-20 09:30",
		"2025-01-20_9:30",
		"2025-13-20_09:30",
		"2025-01-20_25:00",
		"garbage_in_here",
	} {
		if _, _, err := Parse(id); !errors.Is(err, ErrInvalidID) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidID", id, err)
		}
	}
}

func TestMustParse_PanicsOnMalformed(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustParse should panic on malformed input")
		}
	}()
	MustParse("not-a-slot-id!!!")
}

// Round-trip: Parse(ID(d, m)) == (d, m) for every cell of a lattice.
func TestCodecRoundTrip(t *testing.T) {
	for _, duration := range Durations {
		lat, err := NewLattice(date(2025, 1, 20), date(2025, 1, 22), duration)
		if err != nil {
			t.Fatalf("NewLattice: %v", err)
		}
		for _, d := range lat.Dates() {
			for _, m := range lat.Times() {
				gotDate, gotMins, err := Parse(ID(d, m))
				if err != nil {
					t.Fatalf("Parse(ID(%s, %d)): %v", d.Format("2006-01-02"), m, err)
				}
				if !gotDate.Equal(d) || gotMins != m {
					t.Fatalf("round trip (%s, %d) -> (%s, %d)",
						d.Format("2006-01-02"), m, gotDate.Format("2006-01-02"), gotMins)
				}
			}
		}
	}
}

func TestClockConversions(t *testing.T) {
	if got := MinutesToClock(570); got != "09:30" {
		t.Errorf("MinutesToClock(570) = %q, want 09:30", got)
	}
	if got := MinutesToClock(0); got != "00:00" {
		t.Errorf("MinutesToClock(0) = %q, want 00:00", got)
	}
	if got := ClockToMinutes("23:45"); got != 1425 {
		t.Errorf("ClockToMinutes(23:45) = %d, want 1425", got)
	}
	for _, bad := range []string{"x", "ab:cd", "09-30", "24:00", "09:60", "9:30", "09:300"} {
		if got := ClockToMinutes(bad); got != 0 {
			t.Errorf("ClockToMinutes(%q) = %d, want 0", bad, got)
		}
	}
}
