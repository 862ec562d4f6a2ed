// Package aggregate merges all participants' availability into per-slot
// counts, participant lists, and a ranked best-slots view. Every aggregation
// pass is a pure function over an immutable snapshot of rows; nothing is
// cached between passes.
package aggregate

import (
	"log/slog"
	"sort"
	"time"

	"quorum/internal/dateutil"
	"quorum/internal/event"
	"quorum/internal/slot"
)

// Participant is one schedule's entry inside a slot aggregation.
type Participant struct {
	ScheduleID  string
	DisplayName string
	UserID      string // empty for anonymous participants
	Email       string
}

// SlotAggregation groups every availability record sharing one slot.
type SlotAggregation struct {
	SlotID       string
	Date         time.Time
	StartTime    int
	EndTime      int
	Count        int // distinct schedules contributing
	Participants []Participant
}

// Result is the output of one aggregation pass.
type Result struct {
	Slots []SlotAggregation // ascending by (date, startTime)

	// TotalParticipants is the number of distinct schedules seen across all
	// aggregations, not the sum of per-slot counts.
	TotalParticipants int
}

// MaxCount returns the highest per-slot count, with a floor of 1 so callers
// can divide by it even when nobody has selected anything.
func (r Result) MaxCount() int {
	max := 1
	for _, s := range r.Slots {
		if s.Count > max {
			max = s.Count
		}
	}
	return max
}

// CountBySlotID returns a slot-id keyed view of the per-slot counts.
func (r Result) CountBySlotID() map[string]int {
	counts := make(map[string]int, len(r.Slots))
	for _, s := range r.Slots {
		counts[s.SlotID] = s.Count
	}
	return counts
}

type groupKey struct {
	date  string
	start int
	end   int
}

// Aggregate groups raw availability rows by (date, startTime, endTime),
// dedupes schedules within each group, and returns the groups sorted
// chronologically. Slot identifiers are re-derived via the slot codec; any
// identifier carried by the transport layer is ignored.
//
// Rows whose stored date cannot be parsed are dropped (and logged) so the
// rest of the event's results still render.
func Aggregate(rows []event.AvailabilityRow) Result {
	groups := make(map[groupKey]*SlotAggregation)
	seen := make(map[groupKey]map[string]bool) // dedupe schedules per group
	participants := make(map[string]bool)      // distinct schedules event-wide

	var order []groupKey
	for _, row := range rows {
		if row.Date == "" {
			// dateutil.ParseDate treats "" as today, a convenience for CLI
			// arguments that must not reach stored rows: an empty date is
			// corrupt data, not a phantom slot on the current date.
			slog.Warn("dropping availability row with empty date",
				"schedule", row.ScheduleID)
			continue
		}
		key := groupKey{date: row.Date, start: row.StartTime, end: row.EndTime}

		agg, ok := groups[key]
		if !ok {
			date, err := dateutil.ParseDate(row.Date)
			if err != nil {
				slog.Warn("dropping availability rows with unparseable date",
					"date", row.Date, "err", err)
				continue
			}
			agg = &SlotAggregation{
				SlotID:    slot.ID(date, row.StartTime),
				Date:      date,
				StartTime: row.StartTime,
				EndTime:   row.EndTime,
			}
			groups[key] = agg
			seen[key] = make(map[string]bool)
			order = append(order, key)
		}

		if seen[key][row.ScheduleID] {
			// A schedule is never double-counted, even if the store somehow
			// holds duplicate rows for the same slot.
			continue
		}
		seen[key][row.ScheduleID] = true
		participants[row.ScheduleID] = true

		agg.Count++
		agg.Participants = append(agg.Participants, Participant{
			ScheduleID:  row.ScheduleID,
			DisplayName: row.DisplayName,
			UserID:      row.UserID,
			Email:       row.Email,
		})
	}

	slots := make([]SlotAggregation, 0, len(order))
	for _, key := range order {
		slots = append(slots, *groups[key])
	}
	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].Date.Equal(slots[j].Date) {
			return slots[i].Date.Before(slots[j].Date)
		}
		if slots[i].StartTime != slots[j].StartTime {
			return slots[i].StartTime < slots[j].StartTime
		}
		return slots[i].EndTime < slots[j].EndTime
	})

	return Result{Slots: slots, TotalParticipants: len(participants)}
}

// RankedSlot is one entry of the best-slots list.
type RankedSlot struct {
	SlotAggregation
	Percent float64 // Count / TotalParticipants * 100
}

// DefaultBestSlots is how many top slots BestSlots returns by default.
const DefaultBestSlots = 5

// BestSlots ranks aggregations by count descending and returns the top n.
// Ties are broken chronologically (date, then startTime, ascending) so the
// ranking is reproducible run to run regardless of input order.
func BestSlots(r Result, n int) []RankedSlot {
	if n <= 0 {
		n = DefaultBestSlots
	}

	ranked := make([]SlotAggregation, len(r.Slots))
	copy(ranked, r.Slots)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		if !ranked[i].Date.Equal(ranked[j].Date) {
			return ranked[i].Date.Before(ranked[j].Date)
		}
		return ranked[i].StartTime < ranked[j].StartTime
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}

	best := make([]RankedSlot, 0, len(ranked))
	for _, s := range ranked {
		if s.Count == 0 {
			continue
		}
		pct := 0.0
		if r.TotalParticipants > 0 {
			pct = float64(s.Count) / float64(r.TotalParticipants) * 100
		}
		best = append(best, RankedSlot{SlotAggregation: s, Percent: pct})
	}
	return best
}

// Disclosure is a presentation-agnostic request to reveal who can attend a
// slot. The TUI decides whether it becomes a hover panel or a pinned modal;
// the data is identical either way.
type Disclosure struct {
	SlotID       string
	Count        int
	Participants []Participant
}

// Disclose builds the disclosure data for a slot. Emails are stripped unless
// includeEmails is set.
func (s SlotAggregation) Disclose(includeEmails bool) Disclosure {
	ps := make([]Participant, len(s.Participants))
	copy(ps, s.Participants)
	if !includeEmails {
		for i := range ps {
			ps[i].Email = ""
		}
	}
	return Disclosure{SlotID: s.SlotID, Count: s.Count, Participants: ps}
}
