package ui

import (
	"context"
	"fmt"
	"strings"

	"quorum/internal/aggregate"
	"quorum/internal/event"
	"quorum/internal/slot"
)

// shortID abbreviates a UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveEvent finds an event by ID, ID prefix, or exact name. Name
// matching is case-insensitive and only succeeds when unambiguous.
func resolveEvent(ctx context.Context, repo event.Repository, arg string) (*event.Event, error) {
	if e, err := repo.GetEvent(ctx, arg); err == nil {
		return e, nil
	}

	events, err := repo.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	var matches []*event.Event
	for _, e := range events {
		if strings.HasPrefix(e.ID, arg) || strings.EqualFold(e.Name, arg) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no event matches %q", arg)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%q matches %d events, use the event ID", arg, len(matches))
	}
}

// formatSlotRange renders a slot as "Mon Jan 2 09:00-09:30".
func formatSlotRange(sa aggregate.SlotAggregation) string {
	return fmt.Sprintf("%s %s-%s",
		sa.Date.Format("Mon Jan 2"),
		slot.MinutesToClock(sa.StartTime),
		slot.MinutesToClock(sa.EndTime))
}

// availabilityBar renders a fixed-width bar of the slot's coverage.
func availabilityBar(count, total, width int) string {
	if width <= 0 {
		return ""
	}
	if total <= 0 {
		return strings.Repeat("░", width)
	}
	filled := (count * width) / total
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if count*2 >= total {
		return formatGood(bar)
	}
	return formatSparse(bar)
}
