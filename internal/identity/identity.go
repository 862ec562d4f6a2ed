// Package identity decides which availability entries belong to the
// person looking at the screen, so their own slots can be marked in the
// aggregate view.
package identity

// Viewer is the current viewer's identity. UserID is set for configured
// (account-holding) viewers; RememberedScheduleID is the schedule id an
// anonymous viewer got back from an earlier submission to this event.
// Either or both may be empty.
type Viewer struct {
	UserID               string
	RememberedScheduleID string
}

// Anonymous reports whether the viewer has no configured account id.
func (v Viewer) Anonymous() bool {
	return v.UserID == ""
}

// IsViewerSlot reports whether an availability entry, identified by the
// owning user id (empty for anonymous submissions) and its schedule id,
// belongs to the viewer.
//
// A configured viewer matches on user id alone, whatever schedule the
// entry came from; this recognizes their submissions from any machine.
// An anonymous viewer matches only the schedule id remembered from
// their own submission. The empty user id never matches: two anonymous
// parties are not the same person just because neither has an account.
func IsViewerSlot(ownerUserID, scheduleID string, v Viewer) bool {
	if v.UserID != "" {
		return ownerUserID == v.UserID
	}
	if v.RememberedScheduleID != "" {
		return scheduleID == v.RememberedScheduleID
	}
	return false
}
