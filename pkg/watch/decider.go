package watch

import (
	"time"

	"saganowatch/pkg/sagano"
)

// Decision is what one check result means for a subject: which slots to
// announce now and the dedup keys that go with them.
type Decision struct {
	Notify []sagano.Slot
	Keys   []string
}

// Decide picks the slots worth announcing from a check result. A failed
// check never notifies, and a slot already announced for its date stays
// silent until the date's history is reset.
func Decide(state *WatchState, result *sagano.CheckResult) Decision {
	var d Decision

	if result.Err != nil {
		return d
	}

	for _, slot := range result.AvailableSlots() {
		key := slot.Key(result.Date)
		if state.IsNotified(key) {
			continue
		}
		d.Notify = append(d.Notify, slot)
		d.Keys = append(d.Keys, key)
	}

	return d
}

// DueForCheck reports whether enough time has passed since the last check.
// A zero lastCheckAt means the subject has never been checked and is due
// immediately.
func DueForCheck(lastCheckAt time.Time, interval time.Duration, now time.Time) bool {
	return now.Sub(lastCheckAt) >= interval
}

// DueForSummary reports whether a periodic check-in is owed. The comparison
// is strict: a summary exactly on the boundary waits for the next tick.
func DueForSummary(lastSummaryAt time.Time, interval time.Duration, now time.Time) bool {
	return now.Sub(lastSummaryAt) > interval
}
