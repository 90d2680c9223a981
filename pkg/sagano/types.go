package sagano

import (
	"fmt"
	"time"
)

// Slot is a single departure parsed from the booking page
type Slot struct {
	Time      string `json:"time"`     // departure time, HH:MM
	TrainID   string `json:"train_id"` // e.g. "Sagano 7"
	Available bool   `json:"available"`
}

// Label renders the slot the way it appears in notifications, e.g.
// "09:02 (Sagano 1)"
func (s Slot) Label() string {
	return fmt.Sprintf("%s (%s)", s.Time, s.TrainID)
}

// Key returns the notification dedup key for this slot on a given date
func (s Slot) Key(date string) string {
	return date + "-" + s.Label()
}

// CheckResult is the outcome of one availability check. A failed check
// carries its error here instead of aborting the caller.
type CheckResult struct {
	Date      string        `json:"date"`
	Departure string        `json:"departure"`
	Arrival   string        `json:"arrival"`
	Seats     int           `json:"seats"`
	Slots     []Slot        `json:"slots"` // every slot seen, sold out included
	CheckedAt time.Time     `json:"checked_at"`
	Elapsed   time.Duration `json:"elapsed"`
	Err       error         `json:"-"`
}

// AvailableSlots returns only the slots with open seats
func (r *CheckResult) AvailableSlots() []Slot {
	var open []Slot
	for _, s := range r.Slots {
		if s.Available {
			open = append(open, s)
		}
	}
	return open
}

// OK reports whether the check completed without error
func (r *CheckResult) OK() bool {
	return r.Err == nil
}
