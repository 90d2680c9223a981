package watch

import (
	"fmt"
	"strings"

	"saganowatch/pkg/sagano"
)

// Message builders for everything the watcher sends on its own initiative.
// Command replies live with the command handlers.

// AvailabilityNotice announces newly open slots for a date, with a deep link
// into the booking flow.
func AvailabilityNotice(date string, slots []sagano.Slot, seats int) string {
	labels := make([]string, len(slots))
	for i, s := range slots {
		labels[i] = s.Label()
	}

	var b strings.Builder
	b.WriteString("🎉 AVAILABLE!\n")
	fmt.Fprintf(&b, "📅 %s\n", date)
	fmt.Fprintf(&b, "⏰ %s\n", strings.Join(labels, ", "))
	fmt.Fprintf(&b, "🔗 BOOK NOW: %s", sagano.BuildBookingURL(date, seats))
	return b.String()
}

// SummaryNotice is the periodic check-in proving the watcher is alive
func SummaryNotice(dates []string) string {
	var b strings.Builder
	b.WriteString("🔄 Hourly Check-in\n")
	for _, d := range dates {
		fmt.Fprintf(&b, "Checked %s: Still monitoring...\n", d)
	}
	return strings.TrimRight(b.String(), "\n")
}

// ExpiredNotice tells the user a watched date slipped into the past and was
// dropped.
func ExpiredNotice(date string) string {
	return fmt.Sprintf("📆 Date %s has passed, removed from monitoring.", date)
}
