package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Common date layouts used throughout the application
const (
	LayoutDate     = "2006-01-02"
	LayoutDateTime = "2006-01-02 15:04:05"
)

// ParseDate parses a calendar date in YYYY-MM-DD format
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty")
	}

	date, err := time.Parse(LayoutDate, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: expected YYYY-MM-DD, got %s", dateStr)
	}
	return date, nil
}

// Today returns the current date truncated to midnight local time
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// TodayString returns the current date in YYYY-MM-DD format
func TodayString() string {
	return time.Now().Format(LayoutDate)
}

// IsPast reports whether a date string sorts before today. Dates share the
// YYYY-MM-DD layout so lexicographic comparison matches chronological order.
func IsPast(dateStr string) bool {
	return dateStr < TodayString()
}

// ValidateMonitorDate checks that a date is watchable: not in the past and
// within the booking window (bookings open roughly a month in advance).
func ValidateMonitorDate(dateStr string, maxAdvanceDays int) error {
	date, err := ParseDate(dateStr)
	if err != nil {
		return err
	}

	today := Today()
	if date.Before(today) {
		return fmt.Errorf("date %s is in the past", dateStr)
	}

	limit := today.AddDate(0, 0, maxAdvanceDays)
	if date.After(limit) {
		return fmt.Errorf("date %s is more than %d days ahead; bookings usually open 1 month in advance", dateStr, maxAdvanceDays)
	}

	return nil
}
