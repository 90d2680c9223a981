package watch

import (
	"sort"
	"strings"
	"time"

	"saganowatch/pkg/sagano"
)

// WatchState is everything tracked for one chat: which dates to watch, the
// route and party size, check cadences, and which slots have already been
// announced. Zero timestamps mean "never", so a fresh subject is due on the
// first tick.
type WatchState struct {
	ChatID          int64
	Dates           []string // sorted YYYY-MM-DD
	Departure       sagano.Station
	Arrival         sagano.Station
	Seats           int
	CheckInterval   time.Duration
	SummaryInterval time.Duration
	LastCheckAt     time.Time
	LastSummaryAt   time.Time
	Notified        map[string]bool // slot keys already announced
}

// AddDate starts watching a date. Re-adding a date that is already watched
// clears its announcement history so fresh availability alerts again.
func (s *WatchState) AddDate(date string) {
	s.purgeNotified(date)

	for _, d := range s.Dates {
		if d == date {
			return
		}
	}

	s.Dates = append(s.Dates, date)
	sort.Strings(s.Dates)
}

// RemoveDate stops watching a date and forgets its announcement history.
// Returns false when the date was not being watched.
func (s *WatchState) RemoveDate(date string) bool {
	for i, d := range s.Dates {
		if d == date {
			s.Dates = append(s.Dates[:i], s.Dates[i+1:]...)
			s.purgeNotified(date)
			return true
		}
	}
	return false
}

// ClearDates stops watching everything
func (s *WatchState) ClearDates() {
	s.Dates = nil
	s.Notified = make(map[string]bool)
}

// PrunePast drops dates that sort before today and returns them. Their
// announcement history goes with them.
func (s *WatchState) PrunePast(today string) []string {
	var removed []string
	kept := s.Dates[:0]
	for _, d := range s.Dates {
		if d < today {
			removed = append(removed, d)
			s.purgeNotified(d)
		} else {
			kept = append(kept, d)
		}
	}
	s.Dates = kept
	return removed
}

// HasDate reports whether a date is being watched
func (s *WatchState) HasDate(date string) bool {
	for _, d := range s.Dates {
		if d == date {
			return true
		}
	}
	return false
}

// MarkNotified records that a slot key has been announced
func (s *WatchState) MarkNotified(key string) {
	if s.Notified == nil {
		s.Notified = make(map[string]bool)
	}
	s.Notified[key] = true
}

// IsNotified reports whether a slot key has already been announced
func (s *WatchState) IsNotified(key string) bool {
	return s.Notified[key]
}

func (s *WatchState) purgeNotified(date string) {
	prefix := date + "-"
	for key := range s.Notified {
		if strings.HasPrefix(key, prefix) {
			delete(s.Notified, key)
		}
	}
}

// clone returns a deep copy safe to use outside the registry lock
func (s *WatchState) clone() *WatchState {
	c := *s
	c.Dates = append([]string(nil), s.Dates...)
	c.Notified = make(map[string]bool, len(s.Notified))
	for k, v := range s.Notified {
		c.Notified[k] = v
	}
	return &c
}
