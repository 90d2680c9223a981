package watch

import (
	"errors"
	"testing"
	"time"

	"saganowatch/pkg/sagano"
)

func TestDecideNotifiesOnlyFreshAvailability(t *testing.T) {
	state := &WatchState{Notified: make(map[string]bool)}
	result := &sagano.CheckResult{
		Date: "2026-09-15",
		Slots: []sagano.Slot{
			{Time: "09:02", TrainID: "Sagano 1", Available: true},
			{Time: "10:02", TrainID: "Sagano 3", Available: false},
			{Time: "11:02", TrainID: "Sagano 5", Available: true},
		},
	}

	d := Decide(state, result)
	if len(d.Notify) != 2 {
		t.Fatalf("expected 2 slots to announce, got %d", len(d.Notify))
	}
	if d.Keys[0] != "2026-09-15-09:02 (Sagano 1)" {
		t.Errorf("unexpected key: %s", d.Keys[0])
	}

	// Same availability again, now recorded: nothing new to say
	for _, k := range d.Keys {
		state.MarkNotified(k)
	}
	if d := Decide(state, result); len(d.Notify) != 0 {
		t.Errorf("already-announced slots must stay silent, got %v", d.Notify)
	}
}

func TestDecideErrorNeverNotifies(t *testing.T) {
	state := &WatchState{Notified: make(map[string]bool)}
	result := &sagano.CheckResult{
		Date: "2026-09-15",
		Slots: []sagano.Slot{
			{Time: "09:02", TrainID: "Sagano 1", Available: true},
		},
		Err: errors.New("boom"),
	}

	if d := Decide(state, result); len(d.Notify) != 0 {
		t.Errorf("failed check must not notify, got %v", d.Notify)
	}
}

func TestDecideNoAvailability(t *testing.T) {
	state := &WatchState{Notified: make(map[string]bool)}
	result := &sagano.CheckResult{
		Date: "2026-09-15",
		Slots: []sagano.Slot{
			{Time: "09:02", TrainID: "Sagano 1", Available: false},
		},
	}

	if d := Decide(state, result); len(d.Notify) != 0 {
		t.Errorf("sold out slots must not notify, got %v", d.Notify)
	}
}

func TestDueForCheck(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	interval := time.Minute

	// Never checked: the zero timestamp is ancient, so always due
	if !DueForCheck(time.Time{}, interval, now) {
		t.Error("fresh subject should be due immediately")
	}

	if DueForCheck(now.Add(-30*time.Second), interval, now) {
		t.Error("checked 30s ago with 1m interval should not be due")
	}
	if !DueForCheck(now.Add(-interval), interval, now) {
		t.Error("exactly one interval elapsed should be due")
	}
	if !DueForCheck(now.Add(-2*time.Minute), interval, now) {
		t.Error("past the interval should be due")
	}
}

func TestDueForSummaryStrict(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	interval := time.Hour

	if DueForSummary(now.Add(-59*time.Minute), interval, now) {
		t.Error("59 minutes into an hourly cadence is not due")
	}
	// Exactly on the boundary waits for the next tick
	if DueForSummary(now.Add(-interval), interval, now) {
		t.Error("exactly one interval is not due, comparison is strict")
	}
	if !DueForSummary(now.Add(-61*time.Minute), interval, now) {
		t.Error("61 minutes into an hourly cadence is due")
	}
	if !DueForSummary(time.Time{}, interval, now) {
		t.Error("never-summarized subject should be due")
	}
}
