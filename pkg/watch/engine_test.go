package watch

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"saganowatch/pkg/sagano"
)

type fakeChecker struct {
	mu      sync.Mutex
	results map[string]*sagano.CheckResult
	calls   []string
}

func (f *fakeChecker) Check(ctx context.Context, date string, dep, arr sagano.Station, seats int) *sagano.CheckResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, date)

	if r, ok := f.results[date]; ok {
		out := *r
		out.Date = date
		return &out
	}
	return &sagano.CheckResult{Date: date, CheckedAt: time.Now()}
}

type sentMessage struct {
	chatID int64
	text   string
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []sentMessage
	fail     bool
}

func (f *fakeNotifier) Notify(ctx context.Context, chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, sentMessage{chatID, text})
	if f.fail {
		return context.DeadlineExceeded
	}
	return nil
}

func (f *fakeNotifier) byPrefix(prefix string) []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sentMessage
	for _, m := range f.messages {
		if strings.HasPrefix(m.text, prefix) {
			out = append(out, m)
		}
	}
	return out
}

func availableResult(slots ...sagano.Slot) *sagano.CheckResult {
	return &sagano.CheckResult{Slots: slots, CheckedAt: time.Now()}
}

func TestEngineNotifiesOnAvailability(t *testing.T) {
	r := testRegistry()
	date := futureDate(5)
	if err := r.Monitor(1, date); err != nil {
		t.Fatalf("Monitor failed: %v", err)
	}

	checker := &fakeChecker{results: map[string]*sagano.CheckResult{
		date: availableResult(sagano.Slot{Time: "09:02", TrainID: "Sagano 1", Available: true}),
	}}
	sink := &fakeNotifier{}
	e := NewEngine(r, checker, sink)

	e.RunTick(context.Background())

	alerts := sink.byPrefix("🎉")
	if len(alerts) != 1 {
		t.Fatalf("expected 1 availability alert, got %d", len(alerts))
	}
	if alerts[0].chatID != 1 {
		t.Errorf("alert went to chat %d", alerts[0].chatID)
	}
	for _, want := range []string{date, "09:02 (Sagano 1)", "BOOK NOW"} {
		if !strings.Contains(alerts[0].text, want) {
			t.Errorf("alert missing %q: %s", want, alerts[0].text)
		}
	}

	state := r.Get(1)
	if !state.IsNotified(date + "-09:02 (Sagano 1)") {
		t.Error("announced slot not recorded")
	}
	if state.LastCheckAt.IsZero() {
		t.Error("LastCheckAt not advanced")
	}
}

func TestEngineDoesNotRenotify(t *testing.T) {
	r := testRegistry()
	date := futureDate(5)
	r.Monitor(1, date)

	checker := &fakeChecker{results: map[string]*sagano.CheckResult{
		date: availableResult(sagano.Slot{Time: "09:02", TrainID: "Sagano 1", Available: true}),
	}}
	sink := &fakeNotifier{}
	e := NewEngine(r, checker, sink)

	e.RunTick(context.Background())

	// Push the clock past the check interval and tick again with the same
	// availability
	e.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	e.RunTick(context.Background())

	if alerts := sink.byPrefix("🎉"); len(alerts) != 1 {
		t.Errorf("unchanged availability must alert exactly once, got %d", len(alerts))
	}
	if len(checker.calls) != 2 {
		t.Errorf("expected the date to be checked on both ticks, got %v", checker.calls)
	}
}

func TestEngineFailedCheckStaysSilent(t *testing.T) {
	r := testRegistry()
	date := futureDate(5)
	r.Monitor(1, date)

	checker := &fakeChecker{results: map[string]*sagano.CheckResult{
		date: {
			Slots: []sagano.Slot{{Time: "09:02", TrainID: "Sagano 1", Available: true}},
			Err:   sagano.ErrNavigationTimeout,
		},
	}}
	sink := &fakeNotifier{}
	e := NewEngine(r, checker, sink)

	e.RunTick(context.Background())

	if alerts := sink.byPrefix("🎉"); len(alerts) != 0 {
		t.Errorf("failed check must not alert, got %v", alerts)
	}

	// The slot was never announced, so a later clean check still alerts
	checker.results[date] = availableResult(sagano.Slot{Time: "09:02", TrainID: "Sagano 1", Available: true})
	e.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	e.RunTick(context.Background())

	if alerts := sink.byPrefix("🎉"); len(alerts) != 1 {
		t.Errorf("recovered check should alert, got %d", len(alerts))
	}
}

func TestEngineRespectsCheckInterval(t *testing.T) {
	r := testRegistry()
	date := futureDate(5)
	r.Monitor(1, date)

	checker := &fakeChecker{}
	sink := &fakeNotifier{}
	e := NewEngine(r, checker, sink)

	e.RunTick(context.Background())
	if len(checker.calls) != 1 {
		t.Fatalf("first tick should check, got %d calls", len(checker.calls))
	}

	// Second tick lands inside the interval
	e.RunTick(context.Background())
	if len(checker.calls) != 1 {
		t.Errorf("tick inside the interval must skip, got %d calls", len(checker.calls))
	}

	e.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	e.RunTick(context.Background())
	if len(checker.calls) != 2 {
		t.Errorf("tick past the interval should check again, got %d calls", len(checker.calls))
	}
}

func TestEngineChecksDatesInOrder(t *testing.T) {
	r := testRegistry()
	later := futureDate(20)
	sooner := futureDate(2)
	r.Monitor(1, later)
	r.Monitor(1, sooner)

	checker := &fakeChecker{}
	e := NewEngine(r, checker, &fakeNotifier{})

	e.RunTick(context.Background())

	if len(checker.calls) != 2 || checker.calls[0] != sooner || checker.calls[1] != later {
		t.Errorf("dates checked out of order: %v", checker.calls)
	}
}

func TestEngineDropsExpiredDates(t *testing.T) {
	r := testRegistry()
	future := futureDate(5)
	r.Monitor(1, future)
	// Slip an already-past date in behind validation
	r.Update(1, func(s *WatchState) {
		s.AddDate("2020-01-01")
		s.MarkNotified("2020-01-01-09:02 (Sagano 1)")
	})

	checker := &fakeChecker{}
	sink := &fakeNotifier{}
	e := NewEngine(r, checker, sink)

	e.RunTick(context.Background())

	expired := sink.byPrefix("📆")
	if len(expired) != 1 || !strings.Contains(expired[0].text, "2020-01-01") {
		t.Fatalf("expected one expiry notice for 2020-01-01, got %v", expired)
	}

	state := r.Get(1)
	if state.HasDate("2020-01-01") {
		t.Error("expired date still watched")
	}
	if state.IsNotified("2020-01-01-09:02 (Sagano 1)") {
		t.Error("expired date's history should be purged")
	}

	// Only the live date was checked
	if len(checker.calls) != 1 || checker.calls[0] != future {
		t.Errorf("unexpected checks: %v", checker.calls)
	}
}

func TestEngineSendsSummary(t *testing.T) {
	r := testRegistry()
	date := futureDate(5)
	r.Monitor(1, date)

	sink := &fakeNotifier{}
	e := NewEngine(r, &fakeChecker{}, sink)

	// First tick: LastSummaryAt is the zero time, so a check-in is owed
	e.RunTick(context.Background())

	summaries := sink.byPrefix("🔄")
	if len(summaries) != 1 {
		t.Fatalf("expected 1 check-in, got %d", len(summaries))
	}
	if !strings.Contains(summaries[0].text, "Checked "+date) {
		t.Errorf("check-in missing watched date: %s", summaries[0].text)
	}

	// Within the hour no second check-in goes out
	e.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	e.RunTick(context.Background())
	if summaries := sink.byPrefix("🔄"); len(summaries) != 1 {
		t.Errorf("expected no second check-in inside the hour, got %d", len(summaries))
	}

	e.now = func() time.Time { return time.Now().Add(61 * time.Minute) }
	e.RunTick(context.Background())
	if summaries := sink.byPrefix("🔄"); len(summaries) != 2 {
		t.Errorf("expected second check-in after an hour, got %d", len(summaries))
	}
}

func TestEngineDeliveryFailureDoesNotRepeat(t *testing.T) {
	r := testRegistry()
	date := futureDate(5)
	r.Monitor(1, date)

	checker := &fakeChecker{results: map[string]*sagano.CheckResult{
		date: availableResult(sagano.Slot{Time: "09:02", TrainID: "Sagano 1", Available: true}),
	}}
	sink := &fakeNotifier{fail: true}
	e := NewEngine(r, checker, sink)

	e.RunTick(context.Background())

	// Delivery failed, but the slot was recorded before sending, so the
	// next tick stays quiet rather than double-announcing
	sink.fail = false
	e.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	e.RunTick(context.Background())

	if alerts := sink.byPrefix("🎉"); len(alerts) != 1 {
		t.Errorf("expected exactly one alert attempt, got %d", len(alerts))
	}
}

func TestEngineMultipleSubjectsInOrder(t *testing.T) {
	r := testRegistry()
	date := futureDate(5)
	r.Monitor(7, date)
	r.Monitor(3, date)

	checker := &fakeChecker{results: map[string]*sagano.CheckResult{
		date: availableResult(sagano.Slot{Time: "09:02", TrainID: "Sagano 1", Available: true}),
	}}
	sink := &fakeNotifier{}
	e := NewEngine(r, checker, sink)

	e.RunTick(context.Background())

	alerts := sink.byPrefix("🎉")
	if len(alerts) != 2 {
		t.Fatalf("expected alerts for both chats, got %d", len(alerts))
	}
	if alerts[0].chatID != 3 || alerts[1].chatID != 7 {
		t.Errorf("subjects processed out of chat order: %v", alerts)
	}
}
