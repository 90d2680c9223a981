package bot

import (
	"strings"
	"testing"
	"time"

	"saganowatch/pkg/config"
	"saganowatch/pkg/utils/dateutils"
	"saganowatch/pkg/watch"
)

func testBot() *Bot {
	cfg := config.NewMonitorConfig()
	return New(nil, watch.NewRegistry(cfg), cfg)
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format(dateutils.LayoutDate)
}

func TestMonitorCommand(t *testing.T) {
	b := testBot()
	date := futureDate(5)

	reply := b.HandleCommand(1, "/monitor "+date)
	if !strings.Contains(reply, "Monitoring "+date) {
		t.Errorf("unexpected reply: %s", reply)
	}

	state := b.registry.Get(1)
	if state == nil || !state.HasDate(date) {
		t.Error("date not registered")
	}
}

func TestMonitorCommandRejections(t *testing.T) {
	b := testBot()

	reply := b.HandleCommand(1, "/monitor "+futureDate(-2))
	if !strings.Contains(reply, "past") {
		t.Errorf("expected past-date rejection, got: %s", reply)
	}

	reply = b.HandleCommand(1, "/monitor "+futureDate(60))
	if !strings.Contains(reply, "1 month in advance") {
		t.Errorf("expected window rejection, got: %s", reply)
	}

	reply = b.HandleCommand(1, "/monitor")
	if !strings.Contains(reply, "Usage") {
		t.Errorf("expected usage reply, got: %s", reply)
	}

	if state := b.registry.Get(1); state != nil && len(state.Dates) > 0 {
		t.Errorf("rejected dates must not be watched: %v", state.Dates)
	}
}

func TestMonitorCommandMultipleDates(t *testing.T) {
	b := testBot()
	good := futureDate(5)
	bad := futureDate(60)

	reply := b.HandleCommand(1, "/monitor "+good+" "+bad)
	if !strings.Contains(reply, "Monitoring "+good) {
		t.Errorf("expected first date accepted: %s", reply)
	}
	if !strings.Contains(reply, bad) || !strings.Contains(reply, "❌") {
		t.Errorf("expected second date rejected: %s", reply)
	}
}

func TestStopCommand(t *testing.T) {
	b := testBot()
	a, c := futureDate(5), futureDate(6)
	b.HandleCommand(1, "/monitor "+a)
	b.HandleCommand(1, "/monitor "+c)

	reply := b.HandleCommand(1, "/stop "+a)
	if !strings.Contains(reply, "Stopped monitoring "+a) {
		t.Errorf("unexpected reply: %s", reply)
	}
	if b.registry.Get(1).HasDate(a) {
		t.Error("stopped date still watched")
	}

	reply = b.HandleCommand(1, "/stop "+a)
	if reply != "You weren't monitoring "+a {
		t.Errorf("unexpected reply for unwatched date: %s", reply)
	}

	reply = b.HandleCommand(1, "/stop")
	if !strings.Contains(reply, "Stopped monitoring") || !strings.Contains(reply, c) {
		t.Errorf("unexpected bare stop reply: %s", reply)
	}
	if len(b.registry.Get(1).Dates) != 0 {
		t.Error("bare /stop should clear everything")
	}

	reply = b.HandleCommand(1, "/stop")
	if reply != "You weren't monitoring anything." {
		t.Errorf("unexpected reply for empty stop: %s", reply)
	}
}

func TestListCommand(t *testing.T) {
	b := testBot()

	reply := b.HandleCommand(1, "/list")
	if !strings.Contains(reply, "Not monitoring") {
		t.Errorf("unexpected empty list reply: %s", reply)
	}

	date := futureDate(5)
	b.HandleCommand(1, "/monitor "+date)

	reply = b.HandleCommand(1, "/list")
	for _, want := range []string{date, "Torokko Saga", "Torokko Kameoka", "Seats: 1"} {
		if !strings.Contains(reply, want) {
			t.Errorf("list reply missing %q: %s", want, reply)
		}
	}
}

func TestConfigCommand(t *testing.T) {
	b := testBot()

	reply := b.HandleCommand(1, "/config interval=5")
	if !strings.Contains(reply, "interval set to 5") {
		t.Errorf("unexpected reply: %s", reply)
	}
	reply = b.HandleCommand(1, "/config interval=0")
	if reply != "Interval too low (min 1 minute)" {
		t.Errorf("unexpected reply: %s", reply)
	}

	reply = b.HandleCommand(1, "/config seats=3")
	if !strings.Contains(reply, "Seats set to 3") {
		t.Errorf("unexpected reply: %s", reply)
	}
	reply = b.HandleCommand(1, "/config units=0")
	if reply != "Seats must be 1+" {
		t.Errorf("unexpected reply: %s", reply)
	}

	reply = b.HandleCommand(1, "/config dep=arashiyama arr=hozukyo")
	if !strings.Contains(reply, "Departure set to Torokko Arashiyama") ||
		!strings.Contains(reply, "Arrival set to Torokko Hozukyo") {
		t.Errorf("unexpected reply: %s", reply)
	}

	reply = b.HandleCommand(1, "/config dep=osaka")
	if !strings.Contains(reply, "Station not found") || !strings.Contains(reply, "Torokko Saga") {
		t.Errorf("expected not-found reply with options: %s", reply)
	}

	state := b.registry.Get(1)
	if state.CheckInterval != 5*time.Minute || state.Seats != 3 || state.Departure.Key != "arashiyama" {
		t.Errorf("config not applied: %+v", state)
	}
}

func TestConfigView(t *testing.T) {
	b := testBot()

	// Before any state exists the view shows defaults
	reply := b.HandleCommand(1, "/config")
	if !strings.Contains(reply, "defaults") || !strings.Contains(reply, "saga, arashiyama, hozukyo, kameoka") {
		t.Errorf("unexpected default view: %s", reply)
	}

	b.HandleCommand(1, "/config seats=2")
	reply = b.HandleCommand(1, "/config")
	if !strings.Contains(reply, "seats: 2") {
		t.Errorf("view missing applied setting: %s", reply)
	}
}

func TestHelpAndUnknown(t *testing.T) {
	b := testBot()

	for _, cmd := range []string{"/start", "/help"} {
		reply := b.HandleCommand(1, cmd)
		if !strings.Contains(reply, "/monitor") {
			t.Errorf("%s reply missing usage: %s", cmd, reply)
		}
	}

	reply := b.HandleCommand(1, "/bogus")
	if !strings.Contains(reply, "Unknown command") {
		t.Errorf("unexpected reply: %s", reply)
	}

	// Group-chat form /cmd@botname dispatches normally
	reply = b.HandleCommand(1, "/help@saganowatchbot")
	if !strings.Contains(reply, "/monitor") {
		t.Errorf("expected help for suffixed command: %s", reply)
	}
}
