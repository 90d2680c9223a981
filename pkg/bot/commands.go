package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"saganowatch/pkg/sagano"
)

const helpText = `🚂 Sagano Railway seat watcher

/monitor YYYY-MM-DD - watch a date for open seats
/stop - stop watching everything
/stop YYYY-MM-DD - stop watching one date
/list - show watched dates
/config - show current settings
/config key=value - change settings

Config keys:
  interval=N   check every N minutes (min 1)
  seats=N      party size (units= also works)
  dep=STATION  departure (start= also works)
  arr=STATION  arrival (end= also works)

Stations: ` + "saga, arashiyama, hozukyo, kameoka"

// HandleCommand dispatches one incoming message and returns the reply.
// Unknown text gets the help reply so users are never left hanging.
func (b *Bot) HandleCommand(chatID int64, text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return ""
	}

	// Commands in group chats arrive as /cmd@botname
	cmd := strings.ToLower(strings.SplitN(fields[0], "@", 2)[0])
	args := fields[1:]

	switch cmd {
	case "/start", "/help":
		return helpText
	case "/monitor":
		return b.cmdMonitor(chatID, args)
	case "/stop":
		return b.cmdStop(chatID, args)
	case "/list":
		return b.cmdList(chatID)
	case "/config":
		return b.cmdConfig(chatID, args)
	default:
		return "Unknown command.\n\n" + helpText
	}
}

func (b *Bot) cmdMonitor(chatID int64, args []string) string {
	if len(args) == 0 {
		return "Usage: /monitor YYYY-MM-DD"
	}

	var lines []string
	for _, date := range args {
		if err := b.registry.Monitor(chatID, date); err != nil {
			lines = append(lines, fmt.Sprintf("❌ %s: %s", date, err.Error()))
			continue
		}
		lines = append(lines, fmt.Sprintf("✅ Monitoring %s", date))
	}
	return strings.Join(lines, "\n")
}

func (b *Bot) cmdStop(chatID int64, args []string) string {
	if len(args) == 0 {
		stopped := b.registry.StopAll(chatID)
		if len(stopped) == 0 {
			return "You weren't monitoring anything."
		}
		return fmt.Sprintf("🛑 Stopped monitoring %s", strings.Join(stopped, ", "))
	}

	date := args[0]
	if !b.registry.StopDate(chatID, date) {
		return fmt.Sprintf("You weren't monitoring %s", date)
	}
	return fmt.Sprintf("🛑 Stopped monitoring %s", date)
}

func (b *Bot) cmdList(chatID int64) string {
	state := b.registry.Get(chatID)
	if state == nil || len(state.Dates) == 0 {
		return "Not monitoring any dates. Use /monitor YYYY-MM-DD to start."
	}

	var b2 strings.Builder
	b2.WriteString("📋 Monitoring:\n")
	for _, d := range state.Dates {
		fmt.Fprintf(&b2, "  📅 %s\n", d)
	}
	fmt.Fprintf(&b2, "Route: %s → %s\n", state.Departure.Name, state.Arrival.Name)
	fmt.Fprintf(&b2, "Seats: %d, checking every %s", state.Seats, formatInterval(state.CheckInterval))
	return b2.String()
}

func (b *Bot) cmdConfig(chatID int64, args []string) string {
	if len(args) == 0 {
		return b.configView(chatID)
	}

	var lines []string
	for _, arg := range args {
		lines = append(lines, b.applyConfigArg(chatID, arg))
	}
	return strings.Join(lines, "\n")
}

func (b *Bot) applyConfigArg(chatID int64, arg string) string {
	key, value, found := strings.Cut(arg, "=")
	if !found || value == "" {
		return fmt.Sprintf("Can't parse %q, expected key=value", arg)
	}

	switch strings.ToLower(key) {
	case "interval":
		minutes, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Sprintf("Can't parse interval %q", value)
		}
		if err := b.registry.SetInterval(chatID, time.Duration(minutes)*time.Minute); err != nil {
			return "Interval too low (min 1 minute)"
		}
		return fmt.Sprintf("Check interval set to %d minute(s)", minutes)

	case "seats", "units":
		seats, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Sprintf("Can't parse seats %q", value)
		}
		if err := b.registry.SetSeats(chatID, seats); err != nil {
			return "Seats must be 1+"
		}
		return fmt.Sprintf("Seats set to %d", seats)

	case "dep", "start":
		st, err := b.registry.SetDeparture(chatID, value)
		if err != nil {
			return fmt.Sprintf("Station not found: %s. Options: %s", value, sagano.StationOptions())
		}
		return fmt.Sprintf("Departure set to %s", st.Name)

	case "arr", "end":
		st, err := b.registry.SetArrival(chatID, value)
		if err != nil {
			return fmt.Sprintf("Station not found: %s. Options: %s", value, sagano.StationOptions())
		}
		return fmt.Sprintf("Arrival set to %s", st.Name)

	default:
		return fmt.Sprintf("Unknown config key %q", key)
	}
}

func (b *Bot) configView(chatID int64) string {
	state := b.registry.Get(chatID)
	if state == nil {
		// Show what a fresh subject would get
		var b2 strings.Builder
		b2.WriteString("⚙️ Settings (defaults):\n")
		fmt.Fprintf(&b2, "  interval: %d minute(s)\n", b.cfg.DefaultIntervalMinutes)
		fmt.Fprintf(&b2, "  summary: every %d minute(s)\n", b.cfg.DefaultSummaryMinutes)
		fmt.Fprintf(&b2, "  route: %s → %s\n", b.cfg.DefaultDeparture, b.cfg.DefaultArrival)
		fmt.Fprintf(&b2, "  seats: %d\n", b.cfg.DefaultSeats)
		b2.WriteString("Stations: " + stationKeys())
		return b2.String()
	}

	var b2 strings.Builder
	b2.WriteString("⚙️ Settings:\n")
	fmt.Fprintf(&b2, "  interval: %s\n", formatInterval(state.CheckInterval))
	fmt.Fprintf(&b2, "  summary: every %s\n", formatInterval(state.SummaryInterval))
	fmt.Fprintf(&b2, "  route: %s → %s\n", state.Departure.Name, state.Arrival.Name)
	fmt.Fprintf(&b2, "  seats: %d\n", state.Seats)
	b2.WriteString("Stations: " + stationKeys())
	return b2.String()
}

func stationKeys() string {
	keys := make([]string, 0, len(sagano.Stations()))
	for _, st := range sagano.Stations() {
		keys = append(keys, st.Key)
	}
	return strings.Join(keys, ", ")
}

func formatInterval(d time.Duration) string {
	minutes := int(d / time.Minute)
	return fmt.Sprintf("%d minute(s)", minutes)
}
