package watch

import (
	"sort"
	"sync"
	"time"

	"saganowatch/pkg/config"
	"saganowatch/pkg/sagano"
	"saganowatch/pkg/utils/dateutils"
)

// Registry holds the watch state for every chat. Command handlers and the
// tick loop run on different goroutines, so all access goes through the
// registry lock. Mutations are short; availability checks never run under
// the lock.
type Registry struct {
	mu       sync.RWMutex
	subjects map[int64]*WatchState
	cfg      *config.MonitorConfig
}

// NewRegistry creates an empty registry with the given subject defaults
func NewRegistry(cfg *config.MonitorConfig) *Registry {
	if cfg == nil {
		cfg = config.NewMonitorConfig()
	}
	return &Registry{
		subjects: make(map[int64]*WatchState),
		cfg:      cfg,
	}
}

// Monitor starts watching a date for a chat, creating the subject with
// configured defaults on first use. The date must be today or later and
// inside the booking window.
func (r *Registry) Monitor(chatID int64, date string) error {
	if err := dateutils.ValidateMonitorDate(date, r.cfg.MaxAdvanceDays); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.subjects[chatID]
	if state == nil {
		state = r.newState(chatID)
		r.subjects[chatID] = state
	}
	state.AddDate(date)
	return nil
}

// StopAll stops watching every date for a chat. Returns the dates that were
// being watched.
func (r *Registry) StopAll(chatID int64) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.subjects[chatID]
	if state == nil {
		return nil
	}
	stopped := append([]string(nil), state.Dates...)
	state.ClearDates()
	return stopped
}

// StopDate stops watching one date. Returns false when the chat was not
// watching it.
func (r *Registry) StopDate(chatID int64, date string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.subjects[chatID]
	if state == nil {
		return false
	}
	return state.RemoveDate(date)
}

// Get returns a copy of a chat's state, or nil when the chat has none
func (r *Registry) Get(chatID int64) *WatchState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state := r.subjects[chatID]
	if state == nil {
		return nil
	}
	return state.clone()
}

// Snapshot returns copies of every subject, ordered by chat ID so ticks
// process subjects deterministically.
func (r *Registry) Snapshot() []*WatchState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*WatchState, 0, len(r.subjects))
	for _, state := range r.subjects {
		out = append(out, state.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChatID < out[j].ChatID })
	return out
}

// Update runs fn against a chat's live state under the lock. No-op when the
// chat has no state.
func (r *Registry) Update(chatID int64, fn func(*WatchState)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if state := r.subjects[chatID]; state != nil {
		fn(state)
	}
}

// SetInterval updates the check cadence for a chat, creating the subject if
// needed. Cadence is clamped at one minute to keep scraping polite.
func (r *Registry) SetInterval(chatID int64, interval time.Duration) error {
	if interval < time.Minute {
		return ErrIntervalTooLow
	}
	r.withState(chatID, func(s *WatchState) { s.CheckInterval = interval })
	return nil
}

// SetSeats updates the party size for a chat
func (r *Registry) SetSeats(chatID int64, seats int) error {
	if seats < 1 {
		return ErrSeatsTooLow
	}
	r.withState(chatID, func(s *WatchState) { s.Seats = seats })
	return nil
}

// SetDeparture updates the departure station for a chat
func (r *Registry) SetDeparture(chatID int64, query string) (sagano.Station, error) {
	st, err := sagano.FindStation(query)
	if err != nil {
		return sagano.Station{}, err
	}
	r.withState(chatID, func(s *WatchState) { s.Departure = st })
	return st, nil
}

// SetArrival updates the arrival station for a chat
func (r *Registry) SetArrival(chatID int64, query string) (sagano.Station, error) {
	st, err := sagano.FindStation(query)
	if err != nil {
		return sagano.Station{}, err
	}
	r.withState(chatID, func(s *WatchState) { s.Arrival = st })
	return st, nil
}

// SubjectCount returns how many chats have state
func (r *Registry) SubjectCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subjects)
}

// ActiveDateCount returns the total number of watched dates across chats
func (r *Registry) ActiveDateCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, state := range r.subjects {
		total += len(state.Dates)
	}
	return total
}

func (r *Registry) withState(chatID int64, fn func(*WatchState)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.subjects[chatID]
	if state == nil {
		state = r.newState(chatID)
		r.subjects[chatID] = state
	}
	fn(state)
}

// newState builds a subject from configured defaults. Caller holds the lock.
func (r *Registry) newState(chatID int64) *WatchState {
	dep, err := sagano.FindStation(r.cfg.DefaultDeparture)
	if err != nil {
		dep = sagano.Stations()[0]
	}
	arr, err := sagano.FindStation(r.cfg.DefaultArrival)
	if err != nil {
		arr = sagano.Stations()[len(sagano.Stations())-1]
	}

	return &WatchState{
		ChatID:          chatID,
		Departure:       dep,
		Arrival:         arr,
		Seats:           r.cfg.DefaultSeats,
		CheckInterval:   time.Duration(r.cfg.DefaultIntervalMinutes) * time.Minute,
		SummaryInterval: time.Duration(r.cfg.DefaultSummaryMinutes) * time.Minute,
		Notified:        make(map[string]bool),
	}
}
