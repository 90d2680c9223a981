package sagano

import (
	"fmt"
	"strings"
)

// Station is a stop on the Sagano Scenic Railway
type Station struct {
	Key  string // short lookup key
	Name string // display name used by the booking UI
}

// All four stops, in line order from Saga to Kameoka. The booking UI matches
// options by display name, so Name must stay exactly as rendered on the page.
var stations = []Station{
	{Key: "saga", Name: "Torokko Saga"},
	{Key: "arashiyama", Name: "Torokko Arashiyama"},
	{Key: "hozukyo", Name: "Torokko Hozukyo"},
	{Key: "kameoka", Name: "Torokko Kameoka"},
}

// Stations returns all stations in line order
func Stations() []Station {
	out := make([]Station, len(stations))
	copy(out, stations)
	return out
}

// FindStation resolves a user query to a station. Matching is a
// case-insensitive substring match against the key or the display name, so
// "saga", "kame" and "torokko hozukyo" all resolve.
func FindStation(query string) (Station, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Station{}, ErrStationNotFound
	}

	for _, st := range stations {
		if strings.Contains(st.Key, q) || strings.Contains(strings.ToLower(st.Name), q) {
			return st, nil
		}
	}

	return Station{}, fmt.Errorf("%w: %s. Options: %s", ErrStationNotFound, query, StationOptions())
}

// StationOptions lists the display names for help and error messages
func StationOptions() string {
	names := make([]string, len(stations))
	for i, st := range stations {
		names[i] = st.Name
	}
	return strings.Join(names, ", ")
}
