package sagano

import (
	"errors"
	"strings"
	"testing"
)

func TestFindStationByKey(t *testing.T) {
	cases := map[string]string{
		"saga":       "Torokko Saga",
		"arashiyama": "Torokko Arashiyama",
		"hozukyo":    "Torokko Hozukyo",
		"kameoka":    "Torokko Kameoka",
	}

	for query, want := range cases {
		st, err := FindStation(query)
		if err != nil {
			t.Errorf("FindStation(%q) failed: %v", query, err)
			continue
		}
		if st.Name != want {
			t.Errorf("FindStation(%q) = %s, want %s", query, st.Name, want)
		}
	}
}

func TestFindStationSubstring(t *testing.T) {
	st, err := FindStation("kame")
	if err != nil {
		t.Fatalf("substring lookup failed: %v", err)
	}
	if st.Key != "kameoka" {
		t.Errorf("expected kameoka, got %s", st.Key)
	}

	st, err = FindStation("Torokko Hozukyo")
	if err != nil {
		t.Fatalf("display name lookup failed: %v", err)
	}
	if st.Key != "hozukyo" {
		t.Errorf("expected hozukyo, got %s", st.Key)
	}

	// Case-insensitive
	if _, err := FindStation("SAGA"); err != nil {
		t.Errorf("uppercase lookup failed: %v", err)
	}
}

func TestFindStationNotFound(t *testing.T) {
	_, err := FindStation("kyoto")
	if !errors.Is(err, ErrStationNotFound) {
		t.Fatalf("expected ErrStationNotFound, got %v", err)
	}
	// The error doubles as the user-facing reply, so it lists the options
	if !strings.Contains(err.Error(), "Torokko Saga") {
		t.Errorf("expected options in error, got %v", err)
	}

	if _, err := FindStation("  "); !errors.Is(err, ErrStationNotFound) {
		t.Errorf("expected ErrStationNotFound for blank query, got %v", err)
	}
}

func TestStationsOrder(t *testing.T) {
	all := Stations()
	if len(all) != 4 {
		t.Fatalf("expected 4 stations, got %d", len(all))
	}
	if all[0].Key != "saga" || all[3].Key != "kameoka" {
		t.Errorf("stations out of line order: %+v", all)
	}
}
