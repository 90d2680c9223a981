package sagano

import (
	"net/url"
	"testing"
)

func TestBuildBookingURL(t *testing.T) {
	raw := BuildBookingURL("2026-09-15", 2)

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("built URL does not parse: %v", err)
	}

	if u.Host != "file.sagano.linktivity.io" {
		t.Errorf("unexpected host: %s", u.Host)
	}
	if u.Path != "/seat/51/down" {
		t.Errorf("unexpected path: %s", u.Path)
	}

	q := u.Query()
	if q.Get("date") != "2026-09-15" {
		t.Errorf("unexpected date param: %s", q.Get("date"))
	}
	if q.Get("unitsCount") != "2" {
		t.Errorf("unexpected unitsCount param: %s", q.Get("unitsCount"))
	}
	if q.Get("lang") != "en" {
		t.Errorf("unexpected lang param: %s", q.Get("lang"))
	}
	if q.Get("currentStep") != "station" {
		t.Errorf("unexpected currentStep param: %s", q.Get("currentStep"))
	}
	if q.Get("backUrl") == "" || q.Get("redirectUrl") == "" {
		t.Error("expected backUrl and redirectUrl params")
	}
}
