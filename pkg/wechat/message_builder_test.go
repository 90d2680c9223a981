package wechat

import (
	"strings"
	"testing"
	"time"

	"saganowatch/pkg/sagano"
)

func TestBuildSeatAlert(t *testing.T) {
	slots := []sagano.Slot{
		{Time: "10:05", TrainID: "Sagano 2", Available: true},
		{Time: "13:35", TrainID: "Sagano 9", Available: true},
	}

	msg := BuildSeatAlert("2026-09-15", slots, 2)

	for _, want := range []string{
		"2026-09-15",
		"10:05 (Sagano 2)",
		"13:35 (Sagano 9)",
		"**Party size:** 2",
		"date=2026-09-15",
		"unitsCount=2",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("alert missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildStatusReport(t *testing.T) {
	lastTick := time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)
	msg := BuildStatusReport(3, 7, lastTick)

	for _, want := range []string{
		"**Subscribers:** 3",
		"**Watched dates:** 7",
		"2026-09-01 09:30:00",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("report missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildStatusReportZeroTick(t *testing.T) {
	msg := BuildStatusReport(0, 0, time.Time{})
	if strings.Contains(msg, "Last tick") {
		t.Errorf("report should omit last tick when never ticked:\n%s", msg)
	}
}
