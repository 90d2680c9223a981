package wechat

import (
	"fmt"
	"strings"
	"time"

	"saganowatch/pkg/sagano"
	"saganowatch/pkg/utils/dateutils"
)

// BuildSeatAlert renders an availability alert as WeCom markdown
func BuildSeatAlert(date string, slots []sagano.Slot, seats int) string {
	var b strings.Builder

	b.WriteString("## 🎉 Sagano Railway Seats Available\n")
	fmt.Fprintf(&b, "**Date:** %s\n", date)
	fmt.Fprintf(&b, "**Party size:** %d\n", seats)
	b.WriteString("**Departures:**\n")
	for _, s := range slots {
		fmt.Fprintf(&b, "> %s\n", s.Label())
	}
	fmt.Fprintf(&b, "\n[Book now](%s)", sagano.BuildBookingURL(date, seats))

	return b.String()
}

// BuildStatusReport renders a monitoring status summary as WeCom markdown
func BuildStatusReport(subjects int, dates int, lastTick time.Time) string {
	var b strings.Builder

	b.WriteString("## 🚂 Sagano Watch Status\n")
	fmt.Fprintf(&b, "**Subscribers:** %d\n", subjects)
	fmt.Fprintf(&b, "**Watched dates:** %d\n", dates)
	if !lastTick.IsZero() {
		fmt.Fprintf(&b, "**Last tick:** %s\n", lastTick.Format(dateutils.LayoutDateTime))
	}

	return b.String()
}
