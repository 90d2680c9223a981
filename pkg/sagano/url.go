package sagano

import (
	"net/url"
	"strconv"
)

// Booking site endpoints. The seat page is a single-page app that reads its
// parameters from the query string.
const (
	baseURL        = "https://file.sagano.linktivity.io/seat/51/down"
	backURL        = "https://ars-saganokanko.triplabo.jp/activity/en/LINKTIVITY-YRBTL"
	redirectURL    = "https://ars-saganokanko.triplabo.jp/booking/pay"
	currentStepVal = "station"
)

// BuildBookingURL builds the deep link into the seat selection page for a
// date and party size. The same link is sent to users so they land directly
// on the booking step.
func BuildBookingURL(date string, seats int) string {
	params := url.Values{}
	params.Set("lang", "en")
	params.Set("date", date)
	params.Set("unitsCount", strconv.Itoa(seats))
	params.Set("backUrl", backURL)
	params.Set("redirectUrl", redirectURL)
	params.Set("currentStep", currentStepVal)
	return baseURL + "?" + params.Encode()
}
