package sagano

import "errors"

// Extraction error categories. Callers classify failures with errors.Is.
var (
	// ErrNavigationTimeout indicates the booking page did not load or
	// settle within the navigation deadline.
	ErrNavigationTimeout = errors.New("navigation timeout")

	// ErrElementNotFound indicates an expected control (station selector,
	// option list) was missing from the page.
	ErrElementNotFound = errors.New("page element not found")

	// ErrParseAnomaly indicates the page loaded but its content could not
	// be interpreted as a slot listing.
	ErrParseAnomaly = errors.New("page content parse anomaly")

	// ErrStationNotFound indicates a station query matched nothing.
	ErrStationNotFound = errors.New("station not found")
)
