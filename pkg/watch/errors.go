package watch

import "errors"

var (
	// ErrIntervalTooLow rejects check cadences under one minute
	ErrIntervalTooLow = errors.New("interval too low (min 1 minute)")

	// ErrSeatsTooLow rejects party sizes under one
	ErrSeatsTooLow = errors.New("seats must be 1+")
)
