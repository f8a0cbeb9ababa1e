package availability

import "errors"

var (
	// ErrInvalidDuration is returned when a slot width is not positive.
	ErrInvalidDuration = errors.New("availability: duration must be positive")

	// ErrInvalidRange is returned when a query window does not start before it ends.
	ErrInvalidRange = errors.New("availability: start must be before end")

	ErrInvalidWeekday  = errors.New("availability: weekday must be between 1 and 7")
	ErrInvalidInterval = errors.New("availability: interval must open before it closes")
	ErrMissingHours    = errors.New("availability: special hours require open and close")
)
