package spending

import "errors"

var (
	// ErrSpendingWindowTooLong is returned when a validity window spans
	// more than 3 calendar years.
	ErrSpendingWindowTooLong = errors.New("spending: validity window over more than 3 calendar years")
	// ErrMissingRequiredField is returned when a record lacks a field the
	// proration depends on.
	ErrMissingRequiredField = errors.New("spending: missing required field")
	// ErrInvertedWindow is returned when the validity end precedes the start.
	ErrInvertedWindow = errors.New("spending: validity end before start")
)
