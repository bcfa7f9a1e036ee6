package stations

import "errors"

var (
	// ErrStationNotFound is returned when a name is absent from both tables.
	ErrStationNotFound = errors.New("stations: station not found")
	// ErrEmptyStationName is returned when a table entry has no name.
	ErrEmptyStationName = errors.New("stations: empty station name")
	// ErrEmptyTimezone is returned when a table entry has no timezone.
	ErrEmptyTimezone = errors.New("stations: empty timezone")
)
