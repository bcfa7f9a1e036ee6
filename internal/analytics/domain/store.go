package analytics

import (
	"time"

	trips "github.com/Nosudrum/train-stats/internal/trips/domain"
)

// Clock provides time for the store's past/future views.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

// Now returns current time.
func (SystemClock) Now() time.Time { return time.Now() }

// Store owns the normalized trip table. Every accessor returns an
// independent deep copy; callers can never alias the internal slice.
type Store struct {
	trips []trips.Trip
	clock Clock
}

// NewStore constructs a Store over a normalized trip set. The input is
// copied.
func NewStore(all []trips.Trip, clock Clock) *Store {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Store{trips: trips.CloneAll(all), clock: clock}
}

// Now exposes the store's clock reading.
func (s *Store) Now() time.Time { return s.clock.Now() }

// EndOfYear is the first instant of next year, used as the
// current-year-only future bound.
func (s *Store) EndOfYear() time.Time {
	now := s.clock.Now()
	return time.Date(now.Year()+1, time.January, 1, 0, 0, 0, 0, now.Location())
}

// Trips returns a filtered deep copy of the trip table. A trip is kept
// when departure >= filterStart (if given) and arrival <= filterEnd (if
// given); both bounds are optional and independent.
func (s *Store) Trips(filterStart, filterEnd *time.Time) []trips.Trip {
	out := make([]trips.Trip, 0, len(s.trips))
	for _, trip := range s.trips {
		if filterStart != nil && trip.DepartureUTC.Before(*filterStart) {
			continue
		}
		if filterEnd != nil && trip.ArrivalUTC.After(*filterEnd) {
			continue
		}
		out = append(out, trip.Clone())
	}
	return out
}

// PastTrips returns trips that have already arrived.
func (s *Store) PastTrips(filterStart *time.Time) []trips.Trip {
	now := s.clock.Now()
	return s.Trips(filterStart, &now)
}

// FutureTrips returns trips that have not yet departed, optionally
// bounded to the current calendar year.
func (s *Store) FutureTrips(currentYearOnly bool) []trips.Trip {
	now := s.clock.Now()
	if !currentYearOnly {
		return s.Trips(&now, nil)
	}
	eoy := s.EndOfYear()
	return s.Trips(&now, &eoy)
}
