package analytics

import "time"

// TravelStats are the distance/duration totals for a window, with the
// already-travelled share when the window is still ongoing.
type TravelStats struct {
	TotalDistanceKm   float64
	TotalDuration     time.Duration
	CurrentDistanceKm float64
	CurrentDuration   time.Duration
	Ongoing           bool
}

// Stats sums distance and duration over [start, end]. Bounds default to
// the first departure and last arrival in the store. When the window is
// still in progress at the clock's now, Ongoing is set and the Current
// fields carry the share completed so far.
func (s *Store) Stats(start, end *time.Time) TravelStats {
	if len(s.trips) == 0 {
		return TravelStats{}
	}

	windowStart := s.trips[0].DepartureUTC
	windowEnd := s.trips[0].ArrivalUTC
	for _, trip := range s.trips {
		if trip.DepartureUTC.Before(windowStart) {
			windowStart = trip.DepartureUTC
		}
		if trip.ArrivalUTC.After(windowEnd) {
			windowEnd = trip.ArrivalUTC
		}
	}
	if start != nil {
		windowStart = *start
	}
	if end != nil {
		windowEnd = *end
	}

	now := s.clock.Now()
	stats := TravelStats{Ongoing: windowEnd.After(now) && !windowStart.After(now)}
	for _, trip := range s.trips {
		if trip.DepartureUTC.Before(windowStart) {
			continue
		}
		if !trip.ArrivalUTC.After(windowEnd) {
			if trip.DistanceKm != nil {
				stats.TotalDistanceKm += *trip.DistanceKm
			}
			if trip.Duration != nil {
				stats.TotalDuration += *trip.Duration
			}
		}
		if trip.ArrivalUTC.Before(now) {
			if trip.DistanceKm != nil {
				stats.CurrentDistanceKm += *trip.DistanceKm
			}
			if trip.Duration != nil {
				stats.CurrentDuration += *trip.Duration
			}
		}
	}
	return stats
}
