package analytics

import (
	"sort"
	"time"

	trips "github.com/Nosudrum/train-stats/internal/trips/domain"
)

// JourneyStats is the rollup of all trips sharing a journey key.
type JourneyStats struct {
	Journey        string
	Count          int
	MeanDistanceKm float64
	FirstDate      time.Time
}

// Journeys groups trips by journey key. The result is ordered by trip
// count descending, ties broken by journey name, so renderers get a
// deterministic iteration order.
func Journeys(list []trips.Trip) []JourneyStats {
	type acc struct {
		count       int
		distanceSum float64
		distanceN   int
		first       time.Time
	}
	byJourney := make(map[string]*acc)
	for _, trip := range list {
		a := byJourney[trip.Journey]
		if a == nil {
			a = &acc{first: trip.ArrivalUTC}
			byJourney[trip.Journey] = a
		}
		a.count++
		if trip.DistanceKm != nil {
			a.distanceSum += *trip.DistanceKm
			a.distanceN++
		}
		if trip.ArrivalUTC.Before(a.first) {
			a.first = trip.ArrivalUTC
		}
	}

	out := make([]JourneyStats, 0, len(byJourney))
	for journey, a := range byJourney {
		stats := JourneyStats{Journey: journey, Count: a.count, FirstDate: a.first}
		if a.distanceN > 0 {
			stats.MeanDistanceKm = a.distanceSum / float64(a.distanceN)
		}
		out = append(out, stats)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Journey < out[j].Journey
	})
	return out
}
