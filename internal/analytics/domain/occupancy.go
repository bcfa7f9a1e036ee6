package analytics

import (
	"time"

	trips "github.com/Nosudrum/train-stats/internal/trips/domain"
)

// MinutesPerDay is the slot count of an occupancy curve.
const MinutesPerDay = 1440

// OccupancyMode selects what each occupied minute accumulates.
type OccupancyMode int

const (
	// OccupancyCount accumulates one unit per trip per occupied minute.
	OccupancyCount OccupancyMode = iota
	// OccupancyDistance spreads the trip distance evenly over its
	// occupied minutes.
	OccupancyDistance
)

// OccupancyCurve is one operator group's 1440-slot accumulation.
type OccupancyCurve struct {
	Operator string
	Slots    []float64
}

// BinMinutes folds each trip's local departure/arrival wall clock onto a
// synthetic 24-hour axis. Same-day trips occupy [departure, arrival);
// trips crossing midnight occupy [departure, 1440) and [0, arrival),
// plus one full unit per entirely-occupied intermediate day. A same-day
// trip arriving on its departure minute carries no usable time-of-day
// information and contributes nothing, in either mode.
func BinMinutes(list []trips.Trip, mode OccupancyMode) []float64 {
	slots := make([]float64, MinutesPerDay)
	for _, trip := range list {
		departure := minuteOfDay(trip.DepartureLocal)
		arrival := minuteOfDay(trip.ArrivalLocal)
		delta := localDayDelta(trip.DepartureLocal, trip.ArrivalLocal)
		if delta <= 0 && arrival == departure {
			continue
		}

		unit := 1.0
		if mode == OccupancyDistance {
			if trip.DistanceKm == nil {
				continue
			}
			span := arrival + MinutesPerDay*delta - departure
			if span <= 0 {
				continue
			}
			unit = *trip.DistanceKm / float64(span)
		}

		if delta == 0 {
			for m := departure; m < arrival; m++ {
				slots[m] += unit
			}
			continue
		}
		for m := departure; m < MinutesPerDay; m++ {
			slots[m] += unit
		}
		for m := 0; m < arrival; m++ {
			slots[m] += unit
		}
		if delta > 1 {
			carry := float64(delta-1) * unit
			for m := range slots {
				slots[m] += carry
			}
		}
	}
	return slots
}

// OperatorOccupancy bins trips per selected operator group. Curves come
// back in selection order (top seven by the metric, then Others).
func OperatorOccupancy(list []trips.Trip, extraSpend map[string]map[int]float64, metric Metric, mode OccupancyMode) []OccupancyCurve {
	selected := SelectTopOperators(list, extraSpend, metric)

	grouped := make(map[string][]trips.Trip, len(selected))
	for _, trip := range list {
		label := RelabelOperator(trip.Operator, selected)
		grouped[label] = append(grouped[label], trip)
	}

	curves := make([]OccupancyCurve, 0, len(selected))
	for _, operator := range selected {
		curves = append(curves, OccupancyCurve{
			Operator: operator,
			Slots:    BinMinutes(grouped[operator], mode),
		})
	}
	return curves
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// localDayDelta counts calendar days between the two local wall-clock
// dates, ignoring clock time.
func localDayDelta(departure, arrival time.Time) int {
	d1 := time.Date(departure.Year(), departure.Month(), departure.Day(), 0, 0, 0, 0, time.UTC)
	d2 := time.Date(arrival.Year(), arrival.Month(), arrival.Day(), 0, 0, 0, 0, time.UTC)
	return int(d2.Sub(d1).Hours() / 24)
}
