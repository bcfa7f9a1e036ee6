package analytics

import (
	"time"

	trips "github.com/Nosudrum/train-stats/internal/trips/domain"
)

type fixedClock struct {
	at time.Time
}

func (c fixedClock) Now() time.Time { return c.at }

// tripBuilder assembles test trips with sensible defaults.
type tripBuilder struct {
	trip trips.Trip
}

func newTrip(journey, operator string) *tripBuilder {
	dep := time.Date(2023, 7, 10, 8, 0, 0, 0, time.UTC)
	arr := dep.Add(2 * time.Hour)
	return &tripBuilder{trip: trips.Trip{
		Journey:        journey,
		Operator:       operator,
		DepartureLocal: dep,
		ArrivalLocal:   arr,
		DepartureUTC:   dep,
		ArrivalUTC:     arr,
	}}
}

func (b *tripBuilder) departing(t time.Time) *tripBuilder {
	b.trip.DepartureLocal = t
	b.trip.DepartureUTC = t.UTC()
	return b
}

func (b *tripBuilder) arriving(t time.Time) *tripBuilder {
	b.trip.ArrivalLocal = t
	b.trip.ArrivalUTC = t.UTC()
	return b
}

func (b *tripBuilder) distance(km float64) *tripBuilder {
	b.trip.DistanceKm = &km
	return b
}

func (b *tripBuilder) lasting(d time.Duration) *tripBuilder {
	b.trip.Duration = &d
	return b
}

func (b *tripBuilder) pricing(price, reimbursement float64) *tripBuilder {
	b.trip.Price = &price
	b.trip.Reimbursement = &reimbursement
	return b
}

func (b *tripBuilder) build() trips.Trip { return b.trip }
