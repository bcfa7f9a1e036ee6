package trips

import "time"

// RawTrip is one spreadsheet row before normalization. All fields are
// strings as found in the sheet; empty means absent.
type RawTrip struct {
	Journey       string
	Origin        string
	Destination   string
	Departure     string
	Arrival       string
	Duration      string
	Price         string
	Reimbursement string
	Operator      string
	Class         string
	Card          string
	DistanceKm    string
}

// Trip is one normalized journey leg. Local times keep the wall clock of
// the resolving station's zone; UTC times are the storage instants.
// Trips are immutable after normalization.
type Trip struct {
	Journey        string
	Origin         string
	Destination    string
	DepartureLocal time.Time
	ArrivalLocal   time.Time
	DepartureUTC   time.Time
	ArrivalUTC     time.Time
	Duration       *time.Duration
	DistanceKm     *float64
	Price          *float64
	Reimbursement  *float64
	Operator       string
	Class          int
	CardID         string
	DayOfYear      int
}

// Clone returns a deep copy, including the nullable fields.
func (t Trip) Clone() Trip {
	out := t
	out.Duration = cloneDuration(t.Duration)
	out.DistanceKm = cloneFloat(t.DistanceKm)
	out.Price = cloneFloat(t.Price)
	out.Reimbursement = cloneFloat(t.Reimbursement)
	return out
}

// CloneAll deep-copies a trip slice.
func CloneAll(in []Trip) []Trip {
	out := make([]Trip, len(in))
	for i, trip := range in {
		out[i] = trip.Clone()
	}
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneDuration(v *time.Duration) *time.Duration {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
