package sheet

import (
	"fmt"

	trips "github.com/Nosudrum/train-stats/internal/trips/domain"
)

// Column names of the trip log sheet. The first data row under the
// header carries units and is skipped.
const (
	colJourney       = "Alphabetical trip"
	colOrigin        = "Origin"
	colDestination   = "Destination"
	colDeparture     = "Departure (Local)"
	colArrival       = "Arrival (Local)"
	colDuration      = "Duration"
	colPrice         = "Price"
	colReimbursement = "Reimb"
	colOperator      = "Operator"
	colClass         = "Class"
	colCard          = "Card"
	colDistance      = "Distance (km)"
)

var requiredColumns = []string{colJourney, colOrigin, colDestination, colDeparture, colArrival}

type columnIndex map[string]int

func indexColumns(header []string) (columnIndex, error) {
	index := make(columnIndex, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("trip sheet: missing column %q", name)
		}
	}
	return index, nil
}

func (c columnIndex) cell(record []string, column string) string {
	i, ok := c[column]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func (c columnIndex) rawTrip(record []string) trips.RawTrip {
	return trips.RawTrip{
		Journey:       c.cell(record, colJourney),
		Origin:        c.cell(record, colOrigin),
		Destination:   c.cell(record, colDestination),
		Departure:     c.cell(record, colDeparture),
		Arrival:       c.cell(record, colArrival),
		Duration:      c.cell(record, colDuration),
		Price:         c.cell(record, colPrice),
		Reimbursement: c.cell(record, colReimbursement),
		Operator:      c.cell(record, colOperator),
		Class:         c.cell(record, colClass),
		Card:          c.cell(record, colCard),
		DistanceKm:    c.cell(record, colDistance),
	}
}
