package spending

import (
	"fmt"
	"time"
)

// Record is a purchased pass or ticket with a validity window spanning
// one to three calendar years.
type Record struct {
	Ticket       string
	PurchaseDate time.Time
	ValidFrom    time.Time
	ValidTo      time.Time
	Operator     string
	Price        float64
}

// YearShare is the part of a record's price attributed to one calendar year.
type YearShare struct {
	Year     int
	Operator string
	Amount   float64
}

// Allocate prorates a record's price across the calendar years its
// validity window covers. Shares are proportional to the day count the
// window occupies in each year; the remainder goes to the last (or for
// 3-year windows, the middle) year so the shares sum to the exact price.
func Allocate(rec Record) ([]YearShare, error) {
	if rec.ValidTo.Before(rec.ValidFrom) {
		return nil, fmt.Errorf("%w: %s", ErrInvertedWindow, rec.Ticket)
	}

	startYear := rec.ValidFrom.Year()
	endYear := rec.ValidTo.Year()

	switch endYear - startYear {
	case 0:
		return []YearShare{{Year: startYear, Operator: rec.Operator, Amount: rec.Price}}, nil
	case 1:
		totalDays := daysBetween(rec.ValidFrom, rec.ValidTo)
		firstYearDays := daysBetween(rec.ValidFrom, endOfYear(startYear))
		first := rec.Price * float64(firstYearDays) / float64(totalDays)
		return []YearShare{
			{Year: startYear, Operator: rec.Operator, Amount: first},
			{Year: endYear, Operator: rec.Operator, Amount: rec.Price - first},
		}, nil
	case 2:
		totalDays := daysBetween(rec.ValidFrom, rec.ValidTo)
		firstYearDays := daysBetween(rec.ValidFrom, endOfYear(startYear))
		lastYearDays := daysBetween(startOfYear(endYear), rec.ValidTo)
		first := rec.Price * float64(firstYearDays) / float64(totalDays)
		last := rec.Price * float64(lastYearDays) / float64(totalDays)
		return []YearShare{
			{Year: startYear, Operator: rec.Operator, Amount: first},
			{Year: startYear + 1, Operator: rec.Operator, Amount: rec.Price - first - last},
			{Year: endYear, Operator: rec.Operator, Amount: last},
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrSpendingWindowTooLong, rec.Ticket)
	}
}

// AllocateAll prorates every record, aborting on the first failure.
func AllocateAll(records []Record) ([]YearShare, error) {
	var shares []YearShare
	for _, rec := range records {
		recShares, err := Allocate(rec)
		if err != nil {
			return nil, err
		}
		shares = append(shares, recShares...)
	}
	return shares, nil
}

// AmountByOperatorYear sums shares into an operator → year → amount map.
func AmountByOperatorYear(shares []YearShare) map[string]map[int]float64 {
	out := make(map[string]map[int]float64)
	for _, share := range shares {
		years := out[share.Operator]
		if years == nil {
			years = make(map[int]float64)
			out[share.Operator] = years
		}
		years[share.Year] += share.Amount
	}
	return out
}

// daysBetween counts calendar days from a to b, ignoring clock time.
func daysBetween(a, b time.Time) int {
	return int(dateOnly(b).Sub(dateOnly(a)).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfYear(year int) time.Time {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

func startOfYear(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}
