package trips

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	stations "github.com/Nosudrum/train-stats/internal/stations/domain"
)

// ErrNilDirectory is returned when the normalizer is built without a directory.
var ErrNilDirectory = errors.New("trips: nil station directory")

// timestampLayouts are tried in order when parsing sheet timestamps.
var timestampLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Normalizer turns raw sheet rows into timezone-correct trips.
type Normalizer struct {
	directory *stations.Directory
}

// NewNormalizer constructs a Normalizer over an immutable station directory.
func NewNormalizer(directory *stations.Directory) (*Normalizer, error) {
	if directory == nil {
		return nil, ErrNilDirectory
	}
	return &Normalizer{directory: directory}, nil
}

// Normalize converts raw rows into trips. Rows without a departure time
// are dropped. An unresolvable origin or destination station aborts the
// whole pass; there is no partial-success mode.
func (n *Normalizer) Normalize(rows []RawTrip) ([]Trip, error) {
	out := make([]Trip, 0, len(rows))
	for i, row := range rows {
		if strings.TrimSpace(row.Departure) == "" {
			continue
		}

		originZone, err := n.directory.Resolve(row.Origin)
		if err != nil {
			return nil, err
		}
		destinationZone, err := n.directory.Resolve(row.Destination)
		if err != nil {
			return nil, err
		}

		departure, err := parseLocalTimestamp(row.Departure, originZone)
		if err != nil {
			return nil, fmt.Errorf("trips: row %d departure: %w", i, err)
		}
		// An arrival can be absent (a logged future leg); it becomes a
		// zero-length leg, which the aggregations ignore.
		arrival := departure
		if strings.TrimSpace(row.Arrival) != "" {
			arrival, err = parseLocalTimestamp(row.Arrival, destinationZone)
			if err != nil {
				return nil, fmt.Errorf("trips: row %d arrival: %w", i, err)
			}
		}

		trip := Trip{
			Journey:        cleanText(row.Journey),
			Origin:         cleanText(row.Origin),
			Destination:    cleanText(row.Destination),
			DepartureLocal: departure,
			ArrivalLocal:   arrival,
			DepartureUTC:   departure.UTC(),
			ArrivalUTC:     arrival.UTC(),
			Duration:       parseDuration(row.Duration),
			DistanceKm:     parseFloat(row.DistanceKm),
			Price:          parsePrice(row.Price),
			Reimbursement:  parsePrice(row.Reimbursement),
			Operator:       cleanText(row.Operator),
			Class:          parseClass(row.Class),
			CardID:         cleanText(row.Card),
			DayOfYear:      AlignedDayOfYear(departure),
		}
		out = append(out, trip)
	}
	return out, nil
}

// AlignedDayOfYear returns the 1-indexed day of year, shifted by one from
// March 1 onward in non-leap years so the 366-slot calendar grid keeps
// leap-year month boundaries.
func AlignedDayOfYear(t time.Time) int {
	day := t.YearDay()
	if !isLeapYear(t.Year()) && day >= 60 {
		day++
	}
	return day
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func parseLocalTimestamp(value string, zone *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, zone); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", value)
}

// parseDuration reads an "H:MM" span. Malformed or absent values are nil.
func parseDuration(value string) *time.Duration {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return nil
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil
	}
	d := time.Duration(hours*60+minutes) * time.Minute
	return &d
}

// parsePrice strips currency symbols and parses the remainder.
func parsePrice(value string) *float64 {
	value = strings.NewReplacer("€", "", "$", "", "£", "", " ", "", " ", "", ",", ".").Replace(value)
	return parseFloat(value)
}

func parseFloat(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseClass(value string) int {
	class, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return class
}

// cleanText collapses non-breaking spaces and disambiguates the one
// slash-containing station name that would otherwise collide with
// path-like journey keys.
func cleanText(value string) string {
	value = strings.ReplaceAll(value, " ", " ")
	value = strings.ReplaceAll(value, "Biel/Bienne", "BielBienne")
	return value
}
