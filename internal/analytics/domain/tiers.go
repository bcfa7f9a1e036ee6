package analytics

import (
	"time"

	trips "github.com/Nosudrum/train-stats/internal/trips/domain"
)

// DurationTier is one half-open [MinHours, MaxHours) duration bucket.
// The last tier is unbounded.
type DurationTier struct {
	MinHours int
	MaxHours int
	Label    string
}

// DurationTiers are the fixed buckets used by the stacked charts.
var DurationTiers = []DurationTier{
	{0, 2, "up to 2h"},
	{2, 4, "2h to 4h"},
	{4, 6, "4h to 6h"},
	{6, 8, "6h to 8h"},
	{8, 10, "8h to 10h"},
	{10, 12, "10h to 12h"},
	{12, 14, "12h to 14h"},
	{14, -1, "over 14h"},
}

// Contains reports whether a duration falls into the tier.
func (t DurationTier) Contains(d time.Duration) bool {
	hours := d.Hours()
	if hours < float64(t.MinHours) {
		return false
	}
	return t.MaxHours < 0 || hours < float64(t.MaxHours)
}

// TierIndex locates the tier for a duration. It always matches: the last
// tier is open-ended.
func TierIndex(d time.Duration) int {
	for i, tier := range DurationTiers {
		if tier.Contains(d) {
			return i
		}
	}
	return len(DurationTiers) - 1
}

// TierYearRollup sums a metric per (duration tier, departure year).
// Trips without a duration are excluded; in distance mode trips without
// a distance contribute nothing.
func TierYearRollup(list []trips.Trip, metric Metric) map[int]map[int]float64 {
	out := make(map[int]map[int]float64, len(DurationTiers))
	for _, trip := range list {
		if trip.Duration == nil {
			continue
		}
		tier := TierIndex(*trip.Duration)
		years := out[tier]
		if years == nil {
			years = make(map[int]float64)
			out[tier] = years
		}
		years[trip.DepartureUTC.Year()] += tripMetricValue(trip, metric)
	}
	return out
}
