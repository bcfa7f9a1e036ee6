package analytics

import (
	"sort"

	trips "github.com/Nosudrum/train-stats/internal/trips/domain"
)

// OthersLabel is the synthetic bucket for operators outside the top ranks.
const OthersLabel = "Others"

// topOperatorCount is how many operators keep their own label per chart.
const topOperatorCount = 7

// Metric selects how operators are ranked and what an operator/year
// rollup accumulates.
type Metric int

const (
	// MetricTripCount ranks by number of trips.
	MetricTripCount Metric = iota
	// MetricDistance ranks by total distance travelled.
	MetricDistance
	// MetricDuration ranks by total time on board.
	MetricDuration
	// MetricNetSpend ranks by ticket price minus reimbursement plus
	// prorated pass spending.
	MetricNetSpend
)

// String names the metric for API responses.
func (m Metric) String() string {
	switch m {
	case MetricTripCount:
		return "count"
	case MetricDistance:
		return "distance"
	case MetricDuration:
		return "duration"
	case MetricNetSpend:
		return "spend"
	default:
		return "unknown"
	}
}

// ParseMetric resolves a metric name, defaulting to trip count.
func ParseMetric(name string) (Metric, bool) {
	switch name {
	case "count", "":
		return MetricTripCount, true
	case "distance":
		return MetricDistance, true
	case "duration":
		return MetricDuration, true
	case "spend":
		return MetricNetSpend, true
	default:
		return MetricTripCount, false
	}
}

func tripMetricValue(trip trips.Trip, metric Metric) float64 {
	switch metric {
	case MetricTripCount:
		return 1
	case MetricDistance:
		if trip.DistanceKm == nil {
			return 0
		}
		return *trip.DistanceKm
	case MetricDuration:
		if trip.Duration == nil {
			return 0
		}
		return trip.Duration.Hours()
	case MetricNetSpend:
		var amount float64
		if trip.Price != nil {
			amount += *trip.Price
		}
		if trip.Reimbursement != nil {
			amount -= *trip.Reimbursement
		}
		return amount
	default:
		return 0
	}
}

// SelectTopOperators ranks operators by the given metric and keeps the
// top seven, appending the Others bucket. The ranking is recomputed per
// metric; ties are broken by operator name so the selection is
// deterministic. extraSpend (prorated pass spending per operator/year)
// only participates in the net-spend ranking.
func SelectTopOperators(list []trips.Trip, extraSpend map[string]map[int]float64, metric Metric) []string {
	totals := make(map[string]float64)
	for _, trip := range list {
		totals[trip.Operator] += tripMetricValue(trip, metric)
	}
	if metric == MetricNetSpend {
		for operator, years := range extraSpend {
			for _, amount := range years {
				totals[operator] += amount
			}
		}
	}

	operators := make([]string, 0, len(totals))
	for operator := range totals {
		operators = append(operators, operator)
	}
	sort.Slice(operators, func(i, j int) bool {
		if totals[operators[i]] != totals[operators[j]] {
			return totals[operators[i]] > totals[operators[j]]
		}
		return operators[i] < operators[j]
	})

	if len(operators) > topOperatorCount {
		operators = operators[:topOperatorCount]
	}
	return append(operators, OthersLabel)
}

// RelabelOperator maps an operator outside the selected set to Others.
func RelabelOperator(operator string, selected []string) string {
	for _, name := range selected {
		if name == operator {
			return operator
		}
	}
	return OthersLabel
}

// OperatorYearRollup buckets trips (and, for net spend, prorated pass
// spending) into selected-operator/year sums for the given metric.
// It returns the selection alongside the amounts.
func OperatorYearRollup(list []trips.Trip, extraSpend map[string]map[int]float64, metric Metric) ([]string, map[string]map[int]float64) {
	selected := SelectTopOperators(list, extraSpend, metric)

	amounts := make(map[string]map[int]float64, len(selected))
	add := func(operator string, year int, amount float64) {
		label := RelabelOperator(operator, selected)
		years := amounts[label]
		if years == nil {
			years = make(map[int]float64)
			amounts[label] = years
		}
		years[year] += amount
	}

	for _, trip := range list {
		add(trip.Operator, trip.DepartureUTC.Year(), tripMetricValue(trip, metric))
	}
	if metric == MetricNetSpend {
		for operator, years := range extraSpend {
			for year, amount := range years {
				add(operator, year, amount)
			}
		}
	}
	return selected, amounts
}
