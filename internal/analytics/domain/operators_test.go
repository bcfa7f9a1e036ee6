package analytics

import (
	"fmt"
	"testing"
	"time"

	trips "github.com/Nosudrum/train-stats/internal/trips/domain"
)

func TestSelectTopOperatorsKeepsSevenPlusOthers(t *testing.T) {
	var list []trips.Trip
	for i := 0; i < 9; i++ {
		name := fmt.Sprintf("Operator-%d", i)
		// Operator-0 gets the most trips, Operator-8 the fewest.
		for j := 0; j < 9-i; j++ {
			list = append(list, newTrip("A-B", name).build())
		}
	}

	selected := SelectTopOperators(list, nil, MetricTripCount)
	if len(selected) != 8 {
		t.Fatalf("expected 7 operators plus Others, got %d: %v", len(selected), selected)
	}
	if selected[0] != "Operator-0" || selected[6] != "Operator-6" {
		t.Fatalf("unexpected ranking: %v", selected)
	}
	if selected[7] != OthersLabel {
		t.Fatalf("expected the Others bucket last, got %v", selected)
	}

	if got := RelabelOperator("Operator-8", selected); got != OthersLabel {
		t.Fatalf("expected Operator-8 relabeled to Others, got %q", got)
	}
	if got := RelabelOperator("Operator-3", selected); got != "Operator-3" {
		t.Fatalf("expected a selected operator to keep its label, got %q", got)
	}
}

func TestSelectTopOperatorsRankingDiffersPerMetric(t *testing.T) {
	list := []trips.Trip{
		newTrip("A-B", "ManyShort").distance(10).build(),
		newTrip("A-B", "ManyShort").distance(10).build(),
		newTrip("A-B", "ManyShort").distance(10).build(),
		newTrip("C-D", "OneLong").distance(1000).build(),
	}
	byCount := SelectTopOperators(list, nil, MetricTripCount)
	if byCount[0] != "ManyShort" {
		t.Fatalf("count ranking: expected ManyShort first, got %v", byCount)
	}
	byDistance := SelectTopOperators(list, nil, MetricDistance)
	if byDistance[0] != "OneLong" {
		t.Fatalf("distance ranking: expected OneLong first, got %v", byDistance)
	}
}

func TestSelectTopOperatorsNetSpendUsesExtraSpending(t *testing.T) {
	list := []trips.Trip{
		newTrip("A-B", "SNCF").pricing(100, 0).build(),
		newTrip("B-A", "SNCF").pricing(100, 0).build(),
		newTrip("C-D", "SBB").pricing(10, 0).build(),
	}
	extra := map[string]map[int]float64{"SBB": {2022: 2000, 2023: 1995}}

	byCount := SelectTopOperators(list, extra, MetricTripCount)
	if byCount[0] != "SNCF" {
		t.Fatalf("pass spending must not affect the count ranking, got %v", byCount)
	}
	bySpend := SelectTopOperators(list, extra, MetricNetSpend)
	if bySpend[0] != "SBB" {
		t.Fatalf("net-spend ranking must include pass spending, got %v", bySpend)
	}
}

func TestSelectTopOperatorsTieBreaksByName(t *testing.T) {
	list := []trips.Trip{
		newTrip("A-B", "Zeta").build(),
		newTrip("A-B", "Alpha").build(),
	}
	selected := SelectTopOperators(list, nil, MetricTripCount)
	if selected[0] != "Alpha" || selected[1] != "Zeta" {
		t.Fatalf("expected name tie-break, got %v", selected)
	}
}

func TestOperatorYearRollupNetSpend(t *testing.T) {
	dep2022 := time.Date(2022, 6, 1, 8, 0, 0, 0, time.UTC)
	list := []trips.Trip{
		newTrip("A-B", "SNCF").departing(dep2022).pricing(100, 20).build(),
		newTrip("A-B", "SNCF").pricing(50, 0).build(), // departs 2023
	}
	extra := map[string]map[int]float64{"SBB": {2022: 300}}

	selected, amounts := OperatorYearRollup(list, extra, MetricNetSpend)
	if amounts["SNCF"][2022] != 80 {
		t.Fatalf("expected reimbursement subtracted, got %f", amounts["SNCF"][2022])
	}
	if amounts["SNCF"][2023] != 50 {
		t.Fatalf("unexpected 2023 amount: %f", amounts["SNCF"][2023])
	}
	if amounts["SBB"][2022] != 300 {
		t.Fatalf("expected prorated pass spending in the rollup, got %f", amounts["SBB"][2022])
	}
	if selected[len(selected)-1] != OthersLabel {
		t.Fatalf("expected Others appended to the selection, got %v", selected)
	}
}

func TestParseMetric(t *testing.T) {
	for name, want := range map[string]Metric{
		"":         MetricTripCount,
		"count":    MetricTripCount,
		"distance": MetricDistance,
		"duration": MetricDuration,
		"spend":    MetricNetSpend,
	} {
		got, ok := ParseMetric(name)
		if !ok || got != want {
			t.Errorf("ParseMetric(%q): expected %v, got %v ok=%v", name, want, got, ok)
		}
	}
	if _, ok := ParseMetric("bogus"); ok {
		t.Fatal("expected ParseMetric to reject an unknown name")
	}
}
