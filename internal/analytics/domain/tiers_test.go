package analytics

import (
	"testing"
	"time"

	trips "github.com/Nosudrum/train-stats/internal/trips/domain"
)

func TestTierBoundariesAreHalfOpen(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want int
	}{
		{0, 0},
		{119 * time.Minute, 0},
		{2 * time.Hour, 1}, // exactly 2h belongs to the next tier
		{3*time.Hour + 59*time.Minute, 1},
		{13 * time.Hour, 6},
		{14 * time.Hour, 7},
		{40 * time.Hour, 7}, // last tier is unbounded
	}
	for _, tc := range cases {
		if got := TierIndex(tc.d); got != tc.want {
			t.Errorf("TierIndex(%v): expected %d, got %d", tc.d, tc.want, got)
		}
	}
}

func TestTierYearRollup(t *testing.T) {
	dep2022 := time.Date(2022, 6, 1, 8, 0, 0, 0, time.UTC)
	list := []trips.Trip{
		newTrip("A-B", "SNCF").lasting(90 * time.Minute).build(),
		newTrip("A-B", "SNCF").lasting(100 * time.Minute).departing(dep2022).build(),
		newTrip("C-D", "SBB").lasting(5 * time.Hour).distance(600).build(),
		newTrip("E-F", "DB").build(), // no duration, excluded
	}

	byCount := TierYearRollup(list, MetricTripCount)
	if byCount[0][2023] != 1 || byCount[0][2022] != 1 {
		t.Fatalf("unexpected first tier: %v", byCount[0])
	}
	if byCount[2][2023] != 1 {
		t.Fatalf("unexpected 4h-6h tier: %v", byCount[2])
	}
	total := 0.0
	for _, years := range byCount {
		for _, n := range years {
			total += n
		}
	}
	if total != 3 {
		t.Fatalf("expected 3 tiered trips, got %f", total)
	}

	byDistance := TierYearRollup(list, MetricDistance)
	if byDistance[2][2023] != 600 {
		t.Fatalf("unexpected distance rollup: %v", byDistance)
	}
}
