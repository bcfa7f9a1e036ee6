package export

import (
	"testing"
	"time"

	analytics "github.com/Nosudrum/train-stats/internal/analytics/domain"
)

func TestFormatKm(t *testing.T) {
	cases := []struct {
		km   float64
		want string
	}{
		{12345, "12 345 km (7 671 mi)"},
		{500, "500 km (311 mi)"},
		{0, "0 km (0 mi)"},
		{1000000, "1 000 000 km (621 371 mi)"},
	}
	for _, tc := range cases {
		if got := FormatKm(tc.km); got != tc.want {
			t.Errorf("FormatKm(%f): expected %q, got %q", tc.km, tc.want, got)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{49*time.Hour + 5*time.Minute, "2 days 1 hour 5 minutes"},
		{2 * time.Hour, "2 hours"},
		{time.Minute, "1 minute"},
		{24 * time.Hour, "1 day"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.d); got != tc.want {
			t.Errorf("FormatDuration(%v): expected %q, got %q", tc.d, tc.want, got)
		}
	}
}

func TestStatsStringsFinishedWindow(t *testing.T) {
	distance, duration := StatsStrings(analytics.TravelStats{
		TotalDistanceKm: 500,
		TotalDuration:   3 * time.Hour,
	})
	if distance != "500 km (311 mi)" {
		t.Fatalf("unexpected distance line: %q", distance)
	}
	if duration != "3 hours" {
		t.Fatalf("unexpected duration line: %q", duration)
	}
}

func TestStatsStringsOngoingWindow(t *testing.T) {
	distance, duration := StatsStrings(analytics.TravelStats{
		TotalDistanceKm:   500,
		TotalDuration:     10 * time.Hour,
		CurrentDistanceKm: 200,
		CurrentDuration:   4 * time.Hour,
		Ongoing:           true,
	})
	if distance != "200 km (124 mi) out of 500 km (311 mi)" {
		t.Fatalf("unexpected distance line: %q", distance)
	}
	if duration != "4 hours out of 10 hours" {
		t.Fatalf("unexpected duration line: %q", duration)
	}
}
