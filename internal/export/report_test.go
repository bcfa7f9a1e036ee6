package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	analytics "github.com/Nosudrum/train-stats/internal/analytics/domain"
)

func testReport() Report {
	return Report{
		GeneratedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Stats:       analytics.TravelStats{TotalDistanceKm: 500, TotalDuration: 10 * time.Hour},
		Journeys: []analytics.JourneyStats{
			{Journey: "Paris-Zurich", Count: 4, MeanDistanceKm: 490, FirstDate: time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC)},
		},
		Operators: []string{"SBB", "Others"},
		NetSpend: map[string]map[int]float64{
			"SBB": {2022: 150.5, 2023: 99},
		},
	}
}

func TestBuildWorkbook(t *testing.T) {
	payload, err := BuildWorkbook(testReport())
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	distance, err := f.GetCellValue("summary", "B4")
	if err != nil {
		t.Fatalf("get cell: %v", err)
	}
	if distance != "500 km (311 mi)" {
		t.Fatalf("unexpected distance cell: %q", distance)
	}

	journey, err := f.GetCellValue("journeys", "A2")
	if err != nil {
		t.Fatalf("get cell: %v", err)
	}
	if journey != "Paris-Zurich" {
		t.Fatalf("unexpected journey cell: %q", journey)
	}

	operator, err := f.GetCellValue("spending", "A2")
	if err != nil {
		t.Fatalf("get cell: %v", err)
	}
	if operator != "SBB" {
		t.Fatalf("unexpected spending cell: %q", operator)
	}
}

func TestBuildSummaryPDF(t *testing.T) {
	payload, err := BuildSummaryPDF(testReport())
	if err != nil {
		t.Fatalf("build pdf: %v", err)
	}
	if !bytes.HasPrefix(payload, []byte("%PDF")) {
		t.Fatalf("expected a PDF header, got %q", payload[:8])
	}
}
