package export

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	analytics "github.com/Nosudrum/train-stats/internal/analytics/domain"
	spending "github.com/Nosudrum/train-stats/internal/spending/domain"
)

// Report bundles the derived tables a rendering run consumes.
type Report struct {
	GeneratedAt time.Time
	Stats       analytics.TravelStats
	Journeys    []analytics.JourneyStats
	Operators   []string
	NetSpend    map[string]map[int]float64
	Shares      []spending.YearShare
}

// BuildWorkbook renders the report as an XLSX workbook with one sheet
// per derived table.
func BuildWorkbook(report Report) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	journeysSheet := "journeys"
	spendSheet := "spending"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(journeysSheet); err != nil {
		return nil, fmt.Errorf("export: new sheet: %w", err)
	}
	if _, err := f.NewSheet(spendSheet); err != nil {
		return nil, fmt.Errorf("export: new sheet: %w", err)
	}

	distance, duration := StatsStrings(report.Stats)
	_ = f.SetCellValue(summarySheet, "A1", "Train travel statistics")
	_ = f.SetCellValue(summarySheet, "A3", "Generated")
	_ = f.SetCellValue(summarySheet, "B3", report.GeneratedAt.Format(time.RFC3339))
	_ = f.SetCellValue(summarySheet, "A4", "Distance")
	_ = f.SetCellValue(summarySheet, "B4", distance)
	_ = f.SetCellValue(summarySheet, "A5", "Duration")
	_ = f.SetCellValue(summarySheet, "B5", duration)
	_ = f.SetCellValue(summarySheet, "A6", "Journeys")
	_ = f.SetCellValue(summarySheet, "B6", len(report.Journeys))

	_ = f.SetCellValue(journeysSheet, "A1", "Journey")
	_ = f.SetCellValue(journeysSheet, "B1", "Trips")
	_ = f.SetCellValue(journeysSheet, "C1", "Mean distance (km)")
	_ = f.SetCellValue(journeysSheet, "D1", "First date")
	for i, journey := range report.Journeys {
		row := i + 2
		_ = f.SetCellValue(journeysSheet, fmt.Sprintf("A%d", row), journey.Journey)
		_ = f.SetCellValue(journeysSheet, fmt.Sprintf("B%d", row), journey.Count)
		_ = f.SetCellValue(journeysSheet, fmt.Sprintf("C%d", row), journey.MeanDistanceKm)
		_ = f.SetCellValue(journeysSheet, fmt.Sprintf("D%d", row), journey.FirstDate.Format("2006-01-02"))
	}

	_ = f.SetCellValue(spendSheet, "A1", "Operator")
	_ = f.SetCellValue(spendSheet, "B1", "Year")
	_ = f.SetCellValue(spendSheet, "C1", "Net spend")
	row := 2
	for _, operator := range report.Operators {
		years := sortedYears(report.NetSpend[operator])
		for _, year := range years {
			_ = f.SetCellValue(spendSheet, fmt.Sprintf("A%d", row), operator)
			_ = f.SetCellValue(spendSheet, fmt.Sprintf("B%d", row), year)
			_ = f.SetCellValue(spendSheet, fmt.Sprintf("C%d", row), report.NetSpend[operator][year])
			row++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("export: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildSummaryPDF renders a one-page travel summary.
func BuildSummaryPDF(report Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Train travel statistics")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format(time.RFC3339)))
	pdf.Ln(5)

	distance, duration := StatsStrings(report.Stats)
	pdf.Cell(0, 6, fmt.Sprintf("Distance travelled: %s", distance))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Time on board: %s", duration))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(80, 6, "Journey", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, "Trips", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Mean km", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "First date", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, journey := range report.Journeys {
		pdf.CellFormat(80, 6, journey.Journey, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", journey.Count), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.0f", journey.MeanDistanceKm), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, journey.FirstDate.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("export: write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func sortedYears(amounts map[int]float64) []int {
	years := make([]int, 0, len(amounts))
	for year := range amounts {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}
