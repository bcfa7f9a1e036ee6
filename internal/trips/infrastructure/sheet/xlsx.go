package sheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	trips "github.com/Nosudrum/train-stats/internal/trips/domain"
)

// ReadXLSXFile loads raw trip rows from the first sheet of a workbook.
func ReadXLSXFile(path string) ([]trips.RawTrip, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("trip sheet: open %s: %w", path, err)
	}
	defer f.Close()
	return readWorkbook(f)
}

// ReadXLSX loads raw trip rows from a workbook stream.
func ReadXLSX(r io.Reader) ([]trips.RawTrip, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("trip sheet: open workbook: %w", err)
	}
	defer f.Close()
	return readWorkbook(f)
}

func readWorkbook(f *excelize.File) ([]trips.RawTrip, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("trip sheet: workbook has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("trip sheet: read sheet %s: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("trip sheet: sheet %s is empty", sheets[0])
	}

	index, err := indexColumns(records[0])
	if err != nil {
		return nil, err
	}

	var rows []trips.RawTrip
	for i, record := range records[1:] {
		if i == 0 {
			// units row
			continue
		}
		rows = append(rows, index.rawTrip(record))
	}
	return rows, nil
}
