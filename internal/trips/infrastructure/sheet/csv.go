package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	trips "github.com/Nosudrum/train-stats/internal/trips/domain"
)

// ReadCSVFile loads raw trip rows from a comma-separated trip log.
func ReadCSVFile(path string) ([]trips.RawTrip, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trip sheet: open %s: %w", path, err)
	}
	defer file.Close()
	return ReadCSV(file)
}

// ReadCSV parses a trip log: a header row, a units row (skipped), then
// one row per trip.
func ReadCSV(r io.Reader) ([]trips.RawTrip, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("trip sheet: read header: %w", err)
	}
	index, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var rows []trips.RawTrip
	first := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("trip sheet: read row: %w", err)
		}
		if first {
			// units row
			first = false
			continue
		}
		rows = append(rows, index.rawTrip(record))
	}
	return rows, nil
}
