package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	stations "github.com/Nosudrum/train-stats/internal/stations/domain"
)

// LoadStandard reads the semicolon-separated standard station table.
func LoadStandard(path string) ([]stations.Station, error) {
	return loadTable(path, ';')
}

// LoadCustom reads the comma-separated custom override table.
func LoadCustom(path string) ([]stations.Station, error) {
	return loadTable(path, ',')
}

func loadTable(path string, comma rune) ([]stations.Station, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("stations csv: open %s: %w", path, err)
	}
	defer file.Close()
	return Parse(file, comma)
}

// Parse reads a station table with a header row. The name and time_zone
// columns are required; latitude/longitude are optional.
func Parse(r io.Reader, comma rune) ([]stations.Station, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("stations csv: read header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	nameCol, ok := columns["name"]
	if !ok {
		return nil, errors.New("stations csv: missing name column")
	}
	tzCol, ok := columns["time_zone"]
	if !ok {
		return nil, errors.New("stations csv: missing time_zone column")
	}
	latCol, hasLat := columns["latitude"]
	lonCol, hasLon := columns["longitude"]

	var table []stations.Station
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("stations csv: read row: %w", err)
		}
		if nameCol >= len(record) || tzCol >= len(record) {
			continue
		}
		station := stations.Station{
			Name:     record[nameCol],
			Timezone: record[tzCol],
		}
		if station.Name == "" || station.Timezone == "" {
			// The standard table carries rows without a timezone; they
			// cannot resolve anything, so they are not loaded.
			continue
		}
		if hasLat && hasLon && latCol < len(record) && lonCol < len(record) {
			lat, latErr := strconv.ParseFloat(record[latCol], 64)
			lon, lonErr := strconv.ParseFloat(record[lonCol], 64)
			if latErr == nil && lonErr == nil {
				station.Lat = lat
				station.Lon = lon
				station.HasCoord = true
			}
		}
		table = append(table, station)
	}
	return table, nil
}
