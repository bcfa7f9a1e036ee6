package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	spending "github.com/Nosudrum/train-stats/internal/spending/domain"
)

const (
	colPurchaseDate = "Purchase date"
	colValidStart   = "Valid date (start)"
	colValidEnd     = "Valid date (end)"
	colOperator     = "Operator"
	colPrice        = "Price"
	colTicket       = "Ticket"
)

const dateLayout = "2006-01-02"

// ReadCSVFile loads additional-spending records from a comma-separated sheet.
func ReadCSVFile(path string) ([]spending.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("spending sheet: open %s: %w", path, err)
	}
	defer file.Close()
	return ReadCSV(file)
}

// ReadCSV parses the additional-spending sheet: a header row, a units
// row (skipped), then one row per purchase.
func ReadCSV(r io.Reader) ([]spending.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("spending sheet: read header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	for _, name := range []string{colValidStart, colValidEnd, colOperator, colPrice, colTicket} {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("spending sheet: missing column %q", name)
		}
	}

	cell := func(record []string, column string) string {
		i, ok := columns[column]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var records []spending.Record
	first := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("spending sheet: read row: %w", err)
		}
		if first {
			first = false
			continue
		}
		ticket := cell(record, colTicket)

		price, err := parsePrice(cell(record, colPrice))
		if err != nil {
			return nil, fmt.Errorf("%w: price of ticket %s", spending.ErrMissingRequiredField, ticket)
		}
		validFrom, err := time.Parse(dateLayout, cell(record, colValidStart))
		if err != nil {
			return nil, fmt.Errorf("spending sheet: ticket %s valid start: %w", ticket, err)
		}
		validTo, err := time.Parse(dateLayout, cell(record, colValidEnd))
		if err != nil {
			return nil, fmt.Errorf("spending sheet: ticket %s valid end: %w", ticket, err)
		}

		rec := spending.Record{
			Ticket:    ticket,
			ValidFrom: validFrom,
			ValidTo:   validTo,
			Operator:  cell(record, colOperator),
			Price:     price,
		}
		if purchased := cell(record, colPurchaseDate); purchased != "" {
			if t, err := time.Parse(dateLayout, purchased); err == nil {
				rec.PurchaseDate = t
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func parsePrice(value string) (float64, error) {
	value = strings.NewReplacer("€", "", " ", "", " ", "").Replace(value)
	if value == "" {
		return 0, errors.New("empty price")
	}
	return strconv.ParseFloat(value, 64)
}
