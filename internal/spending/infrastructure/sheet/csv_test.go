package sheet

import (
	"errors"
	"strings"
	"testing"
	"time"

	spending "github.com/Nosudrum/train-stats/internal/spending/domain"
)

const spendingFixture = `Purchase date,Valid date (start),Valid date (end),Operator,Price,Ticket
,date,date,,EUR,
2022-06-15,2022-07-01,2023-06-30,SBB,3 995 €,ga-2022
,2023-03-01,2023-12-15,SNCF,49,carte-avantage
`

func TestReadCSV(t *testing.T) {
	records, err := ReadCSV(strings.NewReader(spendingFixture))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records (units row skipped), got %d", len(records))
	}

	first := records[0]
	if first.Ticket != "ga-2022" || first.Operator != "SBB" {
		t.Fatalf("unexpected record: %+v", first)
	}
	if first.Price != 3995 {
		t.Fatalf("expected price 3995, got %f", first.Price)
	}
	if !first.ValidFrom.Equal(time.Date(2022, 7, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected valid-from: %v", first.ValidFrom)
	}
	if !first.PurchaseDate.Equal(time.Date(2022, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected purchase date: %v", first.PurchaseDate)
	}
	if !records[1].PurchaseDate.IsZero() {
		t.Fatalf("expected zero purchase date when absent, got %v", records[1].PurchaseDate)
	}
}

func TestReadCSVMissingPrice(t *testing.T) {
	input := `Purchase date,Valid date (start),Valid date (end),Operator,Price,Ticket
,date,date,,EUR,
,2023-03-01,2023-12-15,SNCF,,no-price-pass
`
	_, err := ReadCSV(strings.NewReader(input))
	if !errors.Is(err, spending.ErrMissingRequiredField) {
		t.Fatalf("expected ErrMissingRequiredField, got %v", err)
	}
	if !strings.Contains(err.Error(), "no-price-pass") {
		t.Fatalf("expected the ticket name in the error, got %q", err)
	}
}

func TestReadCSVMissingColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("Operator,Price\nSNCF,49"))
	if err == nil {
		t.Fatal("expected an error for missing columns")
	}
}
