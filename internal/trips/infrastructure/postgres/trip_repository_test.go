package postgres

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	trips "github.com/Nosudrum/train-stats/internal/trips/domain"
)

func TestTripRepositoryRoundTrip_Postgres(t *testing.T) {
	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		t.Skip("PG_DSN not set")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	repo := NewTripRepository(db, WithTripsTable("trips_it"))
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	t.Cleanup(func() {
		_, _ = db.ExecContext(ctx, "DROP TABLE IF EXISTS trips_it")
	})

	zone, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}
	duration := 4*time.Hour + 5*time.Minute
	distance := 490.0
	price := 105.0
	dep := time.Date(2023, 7, 10, 8, 0, 0, 0, zone)
	arr := dep.Add(duration)
	in := []trips.Trip{{
		Journey:        "ParisGareDeLyon-ZürichHB",
		Origin:         "Paris Gare de Lyon",
		Destination:    "Zürich HB",
		DepartureLocal: dep,
		ArrivalLocal:   arr,
		DepartureUTC:   dep.UTC(),
		ArrivalUTC:     arr.UTC(),
		Duration:       &duration,
		DistanceKm:     &distance,
		Price:          &price,
		Operator:       "TGV Lyria",
		Class:          2,
		DayOfYear:      192,
	}}

	if err := repo.ReplaceAll(ctx, in); err != nil {
		t.Fatalf("replace all: %v", err)
	}
	out, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 trip, got %d", len(out))
	}
	got := out[0]
	if got.Journey != in[0].Journey || got.Operator != "TGV Lyria" {
		t.Fatalf("unexpected trip: %+v", got)
	}
	if !got.DepartureUTC.Equal(in[0].DepartureUTC) {
		t.Fatalf("departure mismatch: %v vs %v", got.DepartureUTC, in[0].DepartureUTC)
	}
	if got.DepartureLocal.Hour() != 8 {
		t.Fatalf("local wall clock not restored: %v", got.DepartureLocal)
	}
	if got.Duration == nil || *got.Duration != duration {
		t.Fatalf("duration mismatch: %v", got.Duration)
	}
	if got.Reimbursement != nil {
		t.Fatalf("expected nil reimbursement, got %v", *got.Reimbursement)
	}

	// ReplaceAll is a full overwrite, not an append.
	if err := repo.ReplaceAll(ctx, in); err != nil {
		t.Fatalf("second replace: %v", err)
	}
	out, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 trip after overwrite, got %d", len(out))
	}
}
