package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	trips "github.com/Nosudrum/train-stats/internal/trips/domain"
)

// DBTX is the database handle surface the repositories need. Both
// *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const defaultTripsTable = "trips"

// TripRepository is a Postgres sink for normalized trips.
type TripRepository struct {
	db    DBTX
	table string
}

// NewTripRepository constructs a repository.
func NewTripRepository(db DBTX, opts ...TripOption) *TripRepository {
	repo := &TripRepository{db: db, table: defaultTripsTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// TripOption configures the repository.
type TripOption func(*TripRepository)

// WithTripsTable overrides the default table name.
func WithTripsTable(table string) TripOption {
	return func(repo *TripRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// EnsureSchema creates the trips table when it does not exist.
func (r *TripRepository) EnsureSchema(ctx context.Context) error {
	if r == nil || r.db == nil {
		return errors.New("trip repo: nil db")
	}
	query := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    journey         TEXT NOT NULL,
    origin          TEXT NOT NULL,
    destination     TEXT NOT NULL,
    departure_utc   TIMESTAMPTZ NOT NULL,
    arrival_utc     TIMESTAMPTZ NOT NULL,
    departure_tz    TEXT NOT NULL,
    arrival_tz      TEXT NOT NULL,
    duration_min    INTEGER,
    distance_km     DOUBLE PRECISION,
    price           DOUBLE PRECISION,
    reimbursement   DOUBLE PRECISION,
    operator        TEXT NOT NULL,
    class           INTEGER NOT NULL,
    card_id         TEXT,
    day_of_year     INTEGER NOT NULL,
    PRIMARY KEY (journey, departure_utc)
)`, r.table)
	_, err := r.db.ExecContext(ctx, query)
	return err
}

// ReplaceAll overwrites the stored trip set with the given one.
func (r *TripRepository) ReplaceAll(ctx context.Context, all []trips.Trip) error {
	if r == nil || r.db == nil {
		return errors.New("trip repo: nil db")
	}
	if _, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", r.table)); err != nil {
		return fmt.Errorf("trip repo: clear: %w", err)
	}

	query := fmt.Sprintf(`
INSERT INTO %s (journey, origin, destination, departure_utc, arrival_utc, departure_tz, arrival_tz,
    duration_min, distance_km, price, reimbursement, operator, class, card_id, day_of_year)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`, r.table)

	for _, trip := range all {
		if _, err := r.db.ExecContext(ctx, query,
			trip.Journey,
			trip.Origin,
			trip.Destination,
			trip.DepartureUTC,
			trip.ArrivalUTC,
			trip.DepartureLocal.Location().String(),
			trip.ArrivalLocal.Location().String(),
			nullMinutes(trip.Duration),
			nullFloat(trip.DistanceKm),
			nullFloat(trip.Price),
			nullFloat(trip.Reimbursement),
			trip.Operator,
			trip.Class,
			nullString(trip.CardID),
			trip.DayOfYear,
		); err != nil {
			return fmt.Errorf("trip repo: insert %s %s: %w", trip.Journey, trip.DepartureUTC.Format(time.RFC3339), err)
		}
	}
	return nil
}

// List loads all stored trips ordered by departure.
func (r *TripRepository) List(ctx context.Context) ([]trips.Trip, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("trip repo: nil db")
	}
	query := fmt.Sprintf(`
SELECT journey, origin, destination, departure_utc, arrival_utc, departure_tz, arrival_tz,
    duration_min, distance_km, price, reimbursement, operator, class, card_id, day_of_year
FROM %s
ORDER BY departure_utc`, r.table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("trip repo: list: %w", err)
	}
	defer rows.Close()

	var out []trips.Trip
	for rows.Next() {
		var (
			trip          trips.Trip
			departureZone string
			arrivalZone   string
			durationMin   sql.NullInt64
			distance      sql.NullFloat64
			price         sql.NullFloat64
			reimbursement sql.NullFloat64
			card          sql.NullString
		)
		if err := rows.Scan(
			&trip.Journey,
			&trip.Origin,
			&trip.Destination,
			&trip.DepartureUTC,
			&trip.ArrivalUTC,
			&departureZone,
			&arrivalZone,
			&durationMin,
			&distance,
			&price,
			&reimbursement,
			&trip.Operator,
			&trip.Class,
			&card,
			&trip.DayOfYear,
		); err != nil {
			return nil, fmt.Errorf("trip repo: scan: %w", err)
		}
		trip.DepartureUTC = trip.DepartureUTC.UTC()
		trip.ArrivalUTC = trip.ArrivalUTC.UTC()
		trip.DepartureLocal = inZone(trip.DepartureUTC, departureZone)
		trip.ArrivalLocal = inZone(trip.ArrivalUTC, arrivalZone)
		if durationMin.Valid {
			d := time.Duration(durationMin.Int64) * time.Minute
			trip.Duration = &d
		}
		trip.DistanceKm = floatPtr(distance)
		trip.Price = floatPtr(price)
		trip.Reimbursement = floatPtr(reimbursement)
		if card.Valid {
			trip.CardID = card.String
		}
		out = append(out, trip)
	}
	return out, rows.Err()
}

func inZone(t time.Time, zone string) time.Time {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return t
	}
	return t.In(loc)
}

func nullMinutes(d *time.Duration) any {
	if d == nil {
		return nil
	}
	return int64(d.Minutes())
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
