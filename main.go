package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	analytics "github.com/Nosudrum/train-stats/internal/analytics/domain"
	apihttp "github.com/Nosudrum/train-stats/internal/api/http"
	"github.com/Nosudrum/train-stats/internal/auth"
	"github.com/Nosudrum/train-stats/internal/config"
	"github.com/Nosudrum/train-stats/internal/export"
	geometry "github.com/Nosudrum/train-stats/internal/geometry/domain"
	"github.com/Nosudrum/train-stats/internal/geometry/infrastructure/geojson"
	"github.com/Nosudrum/train-stats/internal/observability/metrics"
	spending "github.com/Nosudrum/train-stats/internal/spending/domain"
	spendingsheet "github.com/Nosudrum/train-stats/internal/spending/infrastructure/sheet"
	stations "github.com/Nosudrum/train-stats/internal/stations/domain"
	"github.com/Nosudrum/train-stats/internal/stations/infrastructure/csvfile"
	trips "github.com/Nosudrum/train-stats/internal/trips/domain"
	tripspostgres "github.com/Nosudrum/train-stats/internal/trips/infrastructure/postgres"
	tripsheet "github.com/Nosudrum/train-stats/internal/trips/infrastructure/sheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger := log.New(os.Stdout, "", log.LstdFlags)

	location, err := cfg.Location()
	if err != nil {
		logger.Fatalf("timezone error: %v", err)
	}
	clock := homeClock{location: location}

	metrics.Init()

	snapshot, err := runPipeline(cfg, clock, logger)
	if err != nil {
		logger.Fatalf("pipeline error: %v", err)
	}

	if cfg.DatabaseURL != "" {
		if err := persistTrips(cfg, snapshot, logger); err != nil {
			logger.Fatalf("persist error: %v", err)
		}
	}
	if cfg.ReportDir != "" {
		if err := writeReports(cfg.ReportDir, snapshot); err != nil {
			logger.Fatalf("report error: %v", err)
		}
	}

	server := apihttp.NewServer(snapshot, func() (*apihttp.Snapshot, error) {
		return runPipeline(cfg, clock, logger)
	}, logger)

	router := chi.NewRouter()
	router.Mount("/", server.Router())
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)

	httpServer := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(authMiddleware.Wrap(router), logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(httpServer.ListenAndServe())
}

// runPipeline executes one full ingestion pass: station directory, trip
// normalization, spending proration, and map polylines.
func runPipeline(cfg *config.Config, clock analytics.Clock, logger *log.Logger) (*apihttp.Snapshot, error) {
	started := time.Now()
	snapshot, err := ingest(cfg, clock, logger)
	metrics.ObservePipelineRun(time.Since(started), err)
	return snapshot, err
}

func ingest(cfg *config.Config, clock analytics.Clock, logger *log.Logger) (*apihttp.Snapshot, error) {
	custom, err := csvfile.LoadCustom(cfg.CustomStationsPath)
	if err != nil {
		return nil, err
	}
	standard, err := csvfile.LoadStandard(cfg.StationsPath)
	if err != nil {
		return nil, err
	}
	directory, err := stations.NewDirectory(custom, standard)
	if err != nil {
		return nil, err
	}

	rows, err := readTripSheet(cfg.TripsPath)
	if err != nil {
		return nil, err
	}
	normalizer, err := trips.NewNormalizer(directory)
	if err != nil {
		return nil, err
	}
	normalized, err := normalizer.Normalize(rows)
	if err != nil {
		return nil, err
	}
	metrics.AddTripsIngested(len(normalized))
	metrics.AddRowsDropped(len(rows) - len(normalized))
	logger.Printf("normalized %d trips (%d rows dropped)", len(normalized), len(rows)-len(normalized))

	var shares []spending.YearShare
	if cfg.SpendingPath != "" {
		records, err := spendingsheet.ReadCSVFile(cfg.SpendingPath)
		if err != nil {
			return nil, err
		}
		shares, err = spending.AllocateAll(records)
		if err != nil {
			return nil, err
		}
		metrics.AddSpendingShares(len(shares))
		logger.Printf("prorated %d spending records into %d yearly shares", len(records), len(shares))
	}

	store := analytics.NewStore(normalized, clock)

	var polylines []geometry.Polyline
	if cfg.JourneysDir != "" {
		now := clock.Now()
		past := store.Trips(nil, &now)
		journeys := make([]string, 0, len(past))
		for _, trip := range past {
			journeys = append(journeys, trip.Journey)
		}
		segments, err := geojson.NewLoader(cfg.JourneysDir).TravelSegments(journeys)
		if err != nil {
			// Missing geometry must not block the statistics pipeline.
			logger.Printf("journey geometry error: %v", err)
		} else {
			polylines = geometry.MergePolylines(segments)
			logger.Printf("merged %d segments into %d polylines", len(segments), len(polylines))
		}
	}

	return &apihttp.Snapshot{
		Store:      store,
		ExtraSpend: spending.AmountByOperatorYear(shares),
		Shares:     shares,
		Polylines:  polylines,
	}, nil
}

func readTripSheet(path string) ([]trips.RawTrip, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return tripsheet.ReadXLSXFile(path)
	}
	return tripsheet.ReadCSVFile(path)
}

func persistTrips(cfg *config.Config, snapshot *apihttp.Snapshot, logger *log.Logger) error {
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return err
	}

	ctx := context.Background()
	repo := tripspostgres.NewTripRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}
	all := snapshot.Store.Trips(nil, nil)
	if err := repo.ReplaceAll(ctx, all); err != nil {
		return err
	}
	logger.Printf("persisted %d trips", len(all))
	return nil
}

func writeReports(dir string, snapshot *apihttp.Snapshot) error {
	past := snapshot.Store.PastTrips(nil)
	operators, netSpend := analytics.OperatorYearRollup(past, snapshot.ExtraSpend, analytics.MetricNetSpend)
	report := export.Report{
		GeneratedAt: snapshot.Store.Now(),
		Stats:       snapshot.Store.Stats(nil, nil),
		Journeys:    analytics.Journeys(past),
		Operators:   operators,
		NetSpend:    netSpend,
		Shares:      snapshot.Shares,
	}

	workbook, err := export.BuildWorkbook(report)
	metrics.ObserveExport("xlsx", err)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "train-stats.xlsx"), workbook, 0o644); err != nil {
		return err
	}

	pdf, err := export.BuildSummaryPDF(report)
	metrics.ObserveExport("pdf", err)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "train-stats.pdf"), pdf, 0o644)
}

type homeClock struct {
	location *time.Location
}

func (c homeClock) Now() time.Time { return time.Now().In(c.location) }

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
