package apihttp

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	analytics "github.com/Nosudrum/train-stats/internal/analytics/domain"
	"github.com/Nosudrum/train-stats/internal/export"
	geometry "github.com/Nosudrum/train-stats/internal/geometry/domain"
	"github.com/Nosudrum/train-stats/internal/observability/metrics"
	spending "github.com/Nosudrum/train-stats/internal/spending/domain"
)

// Snapshot is the set of derived structures the API serves. It is
// replaced wholesale on refresh; handlers never mutate it.
type Snapshot struct {
	Store      *analytics.Store
	ExtraSpend map[string]map[int]float64
	Shares     []spending.YearShare
	Polylines  []geometry.Polyline
}

// RefreshFunc re-runs the ingestion pipeline and returns a new snapshot.
type RefreshFunc func() (*Snapshot, error)

// Server exposes the derived statistics to renderers.
type Server struct {
	mu       sync.RWMutex
	snapshot *Snapshot
	refresh  RefreshFunc
	logger   *log.Logger
}

// NewServer constructs a Server over an initial snapshot.
func NewServer(snapshot *Snapshot, refresh RefreshFunc, logger *log.Logger) *Server {
	return &Server{snapshot: snapshot, refresh: refresh, logger: logger}
}

// Router builds the API routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/api/v1/stats", s.handleStats)
	r.Get("/api/v1/journeys", s.handleJourneys)
	r.Get("/api/v1/operators", s.handleOperators)
	r.Get("/api/v1/tiers", s.handleTiers)
	r.Get("/api/v1/occupancy", s.handleOccupancy)
	r.Get("/api/v1/polylines", s.handlePolylines)
	r.Get("/api/v1/exports/report.xlsx", s.handleExportWorkbook)
	r.Get("/api/v1/exports/report.pdf", s.handleExportPDF)
	r.Post("/api/v1/refresh", s.handleRefresh)
	return r
}

func (s *Server) current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	metrics.ObserveAPIRequest("stats")
	snap := s.current()
	start, end, ok := parseWindow(w, r)
	if !ok {
		return
	}
	stats := snap.Store.Stats(start, end)
	distance, duration := export.StatsStrings(stats)
	writeJSON(w, map[string]any{
		"distance_km":    stats.TotalDistanceKm,
		"duration_min":   stats.TotalDuration.Minutes(),
		"ongoing":        stats.Ongoing,
		"distance_label": distance,
		"duration_label": duration,
	})
}

func (s *Server) handleJourneys(w http.ResponseWriter, r *http.Request) {
	metrics.ObserveAPIRequest("journeys")
	snap := s.current()
	start, end, ok := parseWindow(w, r)
	if !ok {
		return
	}
	writeJSON(w, analytics.Journeys(snap.Store.Trips(start, end)))
}

func (s *Server) handleOperators(w http.ResponseWriter, r *http.Request) {
	metrics.ObserveAPIRequest("operators")
	snap := s.current()
	metric, ok := analytics.ParseMetric(r.URL.Query().Get("metric"))
	if !ok {
		http.Error(w, "unknown metric", http.StatusBadRequest)
		return
	}
	selected, amounts := analytics.OperatorYearRollup(snap.Store.PastTrips(nil), snap.ExtraSpend, metric)
	writeJSON(w, map[string]any{
		"metric":    metric.String(),
		"operators": selected,
		"amounts":   amounts,
	})
}

func (s *Server) handleTiers(w http.ResponseWriter, r *http.Request) {
	metrics.ObserveAPIRequest("tiers")
	snap := s.current()
	metric, ok := analytics.ParseMetric(r.URL.Query().Get("metric"))
	if !ok {
		http.Error(w, "unknown metric", http.StatusBadRequest)
		return
	}
	rollup := analytics.TierYearRollup(snap.Store.PastTrips(nil), metric)

	labels := make([]string, len(analytics.DurationTiers))
	for i, tier := range analytics.DurationTiers {
		labels[i] = tier.Label
	}
	writeJSON(w, map[string]any{
		"metric":  metric.String(),
		"tiers":   labels,
		"amounts": rollup,
	})
}

func (s *Server) handleOccupancy(w http.ResponseWriter, r *http.Request) {
	metrics.ObserveAPIRequest("occupancy")
	snap := s.current()
	mode := analytics.OccupancyCount
	metric := analytics.MetricTripCount
	if r.URL.Query().Get("mode") == "distance" {
		mode = analytics.OccupancyDistance
		metric = analytics.MetricDistance
	}
	curves := analytics.OperatorOccupancy(snap.Store.PastTrips(nil), snap.ExtraSpend, metric, mode)
	writeJSON(w, curves)
}

func (s *Server) handlePolylines(w http.ResponseWriter, r *http.Request) {
	metrics.ObserveAPIRequest("polylines")
	writeJSON(w, s.current().Polylines)
}

func (s *Server) handleExportWorkbook(w http.ResponseWriter, r *http.Request) {
	metrics.ObserveAPIRequest("export_xlsx")
	payload, err := export.BuildWorkbook(s.buildReport())
	metrics.ObserveExport("xlsx", err)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="train-stats.xlsx"`)
	_, _ = w.Write(payload)
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	metrics.ObserveAPIRequest("export_pdf")
	payload, err := export.BuildSummaryPDF(s.buildReport())
	metrics.ObserveExport("pdf", err)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="train-stats.pdf"`)
	_, _ = w.Write(payload)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	metrics.ObserveAPIRequest("refresh")
	if s.refresh == nil {
		http.Error(w, "refresh not configured", http.StatusNotImplemented)
		return
	}
	snapshot, err := s.refresh()
	if err != nil {
		if s.logger != nil {
			s.logger.Printf("refresh error: %v", err)
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) buildReport() export.Report {
	snap := s.current()
	past := snap.Store.PastTrips(nil)
	operators, netSpend := analytics.OperatorYearRollup(past, snap.ExtraSpend, analytics.MetricNetSpend)
	return export.Report{
		GeneratedAt: snap.Store.Now(),
		Stats:       snap.Store.Stats(nil, nil),
		Journeys:    analytics.Journeys(past),
		Operators:   operators,
		NetSpend:    netSpend,
		Shares:      snap.Shares,
	}
}

func parseWindow(w http.ResponseWriter, r *http.Request) (*time.Time, *time.Time, bool) {
	var start, end *time.Time
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			http.Error(w, "invalid from", http.StatusBadRequest)
			return nil, nil, false
		}
		start = &t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			http.Error(w, "invalid to", http.StatusBadRequest)
			return nil, nil, false
		}
		end = &t
	}
	return start, end, true
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
