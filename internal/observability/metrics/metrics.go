package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "trainstats_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	tripsIngested   prometheus.Counter
	rowsDropped     prometheus.Counter
	spendingShares  prometheus.Counter
	pipelineRuns    *prometheus.CounterVec
	pipelineLatency prometheus.Histogram

	exportTotal *prometheus.CounterVec

	apiRequests *prometheus.CounterVec
)

// Init registers the pipeline and API metrics.
func Init() {
	registerOnce.Do(func() {
		tripsIngested = prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "trips_ingested_total",
			Help: "Normalized trips accepted into the store",
		})
		rowsDropped = prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "rows_dropped_total",
			Help: "Sheet rows dropped for missing departure times",
		})
		spendingShares = prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "spending_shares_total",
			Help: "Prorated yearly spending shares produced",
		})
		pipelineRuns = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "pipeline_runs_total",
				Help: "Ingestion pipeline runs by result",
			},
			[]string{"result"},
		)
		pipelineLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    metricPrefix + "pipeline_duration_seconds",
			Help:    "Ingestion pipeline duration",
			Buckets: prometheus.DefBuckets,
		})
		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "exports_total",
				Help: "Report exports by format and result",
			},
			[]string{"format", "result"},
		)
		apiRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "api_requests_total",
				Help: "Read API requests by endpoint",
			},
			[]string{"endpoint"},
		)

		prometheus.MustRegister(
			tripsIngested,
			rowsDropped,
			spendingShares,
			pipelineRuns,
			pipelineLatency,
			exportTotal,
			apiRequests,
		)
	})
}

// ObservePipelineRun records one pipeline run.
func ObservePipelineRun(duration time.Duration, err error) {
	if pipelineRuns == nil {
		return
	}
	result := resultSuccess
	if err != nil {
		result = resultError
	}
	pipelineRuns.WithLabelValues(result).Inc()
	pipelineLatency.Observe(duration.Seconds())
}

// AddTripsIngested counts accepted trips.
func AddTripsIngested(n int) {
	if tripsIngested != nil {
		tripsIngested.Add(float64(n))
	}
}

// AddRowsDropped counts dropped sheet rows.
func AddRowsDropped(n int) {
	if rowsDropped != nil {
		rowsDropped.Add(float64(n))
	}
}

// AddSpendingShares counts prorated shares.
func AddSpendingShares(n int) {
	if spendingShares != nil {
		spendingShares.Add(float64(n))
	}
}

// ObserveExport records one report export.
func ObserveExport(format string, err error) {
	if exportTotal == nil {
		return
	}
	result := resultSuccess
	if err != nil {
		result = resultError
	}
	exportTotal.WithLabelValues(format, result).Inc()
}

// ObserveAPIRequest counts one read API hit.
func ObserveAPIRequest(endpoint string) {
	if apiRequests != nil {
		apiRequests.WithLabelValues(endpoint).Inc()
	}
}
