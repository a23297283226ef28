// Package metrics provides Prometheus metrics collection for the medcheck
// API. It exports HTTP request metrics plus domain counters for catalog
// refreshes, scan matching, and warning evaluation.
//
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	CatalogRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_refresh_total",
			Help: "Catalog refresh attempts by outcome",
		},
		[]string{"outcome"},
	)

	CatalogDrugCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_drug_count",
			Help: "Drugs in the current catalog snapshot",
		},
	)

	ScanMatchTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scan_match_total",
			Help: "Total scan matching passes",
		},
	)

	ScanMatchedDrugs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scan_matched_drugs",
			Help:    "Drugs matched per scan",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
		},
	)

	WarningsEvaluatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warnings_evaluated_total",
			Help: "Warning evaluations by resulting risk level",
		},
		[]string{"risk_level"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(CatalogRefreshTotal)
	prometheus.MustRegister(CatalogDrugCount)
	prometheus.MustRegister(ScanMatchTotal)
	prometheus.MustRegister(ScanMatchedDrugs)
	prometheus.MustRegister(WarningsEvaluatedTotal)
}
