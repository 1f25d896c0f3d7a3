package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "congestion_"

	resultSuccess = "success"
)

var (
	registerOnce sync.Once

	calcRequests *prometheus.CounterVec
	calcLatency  *prometheus.HistogramVec
	calcEntries  prometheus.Histogram

	exportRequests *prometheus.CounterVec
	exportLatency  *prometheus.HistogramVec
)

// Init registers the service metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		calcRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "tax_calculations_total",
				Help: "Total tax calculations by result",
			},
			[]string{"result"},
		)
		calcLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "tax_calculation_latency_seconds",
				Help:    "Tax calculation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		calcEntries = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "tax_calculation_entries",
				Help:    "City entry events per calculation request",
				Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
			},
		)

		exportRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "statement_export_total",
				Help: "Total statement export operations by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "statement_export_latency_seconds",
				Help:    "Statement export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			calcRequests,
			calcLatency,
			calcEntries,
			exportRequests,
			exportLatency,
		)
	})
}

// ObserveCalculation records one tax calculation.
func ObserveCalculation(result string, entries int, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if calcRequests != nil {
		calcRequests.WithLabelValues(result).Inc()
	}
	if calcLatency != nil {
		calcLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
	if calcEntries != nil {
		calcEntries.Observe(float64(entries))
	}
}

// ObserveStatementExport records export latency and result.
func ObserveStatementExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportRequests != nil {
		exportRequests.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}
