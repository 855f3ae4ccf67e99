package scanner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	ScanCyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exchange_arb_scan_cycles_total",
		Help: "Total number of scan cycles run",
	})

	ScanPanicsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exchange_arb_scan_panics_total",
		Help: "Total number of panics recovered at the scan boundary",
	})

	StoreErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exchange_arb_store_errors_total",
		Help: "Total number of failed opportunity writes",
	})

	LastScanOpportunities = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "exchange_arb_last_scan_opportunities",
		Help: "Number of opportunities found by the most recent scan",
	})

	ScanDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "exchange_arb_scan_duration_seconds",
		Help:    "Duration of a full scan cycle in seconds",
		Buckets: prometheus.DefBuckets,
	})
)
