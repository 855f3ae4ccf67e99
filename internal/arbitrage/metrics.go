package arbitrage

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OpportunitiesDetectedTotal tracks arbitrage opportunities detected.
	OpportunitiesDetectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exchange_arb_opportunities_detected_total",
		Help: "Total number of arbitrage opportunities detected",
	})

	// PairsRejectedTotal tracks rejected quote pairs by reason.
	PairsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exchange_arb_pairs_rejected_total",
			Help: "Total number of cross-exchange quote pairs rejected",
		},
		[]string{"reason"},
	)

	// MarketGroupsSkippedTotal tracks market groups skipped before pair
	// evaluation, e.g. non-binary outcome groupings.
	MarketGroupsSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exchange_arb_market_groups_skipped_total",
			Help: "Total number of market groups skipped before evaluation",
		},
		[]string{"reason"},
	)

	// OpportunityProfitMargin tracks pre-commission margins in percent.
	OpportunityProfitMargin = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "exchange_arb_opportunity_profit_margin_percent",
		Help:    "Arbitrage opportunity profit margin before commission, percent",
		Buckets: []float64{0.5, 1, 1.5, 2, 3, 4, 5, 7.5, 10},
	})

	// OpportunityROI tracks post-commission return on total stake.
	OpportunityROI = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "exchange_arb_opportunity_roi_percent",
		Help:    "Arbitrage opportunity net return on stake after commission, percent",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 1.5, 2, 3, 5, 10},
	})

	// EvaluationDurationSeconds tracks per-market-group evaluation latency.
	EvaluationDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "exchange_arb_evaluation_duration_seconds",
		Help:    "Duration of a market group arbitrage evaluation",
		Buckets: prometheus.DefBuckets,
	})
)
