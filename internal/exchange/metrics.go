package exchange

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EventsFetchedTotal tracks events fetched per exchange.
	EventsFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exchange_arb_events_fetched_total",
			Help: "Total number of live events fetched",
		},
		[]string{"exchange"},
	)

	// OddsFetchedTotal tracks liquidity-filtered quotes fetched per exchange.
	OddsFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exchange_arb_odds_fetched_total",
			Help: "Total number of quotes fetched after liquidity filtering",
		},
		[]string{"exchange"},
	)

	// FetchErrorsTotal tracks fetch failures per exchange and operation.
	FetchErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exchange_arb_fetch_errors_total",
			Help: "Total number of fetch failures",
		},
		[]string{"exchange", "op"},
	)

	// SessionLoginsTotal tracks successful Matchbook session logins.
	SessionLoginsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exchange_arb_session_logins_total",
		Help: "Total number of successful exchange session logins",
	})

	// AuthRetriesTotal tracks bounded re-authentication retries after a 401.
	AuthRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exchange_arb_auth_retries_total",
		Help: "Total number of re-authentication retries triggered by expired sessions",
	})
)
