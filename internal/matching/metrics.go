package matching

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EventGroupsFormedTotal tracks cross-exchange event groups formed.
	EventGroupsFormedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exchange_arb_event_groups_formed_total",
		Help: "Total number of cross-exchange event groups formed",
	})

	// MarketGroupsFormedTotal tracks cross-exchange market groups formed.
	MarketGroupsFormedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exchange_arb_market_groups_formed_total",
		Help: "Total number of cross-exchange market groups formed",
	})

	// SingleExchangeGroupsTotal tracks clusters discarded because all
	// their members came from one exchange.
	SingleExchangeGroupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exchange_arb_single_exchange_groups_total",
			Help: "Total number of clusters discarded for spanning only one exchange",
		},
		[]string{"kind"},
	)
)
