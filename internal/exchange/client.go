package exchange

import (
	"context"

	"github.com/mkirwin/exchange-arb/pkg/types"
)

// Exchange identifiers used on every entity fetched from them.
const (
	Smarkets  = "smarkets"
	Matchbook = "matchbook"
)

// Client fetches live events, markets and best-available quotes from
// one exchange. Implementations denormalize parent metadata onto the
// returned records so downstream stages never resolve it again, and
// filter quotes at the source: no Odd is ever constructed with decimal
// odds <= 1 or liquidity below the configured minimum.
//
// Fetch failures are non-fatal by contract. Callers log them and
// proceed with an empty result; the scan never hard-stops on a single
// exchange being unreachable.
type Client interface {
	// Name returns the exchange identifier.
	Name() string

	// GetEvents returns live events for one sport.
	GetEvents(ctx context.Context, sport types.Sport) ([]types.Event, error)

	// GetMarkets returns open markets for an event, with the event's
	// name and sport denormalized onto each market.
	GetMarkets(ctx context.Context, event types.Event) ([]types.Market, error)

	// GetOdds returns the best-available quote per selection in a
	// market, already liquidity-filtered.
	GetOdds(ctx context.Context, market types.Market) ([]types.Odd, error)
}
