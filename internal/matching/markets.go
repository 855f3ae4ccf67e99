package matching

import (
	"strings"

	"github.com/mkirwin/exchange-arb/pkg/types"
	"go.uber.org/zap"
)

// marketCategories are keyword groups identifying a market type. Two
// market names are the same type when each contains a keyword from the
// same category, regardless of exchange-specific phrasing ("Match Odds"
// vs "Winner", "Total Games" vs "Over/Under").
var marketCategories = [][]string{
	{"winner", "match", "result"},
	{"total", "over", "under"},
	{"handicap", "spread", "line"},
	{"first", "set"},
	{"correct", "score"},
}

// MarketMatcher clusters markets of the same semantic type across
// exchanges within one event group.
type MarketMatcher struct {
	logger *zap.Logger
}

// NewMarketMatcher creates a new market matcher.
func NewMarketMatcher(logger *zap.Logger) *MarketMatcher {
	return &MarketMatcher{logger: logger}
}

// Match clusters the markets of one event group using the same greedy
// skeleton as event matching, with a category-based pairing test.
// Retained groups always span more than one exchange.
func (m *MarketMatcher) Match(markets []types.Market) []types.MarketGroup {
	var groups []types.MarketGroup
	assigned := make([]bool, len(markets))

	for i := range markets {
		if assigned[i] {
			continue
		}

		group := types.MarketGroup{Markets: []types.Market{markets[i]}}
		assigned[i] = true

		for j := i + 1; j < len(markets); j++ {
			if assigned[j] {
				continue
			}
			if markets[j].Exchange == markets[i].Exchange {
				continue
			}
			if !SameMarketType(markets[i].Name, markets[j].Name) {
				continue
			}
			group.Markets = append(group.Markets, markets[j])
			assigned[j] = true
		}

		if len(group.Exchanges()) < 2 {
			SingleExchangeGroupsTotal.WithLabelValues("market").Inc()
			continue
		}

		m.logger.Debug("market-group-formed",
			zap.String("seed", markets[i].Name),
			zap.Int("size", len(group.Markets)))
		MarketGroupsFormedTotal.Inc()
		groups = append(groups, group)
	}

	return groups
}

// SameMarketType reports whether two market names denote the same
// market type. Falls back to exact (case-insensitive) name equality
// when no category matches.
func SameMarketType(a, b string) bool {
	name1 := strings.ToLower(a)
	name2 := strings.ToLower(b)

	for _, category := range marketCategories {
		if containsAny(name1, category) && containsAny(name2, category) {
			return true
		}
	}

	return name1 == name2
}

func containsAny(name string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}
