package matching

import (
	"testing"

	"github.com/mkirwin/exchange-arb/pkg/types"
	"go.uber.org/zap"
)

func TestSameMarketType(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{"winner-category", "Match Odds", "Winner", true},
		{"result-category", "Match Result", "Winner 90 mins", true},
		{"totals-category", "Total Goals", "Over/Under 2.5", true},
		{"handicap-category", "Asian Handicap", "Point Spread", true},
		{"set-category", "First Set Winner", "Set 1", true},
		{"correct-score-category", "Correct Score", "Final Score", true},
		{"exact-fallback", "To Qualify", "To Qualify", true},
		{"exact-fallback-case-insensitive", "To Qualify", "to qualify", true},
		{"no-category-no-match", "To Qualify", "Both Teams To Do Something", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SameMarketType(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("SameMarketType(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMarketMatcher_Match(t *testing.T) {
	matcher := NewMarketMatcher(zap.NewNop())

	markets := []types.Market{
		{ID: "sm-1", Name: "Match Odds", Exchange: "smarkets", EventName: "Nadal v Murray"},
		{ID: "mb-1", Name: "Winner", Exchange: "matchbook", EventName: "Nadal v Murray"},
		{ID: "sm-2", Name: "Total Games", Exchange: "smarkets", EventName: "Nadal v Murray"},
		{ID: "mb-2", Name: "Over/Under 22.5 Games", Exchange: "matchbook", EventName: "Nadal v Murray"},
		{ID: "sm-3", Name: "Exotic Special", Exchange: "smarkets", EventName: "Nadal v Murray"},
	}

	groups := matcher.Match(markets)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Markets[0].ID != "sm-1" || groups[0].Markets[1].ID != "mb-1" {
		t.Errorf("unexpected first group: %+v", groups[0].Markets)
	}
	if groups[1].Markets[0].ID != "sm-2" || groups[1].Markets[1].ID != "mb-2" {
		t.Errorf("unexpected second group: %+v", groups[1].Markets)
	}
}

func TestMarketMatcher_SameExchangeNeverGroups(t *testing.T) {
	matcher := NewMarketMatcher(zap.NewNop())

	markets := []types.Market{
		{ID: "sm-1", Name: "Match Odds", Exchange: "smarkets"},
		{ID: "sm-2", Name: "Winner", Exchange: "smarkets"},
	}

	groups := matcher.Match(markets)

	if len(groups) != 0 {
		t.Fatalf("expected no groups for single-exchange markets, got %d", len(groups))
	}
}

func TestMarketMatcher_ExchangeCardinality(t *testing.T) {
	matcher := NewMarketMatcher(zap.NewNop())

	markets := []types.Market{
		{ID: "sm-1", Name: "Handicap", Exchange: "smarkets"},
		{ID: "mb-1", Name: "Line -1.5", Exchange: "matchbook"},
		{ID: "sm-2", Name: "Lonely Market", Exchange: "smarkets"},
	}

	groups := matcher.Match(markets)

	for _, g := range groups {
		if len(g.Exchanges()) < 2 {
			t.Errorf("group with single exchange returned: %+v", g.Markets)
		}
	}
}
