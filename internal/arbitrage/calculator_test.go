package arbitrage

import (
	"math"
	"testing"

	"github.com/mkirwin/exchange-arb/pkg/types"
	"go.uber.org/zap"
)

func newTestCalculator(threshold, minLiquidity, commission float64) *Calculator {
	return New(Config{
		Threshold:    threshold,
		MinLiquidity: minLiquidity,
		TotalStake:   1000,
		Commission:   commission,
		Logger:       zap.NewNop(),
	})
}

func binaryOdds(odds1, liq1, odds2, liq2 float64) (types.MarketGroup, []types.Odd) {
	group := types.MarketGroup{Markets: []types.Market{
		{ID: "sm-1", Name: "Match Odds", Exchange: "smarkets", EventName: "Djokovic v Federer"},
		{ID: "mb-1", Name: "Winner", Exchange: "matchbook", EventName: "Djokovic v Federer"},
	}}
	odds := []types.Odd{
		{Selection: "Djokovic", Odds: odds1, Liquidity: liq1, Exchange: "smarkets", MarketID: "sm-1", MarketName: "Match Odds", EventName: "Djokovic v Federer", Sport: types.SportTennis},
		{Selection: "Federer", Odds: odds2, Liquidity: liq2, Exchange: "matchbook", MarketID: "mb-1", MarketName: "Winner", EventName: "Djokovic v Federer", Sport: types.SportTennis},
	}
	return group, odds
}

func TestEvaluate_ThresholdEmission(t *testing.T) {
	// Odds 2.00 / 2.10: implied sum 0.97619 < 0.98. With zero
	// commission the full 2.38% margin is realized.
	calc := newTestCalculator(0.98, 100, 0)
	group, odds := binaryOdds(2.00, 500, 2.10, 500)

	opps := calc.Evaluate(group, odds)

	if len(opps) != 1 {
		t.Fatalf("expected 1 opportunity, got %d", len(opps))
	}

	opp := opps[0]
	if math.Abs(opp.ImpliedSum-0.97619) > 0.0001 {
		t.Errorf("implied sum = %f, want ~0.97619", opp.ImpliedSum)
	}
	if math.Abs(opp.ProfitMargin-2.38) > 0.01 {
		t.Errorf("profit margin = %f, want ~2.38", opp.ProfitMargin)
	}
}

func TestEvaluate_CommissionKillsThinMargin(t *testing.T) {
	// The same 2.00 / 2.10 pair clears the threshold but a 2%
	// commission on both returns wipes out the 2.38% margin.
	calc := newTestCalculator(0.98, 100, 0.02)
	group, odds := binaryOdds(2.00, 500, 2.10, 500)

	opps := calc.Evaluate(group, odds)

	if len(opps) != 0 {
		t.Fatalf("expected no opportunities after commission, got %d", len(opps))
	}
}

func TestEvaluate_NoOpportunityAboveThreshold(t *testing.T) {
	// Odds 1.90 / 2.00: implied sum 1.0263 exceeds 1, let alone the
	// threshold.
	calc := newTestCalculator(0.98, 100, 0.02)
	group, odds := binaryOdds(1.90, 500, 2.00, 500)

	opps := calc.Evaluate(group, odds)

	if len(opps) != 0 {
		t.Fatalf("expected no opportunities, got %d", len(opps))
	}
}

func TestEvaluate_StakeSplitAndCommission(t *testing.T) {
	calc := newTestCalculator(0.98, 100, 0.02)
	group, odds := binaryOdds(2.20, 500, 2.20, 500)

	opps := calc.Evaluate(group, odds)

	if len(opps) != 1 {
		t.Fatalf("expected 1 opportunity, got %d", len(opps))
	}

	opp := opps[0]

	// Stakes always sum to the configured total.
	if math.Abs(opp.Leg1.Stake+opp.Leg2.Stake-opp.TotalStake) > 1e-9 {
		t.Errorf("stakes sum to %f, want %f", opp.Leg1.Stake+opp.Leg2.Stake, opp.TotalStake)
	}

	// The split equalizes payouts across legs.
	if math.Abs(opp.Leg1.Return-opp.Leg2.Return) > 1e-9 {
		t.Errorf("leg returns differ: %f vs %f", opp.Leg1.Return, opp.Leg2.Return)
	}

	// Commission strictly reduces profit below the pre-commission figure.
	minReturn := math.Min(opp.Leg1.Return, opp.Leg2.Return)
	preCommission := minReturn - opp.TotalStake
	if opp.NetProfit >= preCommission {
		t.Errorf("net profit %f not strictly below pre-commission profit %f", opp.NetProfit, preCommission)
	}

	if opp.NetProfit <= 0 {
		t.Errorf("expected positive net profit, got %f", opp.NetProfit)
	}
	if math.Abs(opp.ROI-opp.NetProfit/opp.TotalStake*100) > 1e-9 {
		t.Errorf("ROI %f inconsistent with net profit %f", opp.ROI, opp.NetProfit)
	}
}

func TestEvaluate_LiquidityBelowMinimumNeverQualifies(t *testing.T) {
	// Wildly favorable odds cannot rescue a leg with thin liquidity.
	calc := newTestCalculator(0.98, 100, 0.02)
	group, odds := binaryOdds(3.00, 50, 3.00, 5000)

	opps := calc.Evaluate(group, odds)

	if len(opps) != 0 {
		t.Fatalf("expected no opportunities with thin liquidity, got %d", len(opps))
	}
}

func TestEvaluate_SameExchangePairRejected(t *testing.T) {
	calc := newTestCalculator(0.98, 100, 0.02)
	group := types.MarketGroup{Markets: []types.Market{
		{ID: "sm-1", Exchange: "smarkets"},
		{ID: "mb-1", Exchange: "matchbook"},
	}}
	odds := []types.Odd{
		{Selection: "Djokovic", Odds: 2.5, Liquidity: 500, Exchange: "smarkets"},
		{Selection: "Federer", Odds: 2.5, Liquidity: 500, Exchange: "smarkets"},
	}

	opps := calc.Evaluate(group, odds)

	if len(opps) != 0 {
		t.Fatalf("expected no opportunities from one exchange, got %d", len(opps))
	}
}

func TestEvaluate_NonBinaryGroupingSkipped(t *testing.T) {
	calc := newTestCalculator(0.98, 100, 0.02)
	group := types.MarketGroup{}

	tests := []struct {
		name string
		odds []types.Odd
	}{
		{"single-outcome", []types.Odd{
			{Selection: "Djokovic", Odds: 2.5, Liquidity: 500, Exchange: "smarkets"},
			{Selection: "N. Djokovic", Odds: 2.6, Liquidity: 500, Exchange: "matchbook"},
		}},
		{"three-outcomes", []types.Odd{
			{Selection: "Home", Odds: 3.0, Liquidity: 500, Exchange: "smarkets"},
			{Selection: "Draw", Odds: 3.5, Liquidity: 500, Exchange: "smarkets"},
			{Selection: "Away", Odds: 3.2, Liquidity: 500, Exchange: "matchbook"},
		}},
		{"no-odds", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opps := calc.Evaluate(group, tt.odds)
			if len(opps) != 0 {
				t.Errorf("expected no opportunities, got %d", len(opps))
			}
		})
	}
}

func TestEvaluate_InvalidOddsSkippedSilently(t *testing.T) {
	calc := newTestCalculator(0.98, 100, 0.02)

	tests := []struct {
		name string
		odds float64
	}{
		{"at-one", 1.0},
		{"below-one", 0.5},
		{"nan", math.NaN()},
		{"positive-inf", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group, odds := binaryOdds(tt.odds, 500, 2.2, 500)
			opps := calc.Evaluate(group, odds)
			if len(opps) != 0 {
				t.Errorf("expected no opportunities for odds %f, got %d", tt.odds, len(opps))
			}
		})
	}
}

func TestEvaluate_AllQualifyingPairsEmitted(t *testing.T) {
	// Two counter-quotes both qualify against the same quote: both
	// pairs are emitted independently, no deduplication.
	calc := newTestCalculator(0.98, 100, 0.02)
	group := types.MarketGroup{}
	odds := []types.Odd{
		{Selection: "Djokovic", Odds: 2.30, Liquidity: 500, Exchange: "smarkets", EventName: "Djokovic v Federer"},
		{Selection: "Federer", Odds: 2.30, Liquidity: 500, Exchange: "matchbook"},
		{Selection: "R. Federer", Odds: 2.25, Liquidity: 300, Exchange: "matchbook"},
	}

	opps := calc.Evaluate(group, odds)

	if len(opps) != 2 {
		t.Fatalf("expected 2 opportunities, got %d", len(opps))
	}

	// Pair-evaluation order is deterministic: outcome-one quotes
	// against outcome-two quotes in input order.
	if opps[0].Leg2.Odds != 2.30 || opps[1].Leg2.Odds != 2.25 {
		t.Errorf("unexpected emission order: %f then %f", opps[0].Leg2.Odds, opps[1].Leg2.Odds)
	}
	if opps[0].Leg1.Selection != "Djokovic" || opps[1].Leg1.Selection != "Djokovic" {
		t.Errorf("expected shared first leg, got %q and %q", opps[0].Leg1.Selection, opps[1].Leg1.Selection)
	}
}
