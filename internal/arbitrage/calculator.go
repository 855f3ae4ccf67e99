package arbitrage

import (
	"math"
	"time"

	"github.com/mkirwin/exchange-arb/internal/matching"
	"github.com/mkirwin/exchange-arb/pkg/types"
	"go.uber.org/zap"
)

// Config holds calculator configuration.
type Config struct {
	Threshold    float64 // maximum total implied probability
	MinLiquidity float64 // minimum stake available on each leg
	TotalStake   float64 // notional split across the two legs
	Commission   float64 // flat commission rate on each return
	Logger       *zap.Logger
}

// Calculator evaluates cross-exchange quote pairs for guaranteed
// profit. It is pure and side-effect-free over each input batch.
type Calculator struct {
	config Config
	logger *zap.Logger
}

// New creates a new arbitrage calculator.
func New(cfg Config) *Calculator {
	return &Calculator{
		config: cfg,
		logger: cfg.Logger,
	}
}

// Evaluate searches every cross-exchange price combination in a market
// group's quotes and returns the qualifying opportunities in
// pair-evaluation order. Only binary markets are evaluated: when the
// normalized outcome grouping yields anything other than exactly two
// outcomes, no opportunities are emitted.
//
// All qualifying pairs are emitted independently; the same quote may
// appear in several opportunities when multiple counter-quotes qualify.
func (c *Calculator) Evaluate(group types.MarketGroup, odds []types.Odd) []*Opportunity {
	start := time.Now()
	defer func() {
		EvaluationDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	outcomes := matching.GroupOutcomes(odds)
	if len(outcomes) != 2 {
		c.logger.Debug("market-group-not-binary",
			zap.Int("outcome-count", len(outcomes)),
			zap.Int("market-count", len(group.Markets)))
		MarketGroupsSkippedTotal.WithLabelValues("non_binary").Inc()
		return nil
	}

	// Map iteration order is randomized; recover first-appearance order
	// from the odds slice so results are deterministic.
	keys := outcomeKeysInOrder(odds, outcomes)

	var opportunities []*Opportunity

	for _, odd1 := range outcomes[keys[0]] {
		for _, odd2 := range outcomes[keys[1]] {
			opp, ok := c.evaluatePair(odd1, odd2)
			if !ok {
				continue
			}
			opportunities = append(opportunities, opp)

			OpportunitiesDetectedTotal.Inc()
			OpportunityProfitMargin.Observe(opp.ProfitMargin)
			OpportunityROI.Observe(opp.ROI)

			c.logger.Info("arbitrage-opportunity-detected",
				zap.String("opportunity-id", opp.ID),
				zap.String("event", opp.EventName),
				zap.String("market", opp.MarketName),
				zap.Float64("implied-sum", opp.ImpliedSum),
				zap.Float64("net-profit", opp.NetProfit))
		}
	}

	return opportunities
}

// evaluatePair applies the rejection rules and, when the pair
// qualifies, builds the opportunity.
func (c *Calculator) evaluatePair(odd1, odd2 types.Odd) (*Opportunity, bool) {
	// Both legs on one exchange is not an arbitrage.
	if odd1.Exchange == odd2.Exchange {
		PairsRejectedTotal.WithLabelValues("same_exchange").Inc()
		return nil, false
	}

	if odd1.Liquidity < c.config.MinLiquidity || odd2.Liquidity < c.config.MinLiquidity {
		PairsRejectedTotal.WithLabelValues("below_min_liquidity").Inc()
		return nil, false
	}

	if !validOdds(odd1.Odds) || !validOdds(odd2.Odds) {
		PairsRejectedTotal.WithLabelValues("invalid_odds").Inc()
		return nil, false
	}

	impliedSum := 1.0/odd1.Odds + 1.0/odd2.Odds
	if impliedSum >= c.config.Threshold {
		PairsRejectedTotal.WithLabelValues("above_threshold").Inc()
		return nil, false
	}

	opp := NewOpportunity(odd1, odd2, c.config.TotalStake, c.config.Commission, c.config.Threshold)
	if opp.NetProfit <= 0 {
		c.logger.Debug("pair-unprofitable-after-commission",
			zap.Float64("implied-sum", impliedSum),
			zap.Float64("net-profit", opp.NetProfit))
		PairsRejectedTotal.WithLabelValues("negative_net_profit").Inc()
		return nil, false
	}

	return opp, true
}

// validOdds guards the arithmetic against non-finite or unbackable
// prices. Invalid quotes are skipped silently, never surfaced as errors.
func validOdds(odds float64) bool {
	return odds > 1 && !math.IsNaN(odds) && !math.IsInf(odds, 0)
}

// outcomeKeysInOrder returns the two normalized outcome keys in the
// order they first appear in the odds slice.
func outcomeKeysInOrder(odds []types.Odd, outcomes types.OutcomeGroup) []string {
	keys := make([]string, 0, len(outcomes))
	seen := make(map[string]struct{}, len(outcomes))
	for _, odd := range odds {
		key := matching.NormalizeSelection(odd.Selection)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}
