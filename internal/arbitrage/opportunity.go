package arbitrage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mkirwin/exchange-arb/pkg/types"
)

// Leg is one side of an arbitrage: a backed selection on one exchange
// with its allocated stake.
type Leg struct {
	Selection string
	Exchange  string
	Odds      float64
	Stake     float64
	Liquidity float64
	Return    float64
}

// Opportunity is a risk-free profit found across two exchanges. It is
// created once per qualifying price combination and never mutated.
type Opportunity struct {
	ID         string
	EventName  string
	MarketName string
	Sport      types.Sport
	DetectedAt time.Time

	Leg1 Leg
	Leg2 Leg

	ImpliedSum      float64 // sum of the two implied probabilities
	ProfitMargin    float64 // (1 - ImpliedSum) * 100, before commission
	ROI             float64 // net profit as a percentage of total stake
	TotalStake      float64
	NetProfit       float64 // guaranteed profit after commission
	ConfigThreshold float64
}

// NewOpportunity computes stakes, returns and commission-adjusted
// profit for a cross-exchange quote pair. The stake split equalizes the
// two legs' payouts so the profit is locked in whichever outcome wins.
func NewOpportunity(odd1, odd2 types.Odd, totalStake, commission, threshold float64) *Opportunity {
	p1 := 1.0 / odd1.Odds
	p2 := 1.0 / odd2.Odds
	impliedSum := p1 + p2

	stake1 := (p1 / impliedSum) * totalStake
	stake2 := (p2 / impliedSum) * totalStake

	return1 := stake1 * odd1.Odds
	return2 := stake2 * odd2.Odds

	minReturn := return1
	if return2 < minReturn {
		minReturn = return2
	}
	netProfit := minReturn - totalStake - commission*return1 - commission*return2

	return &Opportunity{
		ID:         uuid.New().String(),
		EventName:  odd1.EventName,
		MarketName: odd1.MarketName,
		Sport:      odd1.Sport,
		DetectedAt: time.Now(),
		Leg1: Leg{
			Selection: odd1.Selection,
			Exchange:  odd1.Exchange,
			Odds:      odd1.Odds,
			Stake:     stake1,
			Liquidity: odd1.Liquidity,
			Return:    return1,
		},
		Leg2: Leg{
			Selection: odd2.Selection,
			Exchange:  odd2.Exchange,
			Odds:      odd2.Odds,
			Stake:     stake2,
			Liquidity: odd2.Liquidity,
			Return:    return2,
		},
		ImpliedSum:      impliedSum,
		ProfitMargin:    (1.0 - impliedSum) * 100,
		ROI:             (netProfit / totalStake) * 100,
		TotalStake:      totalStake,
		NetProfit:       netProfit,
		ConfigThreshold: threshold,
	}
}

// String returns a human-readable representation of the opportunity.
func (o *Opportunity) String() string {
	return fmt.Sprintf(
		"Opportunity[%s] Event=%s Market=%s %s@%.2f(%s) / %s@%.2f(%s) Sum=%.4f Margin=%.2f%% Net=%.2f",
		o.ID[:8],
		o.EventName,
		o.MarketName,
		o.Leg1.Selection, o.Leg1.Odds, o.Leg1.Exchange,
		o.Leg2.Selection, o.Leg2.Odds, o.Leg2.Exchange,
		o.ImpliedSum,
		o.ProfitMargin,
		o.NetProfit,
	)
}
