package arbitrage

import (
	"time"

	"github.com/mkirwin/exchange-arb/pkg/types"
)

// CreateTestOpportunity creates a test opportunity with realistic
// numbers. Test helper shared with the storage package to avoid import
// cycles.
func CreateTestOpportunity(id string, eventName string) *Opportunity {
	return &Opportunity{
		ID:         id,
		EventName:  eventName,
		MarketName: "Match Odds",
		Sport:      types.SportTennis,
		DetectedAt: time.Now(),
		Leg1: Leg{
			Selection: "N. Djokovic",
			Exchange:  "smarkets",
			Odds:      2.10,
			Stake:     487.80,
			Liquidity: 500,
			Return:    1024.39,
		},
		Leg2: Leg{
			Selection: "Federer",
			Exchange:  "matchbook",
			Odds:      2.20,
			Stake:     512.20,
			Liquidity: 800,
			Return:    1126.83,
		},
		ImpliedSum:      0.9307,
		ProfitMargin:    6.93,
		ROI:             2.44,
		TotalStake:      1000,
		NetProfit:       24.39,
		ConfigThreshold: 0.98,
	}
}
