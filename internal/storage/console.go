package storage

import (
	"context"
	"fmt"

	"github.com/mkirwin/exchange-arb/internal/arbitrage"
	"go.uber.org/zap"
)

// ConsoleStorage implements Storage by pretty-printing to console.
type ConsoleStorage struct {
	logger *zap.Logger
}

// NewConsoleStorage creates a new console storage.
func NewConsoleStorage(logger *zap.Logger) *ConsoleStorage {
	logger.Info("console-storage-initialized")
	return &ConsoleStorage{
		logger: logger,
	}
}

// StoreOpportunity pretty-prints an arbitrage opportunity to console.
func (c *ConsoleStorage) StoreOpportunity(ctx context.Context, opp *arbitrage.Opportunity) error {
	fmt.Println("\n" + "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("🎯 ARBITRAGE OPPORTUNITY DETECTED\n")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("ID:       %s\n", opp.ID[:8])
	fmt.Printf("Event:    %s (%s)\n", opp.EventName, opp.Sport)
	fmt.Printf("Market:   %s\n", opp.MarketName)
	fmt.Printf("Time:     %s\n", opp.DetectedAt.Format("2006-01-02 15:04:05"))
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("📊 LEGS\n")
	fmt.Printf("  %-12s %s @ %.2f, stake £%.2f (liquidity £%.2f)\n",
		opp.Leg1.Exchange+":", opp.Leg1.Selection, opp.Leg1.Odds, opp.Leg1.Stake, opp.Leg1.Liquidity)
	fmt.Printf("  %-12s %s @ %.2f, stake £%.2f (liquidity £%.2f)\n",
		opp.Leg2.Exchange+":", opp.Leg2.Selection, opp.Leg2.Odds, opp.Leg2.Stake, opp.Leg2.Liquidity)
	fmt.Printf("  Implied sum:  %.4f (threshold: %.4f)\n", opp.ImpliedSum, opp.ConfigThreshold)
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("💰 PROFIT ANALYSIS\n")
	fmt.Printf("  Total Stake:     £%.2f\n", opp.TotalStake)
	fmt.Printf("  Profit Margin:   %.2f%%\n", opp.ProfitMargin)
	fmt.Printf("  Net Profit:      £%.2f (ROI %.2f%%)\n", opp.NetProfit, opp.ROI)
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	return nil
}

// Close is a no-op for console storage.
func (c *ConsoleStorage) Close() error {
	c.logger.Info("closing-console-storage")
	return nil
}
