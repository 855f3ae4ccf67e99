package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "exchange-arb",
	Short: "Cross-exchange betting arbitrage scanner",
	Long: `Cross-exchange arbitrage scanner for betting exchanges.

The scanner fetches live events from Smarkets and Matchbook, matches
events and markets that denote the same real-world fixture, and looks
for two-outcome markets where backing both sides across the exchanges
locks in a profit after commission.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
