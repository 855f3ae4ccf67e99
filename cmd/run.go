package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/mkirwin/exchange-arb/internal/app"
	"github.com/mkirwin/exchange-arb/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the continuous arbitrage scanner",
	Long: `Starts the arbitrage scanner, which will repeatedly:
1. Fetch live events per sport from Smarkets and Matchbook
2. Match events and markets across the exchanges
3. Evaluate two-outcome markets for risk-free price gaps
4. Store qualifying opportunities and expose them over HTTP`,
	RunE: runScanner,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(runCmd)
}

func runScanner(cmd *cobra.Command, args []string) error {
	// Optional .env file for local development
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	application, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	err = application.Run()
	if err != nil {
		return fmt.Errorf("run app: %w", err)
	}

	return nil
}
