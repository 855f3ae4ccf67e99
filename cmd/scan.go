package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/mkirwin/exchange-arb/internal/app"
	"github.com/mkirwin/exchange-arb/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a single scan cycle and exit",
	Long: `Runs one scan cycle against both exchanges, prints any
opportunities found, and exits. Useful for cron-style scheduling or for
checking credentials and connectivity.`,
	RunE: scanOnce,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().Duration("timeout", 2*time.Minute, "Abort the scan after this long")
}

func scanOnce(cmd *cobra.Command, args []string) error {
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

	timeout, _ := cmd.Flags().GetDuration("timeout")

	application, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}
	defer func() {
		_ = application.Shutdown()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	opps, err := application.ScanOnce(ctx)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	fmt.Println(scanSummary(len(opps), time.Since(start)))

	return nil
}

// scanSummary formats the one-line result of a single scan cycle.
func scanSummary(count int, elapsed time.Duration) string {
	if count == 0 {
		return fmt.Sprintf("No arbitrage opportunities found (%s)", elapsed.Round(time.Millisecond))
	}
	return fmt.Sprintf("Found %d arbitrage opportunities in %s", count, elapsed.Round(time.Millisecond))
}
