package app

import (
	"context"
	"sync"

	"github.com/mkirwin/exchange-arb/internal/arbitrage"
	"github.com/mkirwin/exchange-arb/internal/scanner"
	"github.com/mkirwin/exchange-arb/internal/storage"
	"github.com/mkirwin/exchange-arb/pkg/cache"
	"github.com/mkirwin/exchange-arb/pkg/config"
	"github.com/mkirwin/exchange-arb/pkg/healthprobe"
	"github.com/mkirwin/exchange-arb/pkg/httpserver"
	"go.uber.org/zap"
)

// App is the main application orchestrator.
type App struct {
	cfg           *config.Config
	logger        *zap.Logger
	healthChecker *healthprobe.HealthChecker
	httpServer    *httpserver.Server
	scanner       *scanner.Scanner
	storage       storage.Storage
	sessionCache  cache.Cache
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

// ScanOnce runs a single scan cycle without starting the HTTP server
// or the scan loop.
func (a *App) ScanOnce(ctx context.Context) ([]*arbitrage.Opportunity, error) {
	return a.scanner.Scan(ctx)
}
