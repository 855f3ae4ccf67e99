package app

import (
	"context"
	"fmt"

	"github.com/mkirwin/exchange-arb/internal/arbitrage"
	"github.com/mkirwin/exchange-arb/internal/exchange"
	"github.com/mkirwin/exchange-arb/internal/matching"
	"github.com/mkirwin/exchange-arb/internal/scanner"
	"github.com/mkirwin/exchange-arb/internal/storage"
	"github.com/mkirwin/exchange-arb/pkg/cache"
	"github.com/mkirwin/exchange-arb/pkg/config"
	"github.com/mkirwin/exchange-arb/pkg/healthprobe"
	"github.com/mkirwin/exchange-arb/pkg/httpserver"
	"go.uber.org/zap"
)

// New creates a new application instance.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())

	healthChecker := setupHealthChecker()

	// Session cache backs Matchbook's advisory session token.
	sessionCache, err := setupCache(logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup cache: %w", err)
	}

	clients := setupExchangeClients(cfg, logger, sessionCache)

	arbStorage, err := setupStorage(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup storage: %w", err)
	}

	scn := setupScanner(cfg, logger, clients, arbStorage)

	httpServer := setupHTTPServer(cfg, logger, healthChecker, scn)

	return &App{
		cfg:           cfg,
		logger:        logger,
		healthChecker: healthChecker,
		httpServer:    httpServer,
		scanner:       scn,
		storage:       arbStorage,
		sessionCache:  sessionCache,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func setupHealthChecker() *healthprobe.HealthChecker {
	return healthprobe.New()
}

func setupCache(logger *zap.Logger) (cache.Cache, error) {
	return cache.NewRistrettoCache(&cache.RistrettoConfig{
		NumCounters: 1000, // 10x expected max items; only a handful of session tokens live here
		MaxCost:     100,
		BufferItems: 64,
		Logger:      logger,
	})
}

func setupExchangeClients(cfg *config.Config, logger *zap.Logger, sessionCache cache.Cache) []exchange.Client {
	smarkets := exchange.NewSmarketsClient(&exchange.SmarketsConfig{
		BaseURL:      cfg.SmarketsBaseURL,
		Timeout:      cfg.FetchTimeout,
		MinLiquidity: cfg.MinLiquidity,
		EventLimit:   cfg.EventLimit,
		Logger:       logger,
	})

	matchbook := exchange.NewMatchbookClient(&exchange.MatchbookConfig{
		BaseURL:      cfg.MatchbookBaseURL,
		Username:     cfg.MatchbookUsername,
		Password:     cfg.MatchbookPassword,
		Timeout:      cfg.FetchTimeout,
		MinLiquidity: cfg.MinLiquidity,
		EventLimit:   cfg.EventLimit,
		SessionCache: sessionCache,
		SessionTTL:   cfg.SessionCacheTTL,
		Logger:       logger,
	})

	return []exchange.Client{smarkets, matchbook}
}

func setupStorage(cfg *config.Config, logger *zap.Logger) (storage.Storage, error) {
	if cfg.StorageMode == "postgres" {
		pgStorage, err := storage.NewPostgresStorage(&storage.PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSL,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create postgres storage: %w", err)
		}
		return pgStorage, nil
	}

	return storage.NewConsoleStorage(logger), nil
}

func setupScanner(
	cfg *config.Config,
	logger *zap.Logger,
	clients []exchange.Client,
	arbStorage storage.Storage,
) *scanner.Scanner {
	calculator := arbitrage.New(arbitrage.Config{
		Threshold:    cfg.Threshold,
		MinLiquidity: cfg.MinLiquidity,
		TotalStake:   cfg.TotalStake,
		Commission:   cfg.Commission,
		Logger:       logger,
	})

	return scanner.New(&scanner.Config{
		Clients:       clients,
		EventMatcher:  matching.NewEventMatcher(logger),
		MarketMatcher: matching.NewMarketMatcher(logger),
		Calculator:    calculator,
		Storage:       arbStorage,
		Sports:        cfg.Sports,
		ScanInterval:  cfg.ScanInterval,
		Logger:        logger,
	})
}

func setupHTTPServer(
	cfg *config.Config,
	logger *zap.Logger,
	healthChecker *healthprobe.HealthChecker,
	scn *scanner.Scanner,
) *httpserver.Server {
	return httpserver.New(&httpserver.Config{
		Port:          cfg.HTTPPort,
		Logger:        logger,
		HealthChecker: healthChecker,
		Opportunities: scn,
	})
}
