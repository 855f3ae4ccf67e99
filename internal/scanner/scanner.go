package scanner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mkirwin/exchange-arb/internal/arbitrage"
	"github.com/mkirwin/exchange-arb/internal/exchange"
	"github.com/mkirwin/exchange-arb/internal/matching"
	"github.com/mkirwin/exchange-arb/internal/storage"
	"github.com/mkirwin/exchange-arb/pkg/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Scanner runs the cross-exchange arbitrage pipeline: fetch live events
// from every exchange, cluster them into cross-exchange groups, pair up
// equivalent markets, and hand matched odds to the calculator.
//
// A scan cycle degrades rather than aborts: one exchange failing to
// answer produces an empty contribution from that exchange, and the
// cycle continues with whatever data arrived.
type Scanner struct {
	clients       []exchange.Client
	eventMatcher  *matching.EventMatcher
	marketMatcher *matching.MarketMatcher
	calculator    *arbitrage.Calculator
	store         storage.Storage
	sports        []types.Sport
	interval      time.Duration
	logger        *zap.Logger

	mu       sync.RWMutex
	latest   []*arbitrage.Opportunity
	lastScan time.Time
}

// Config holds scanner configuration.
type Config struct {
	Clients       []exchange.Client
	EventMatcher  *matching.EventMatcher
	MarketMatcher *matching.MarketMatcher
	Calculator    *arbitrage.Calculator
	Storage       storage.Storage
	Sports        []types.Sport
	ScanInterval  time.Duration
	Logger        *zap.Logger
}

// New creates a new scanner.
func New(cfg *Config) *Scanner {
	return &Scanner{
		clients:       cfg.Clients,
		eventMatcher:  cfg.EventMatcher,
		marketMatcher: cfg.MarketMatcher,
		calculator:    cfg.Calculator,
		store:         cfg.Storage,
		sports:        cfg.Sports,
		interval:      cfg.ScanInterval,
		logger:        cfg.Logger,
	}
}

// Run starts the scan loop and blocks until the context is cancelled.
func (s *Scanner) Run(ctx context.Context) error {
	s.logger.Info("scanner-starting",
		zap.Duration("scan-interval", s.interval),
		zap.Int("exchanges", len(s.clients)),
		zap.Int("sports", len(s.sports)))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Initial scan
	_, err := s.Scan(ctx)
	if err != nil {
		s.logger.Error("initial-scan-failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scanner-stopping")
			return ctx.Err()
		case <-ticker.C:
			_, err := s.Scan(ctx)
			if err != nil {
				s.logger.Error("scan-failed", zap.Error(err))
			}
		}
	}
}

// Scan runs one full scan cycle and returns the opportunities found.
// Panics in the matching and evaluation stages are recovered here;
// panics inside fetch goroutines are recovered on those goroutines and
// degrade to empty fetches. Either way a malformed exchange response
// cannot kill the loop.
func (s *Scanner) Scan(ctx context.Context) (opps []*arbitrage.Opportunity, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			ScanPanicsTotal.Inc()
			s.logger.Error("scan-panic-recovered", zap.Any("panic", r))
			err = fmt.Errorf("scan panic: %v", r)
		}
		ScanCyclesTotal.Inc()
		ScanDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	events, err := s.fetchEvents(ctx)
	if err != nil {
		return nil, err
	}

	eventGroups := s.eventMatcher.Match(events)
	s.logger.Debug("events-matched",
		zap.Int("events", len(events)),
		zap.Int("groups", len(eventGroups)))

	for _, eventGroup := range eventGroups {
		if ctx.Err() != nil {
			return opps, ctx.Err()
		}

		groupOpps := s.scanEventGroup(ctx, eventGroup)
		opps = append(opps, groupOpps...)
	}

	for _, opp := range opps {
		storeErr := s.store.StoreOpportunity(ctx, opp)
		if storeErr != nil {
			StoreErrorsTotal.Inc()
			s.logger.Error("store-opportunity-failed",
				zap.String("opportunity-id", opp.ID),
				zap.Error(storeErr))
		}
	}

	s.mu.Lock()
	s.latest = opps
	s.lastScan = time.Now()
	s.mu.Unlock()

	LastScanOpportunities.Set(float64(len(opps)))
	s.logger.Info("scan-complete",
		zap.Int("events", len(events)),
		zap.Int("event-groups", len(eventGroups)),
		zap.Int("opportunities", len(opps)),
		zap.Duration("duration", time.Since(start)))

	return opps, nil
}

// Latest returns the opportunities found by the most recent cycle and
// when that cycle finished.
func (s *Scanner) Latest() ([]*arbitrage.Opportunity, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.lastScan
}

// fetchEvents pulls live events for every sport from every exchange in
// parallel. Each fetch task writes into its own slot so no locking is
// needed; a failed fetch contributes an empty slice.
func (s *Scanner) fetchEvents(ctx context.Context) ([]types.Event, error) {
	type task struct {
		client exchange.Client
		sport  types.Sport
	}

	var tasks []task
	for _, client := range s.clients {
		for _, sport := range s.sports {
			tasks = append(tasks, task{client: client, sport: sport})
		}
	}

	results := make([][]types.Event, len(tasks))
	g, gctx := errgroup.WithContext(ctx)

	for i, tk := range tasks {
		i, tk := i, tk
		g.Go(func() error {
			defer s.recoverFetchPanic(tk.client.Name(), "events")
			events, err := tk.client.GetEvents(gctx, tk.sport)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.logger.Warn("events-fetch-failed",
					zap.String("exchange", tk.client.Name()),
					zap.String("sport", string(tk.sport)),
					zap.Error(err))
				return nil
			}
			results[i] = events
			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return nil, err
	}

	var events []types.Event
	for _, r := range results {
		events = append(events, r...)
	}

	return events, nil
}

// scanEventGroup fetches and matches markets for one cross-exchange
// event group, then evaluates every matched market pair.
func (s *Scanner) scanEventGroup(ctx context.Context, eventGroup types.EventGroup) []*arbitrage.Opportunity {
	markets, err := s.fetchMarkets(ctx, eventGroup.Events)
	if err != nil {
		return nil
	}

	marketGroups := s.marketMatcher.Match(markets)

	var opps []*arbitrage.Opportunity
	for _, marketGroup := range marketGroups {
		if ctx.Err() != nil {
			return opps
		}

		odds, err := s.fetchOdds(ctx, marketGroup.Markets)
		if err != nil {
			return opps
		}

		opps = append(opps, s.calculator.Evaluate(marketGroup, odds)...)
	}

	return opps
}

// fetchMarkets pulls markets for each event in parallel.
func (s *Scanner) fetchMarkets(ctx context.Context, events []types.Event) ([]types.Market, error) {
	results := make([][]types.Market, len(events))
	g, gctx := errgroup.WithContext(ctx)

	for i, event := range events {
		i, event := i, event
		g.Go(func() error {
			defer s.recoverFetchPanic(event.Exchange, "markets")
			client, ok := s.clientFor(event.Exchange)
			if !ok {
				return nil
			}
			markets, err := client.GetMarkets(gctx, event)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.logger.Warn("markets-fetch-failed",
					zap.String("exchange", event.Exchange),
					zap.String("event-id", event.ID),
					zap.Error(err))
				return nil
			}
			results[i] = markets
			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return nil, err
	}

	var markets []types.Market
	for _, r := range results {
		markets = append(markets, r...)
	}

	return markets, nil
}

// fetchOdds pulls quotes for each market in parallel.
func (s *Scanner) fetchOdds(ctx context.Context, markets []types.Market) ([]types.Odd, error) {
	results := make([][]types.Odd, len(markets))
	g, gctx := errgroup.WithContext(ctx)

	for i, market := range markets {
		i, market := i, market
		g.Go(func() error {
			defer s.recoverFetchPanic(market.Exchange, "odds")
			client, ok := s.clientFor(market.Exchange)
			if !ok {
				return nil
			}
			odds, err := client.GetOdds(gctx, market)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.logger.Warn("odds-fetch-failed",
					zap.String("exchange", market.Exchange),
					zap.String("market-id", market.ID),
					zap.Error(err))
				return nil
			}
			results[i] = odds
			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return nil, err
	}

	var odds []types.Odd
	for _, r := range results {
		odds = append(odds, r...)
	}

	return odds, nil
}

// recoverFetchPanic turns a panicking client into a degraded empty
// fetch. It must run on the fetch goroutine itself: a recover in Scan
// cannot reach a panic raised inside the errgroup.
func (s *Scanner) recoverFetchPanic(exchangeName, op string) {
	if r := recover(); r != nil {
		ScanPanicsTotal.Inc()
		s.logger.Error("fetch-panic-recovered",
			zap.String("exchange", exchangeName),
			zap.String("op", op),
			zap.Any("panic", r))
	}
}

func (s *Scanner) clientFor(name string) (exchange.Client, bool) {
	for _, c := range s.clients {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}
