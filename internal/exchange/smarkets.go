package exchange

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	json "github.com/goccy/go-json"
	"github.com/mkirwin/exchange-arb/pkg/types"
	"go.uber.org/zap"
)

// smarketsPriceScale converts Smarkets' integer price representation
// (odds and quantities are reported multiplied by 100) to decimals.
const smarketsPriceScale = 100.0

// SmarketsClient fetches live data from the Smarkets public API. No
// authentication is required.
type SmarketsClient struct {
	baseURL      string
	httpClient   *http.Client
	minLiquidity float64
	eventLimit   int
	logger       *zap.Logger
}

// SmarketsConfig holds Smarkets client configuration.
type SmarketsConfig struct {
	BaseURL      string
	Timeout      time.Duration
	MinLiquidity float64
	EventLimit   int
	Logger       *zap.Logger
}

// NewSmarketsClient creates a new Smarkets API client.
func NewSmarketsClient(cfg *SmarketsConfig) *SmarketsClient {
	return &SmarketsClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		minLiquidity: cfg.MinLiquidity,
		eventLimit:   cfg.EventLimit,
		logger:       cfg.Logger,
	}
}

// Name returns the exchange identifier.
func (c *SmarketsClient) Name() string {
	return Smarkets
}

type smarketsEvent struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SportID       string `json:"sport_id"`
	StartDatetime string `json:"start_datetime"`
	State         string `json:"state"`
}

type smarketsEventsResponse struct {
	Events []smarketsEvent `json:"events"`
}

// GetEvents returns live events for one sport.
func (c *SmarketsClient) GetEvents(ctx context.Context, sport types.Sport) ([]types.Event, error) {
	params := url.Values{}
	params.Set("state", "live")
	params.Set("limit", fmt.Sprintf("%d", c.eventLimit))
	params.Set("sport_id", string(sport))

	requestURL := fmt.Sprintf("%s/events/?%s", c.baseURL, params.Encode())

	var resp smarketsEventsResponse
	err := c.getJSON(ctx, requestURL, &resp)
	if err != nil {
		FetchErrorsTotal.WithLabelValues(Smarkets, "events").Inc()
		return nil, &types.FetchError{Exchange: Smarkets, Op: "events", Err: err}
	}

	events := make([]types.Event, 0, len(resp.Events))
	for _, e := range resp.Events {
		startTime, _ := time.Parse(time.RFC3339, e.StartDatetime)
		events = append(events, types.Event{
			ID:        e.ID,
			Name:      e.Name,
			Sport:     sport,
			StartTime: startTime,
			Exchange:  Smarkets,
		})
	}

	EventsFetchedTotal.WithLabelValues(Smarkets).Add(float64(len(events)))
	c.logger.Debug("smarkets-events-fetched",
		zap.String("sport", string(sport)),
		zap.Int("count", len(events)))

	return events, nil
}

type smarketsMarket struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
}

type smarketsMarketsResponse struct {
	Markets []smarketsMarket `json:"markets"`
}

// GetMarkets returns live markets for an event.
func (c *SmarketsClient) GetMarkets(ctx context.Context, event types.Event) ([]types.Market, error) {
	requestURL := fmt.Sprintf("%s/events/%s/markets/", c.baseURL, event.ID)

	var resp smarketsMarketsResponse
	err := c.getJSON(ctx, requestURL, &resp)
	if err != nil {
		FetchErrorsTotal.WithLabelValues(Smarkets, "markets").Inc()
		return nil, &types.FetchError{Exchange: Smarkets, Op: "markets", Err: err}
	}

	markets := make([]types.Market, 0, len(resp.Markets))
	for _, m := range resp.Markets {
		if m.State != "live" {
			continue
		}
		markets = append(markets, types.Market{
			ID:        m.ID,
			Name:      m.Name,
			EventID:   event.ID,
			Exchange:  Smarkets,
			EventName: event.Name,
			Sport:     event.Sport,
		})
	}

	return markets, nil
}

type smarketsContract struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type smarketsContractsResponse struct {
	Contracts []smarketsContract `json:"contracts"`
}

type smarketsPrice struct {
	Odds     float64 `json:"odds"`
	Quantity float64 `json:"quantity"`
}

type smarketsPricesResponse struct {
	Buys []smarketsPrice `json:"buys"`
}

// GetOdds returns the best buy price per contract in a market. Quotes
// below the liquidity floor or at unbackable odds are dropped here, at
// the source.
func (c *SmarketsClient) GetOdds(ctx context.Context, market types.Market) ([]types.Odd, error) {
	contractsURL := fmt.Sprintf("%s/markets/%s/contracts/", c.baseURL, market.ID)

	var contractsResp smarketsContractsResponse
	err := c.getJSON(ctx, contractsURL, &contractsResp)
	if err != nil {
		FetchErrorsTotal.WithLabelValues(Smarkets, "odds").Inc()
		return nil, &types.FetchError{Exchange: Smarkets, Op: "odds", Err: err}
	}

	var odds []types.Odd
	for _, contract := range contractsResp.Contracts {
		pricesURL := fmt.Sprintf("%s/contracts/%s/prices/", c.baseURL, contract.ID)

		var pricesResp smarketsPricesResponse
		err := c.getJSON(ctx, pricesURL, &pricesResp)
		if err != nil {
			// One contract failing to price does not fail the market.
			c.logger.Debug("smarkets-prices-fetch-failed",
				zap.String("contract-id", contract.ID),
				zap.Error(err))
			FetchErrorsTotal.WithLabelValues(Smarkets, "odds").Inc()
			continue
		}

		if len(pricesResp.Buys) == 0 {
			continue
		}

		best := pricesResp.Buys[0]
		decimalOdds := best.Odds / smarketsPriceScale
		liquidity := best.Quantity / smarketsPriceScale

		if decimalOdds <= 1 || liquidity < c.minLiquidity {
			continue
		}

		odds = append(odds, types.Odd{
			Selection:  contract.Name,
			Odds:       decimalOdds,
			Liquidity:  liquidity,
			Exchange:   Smarkets,
			MarketID:   market.ID,
			MarketName: market.Name,
			EventName:  market.EventName,
			Sport:      market.Sport,
		})
	}

	OddsFetchedTotal.WithLabelValues(Smarkets).Add(float64(len(odds)))

	return odds, nil
}

// getJSON performs a GET request and decodes the JSON response body.
func (c *SmarketsClient) getJSON(ctx context.Context, requestURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "exchange-arb/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	err = json.Unmarshal(body, out)
	if err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
