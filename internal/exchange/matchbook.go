package exchange

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/mkirwin/exchange-arb/pkg/cache"
	"github.com/mkirwin/exchange-arb/pkg/types"
	"go.uber.org/zap"
)

// matchbookSportIDs maps sports to Matchbook's numeric sport
// identifiers.
var matchbookSportIDs = map[types.Sport]int{
	types.SportTennis:     325,
	types.SportFootball:   11,
	types.SportBasketball: 18,
}

// sessionCacheKey is the cache key under which the advisory session
// token is stored.
const sessionCacheKey = "matchbook-session-token"

// MatchbookClient fetches live data from the Matchbook API. Matchbook
// requires a session token obtained by logging in with account
// credentials.
//
// The session token is advisory: it is cached opportunistically but
// never assumed valid. Any authorized request that comes back 401
// re-authenticates and retries exactly once; a second failure surfaces
// as an AuthError and the fetch degrades to an empty result upstream.
type MatchbookClient struct {
	baseURL      string
	httpClient   *http.Client
	username     string
	password     string
	minLiquidity float64
	eventLimit   int
	sessionCache cache.Cache
	sessionTTL   time.Duration
	logger       *zap.Logger
}

// MatchbookConfig holds Matchbook client configuration.
type MatchbookConfig struct {
	BaseURL      string
	Username     string
	Password     string
	Timeout      time.Duration
	MinLiquidity float64
	EventLimit   int
	SessionCache cache.Cache
	SessionTTL   time.Duration
	Logger       *zap.Logger
}

// NewMatchbookClient creates a new Matchbook API client.
func NewMatchbookClient(cfg *MatchbookConfig) *MatchbookClient {
	return &MatchbookClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		username:     cfg.Username,
		password:     cfg.Password,
		minLiquidity: cfg.MinLiquidity,
		eventLimit:   cfg.EventLimit,
		sessionCache: cfg.SessionCache,
		sessionTTL:   cfg.SessionTTL,
		logger:       cfg.Logger,
	}
}

// Name returns the exchange identifier.
func (c *MatchbookClient) Name() string {
	return Matchbook
}

type matchbookEvent struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	SportID       float64 `json:"sport-id"`
	Start         string  `json:"start"`
	InRunningFlag bool    `json:"in-running-flag"`
}

type matchbookEventsResponse struct {
	Events []matchbookEvent `json:"events"`
}

// GetEvents returns in-running events for one sport.
func (c *MatchbookClient) GetEvents(ctx context.Context, sport types.Sport) ([]types.Event, error) {
	params := url.Values{}
	params.Set("status", "open")
	params.Set("offset", "0")
	params.Set("per-page", strconv.Itoa(c.eventLimit))
	if sportID, ok := matchbookSportIDs[sport]; ok {
		params.Set("sport-ids", strconv.Itoa(sportID))
	}

	requestURL := fmt.Sprintf("%s/lookups/events?%s", c.baseURL, params.Encode())

	var resp matchbookEventsResponse
	err := c.getAuthorizedJSON(ctx, requestURL, &resp)
	if err != nil {
		FetchErrorsTotal.WithLabelValues(Matchbook, "events").Inc()
		return nil, err
	}

	var events []types.Event
	for _, e := range resp.Events {
		if !e.InRunningFlag {
			continue
		}
		startTime, _ := time.Parse(time.RFC3339, e.Start)
		events = append(events, types.Event{
			ID:        strconv.FormatInt(e.ID, 10),
			Name:      e.Name,
			Sport:     sport,
			StartTime: startTime,
			Exchange:  Matchbook,
		})
	}

	EventsFetchedTotal.WithLabelValues(Matchbook).Add(float64(len(events)))
	c.logger.Debug("matchbook-events-fetched",
		zap.String("sport", string(sport)),
		zap.Int("count", len(events)))

	return events, nil
}

type matchbookMarket struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type matchbookMarketsResponse struct {
	Markets []matchbookMarket `json:"markets"`
}

// GetMarkets returns open markets for an event.
func (c *MatchbookClient) GetMarkets(ctx context.Context, event types.Event) ([]types.Market, error) {
	requestURL := fmt.Sprintf("%s/events/%s/markets", c.baseURL, event.ID)

	var resp matchbookMarketsResponse
	err := c.getAuthorizedJSON(ctx, requestURL, &resp)
	if err != nil {
		FetchErrorsTotal.WithLabelValues(Matchbook, "markets").Inc()
		return nil, err
	}

	markets := make([]types.Market, 0, len(resp.Markets))
	for _, m := range resp.Markets {
		if m.Status != "open" {
			continue
		}
		markets = append(markets, types.Market{
			ID:        strconv.FormatInt(m.ID, 10),
			Name:      m.Name,
			EventID:   event.ID,
			Exchange:  Matchbook,
			EventName: event.Name,
			Sport:     event.Sport,
		})
	}

	return markets, nil
}

type matchbookPrice struct {
	Side            string  `json:"side"`
	Odds            float64 `json:"odds"`
	AvailableAmount float64 `json:"available-amount"`
}

type matchbookRunner struct {
	ID     int64            `json:"id"`
	Name   string           `json:"name"`
	Status string           `json:"status"`
	Prices []matchbookPrice `json:"prices"`
}

type matchbookRunnersResponse struct {
	Runners []matchbookRunner `json:"runners"`
}

// GetOdds returns the best back price per open runner in a market.
func (c *MatchbookClient) GetOdds(ctx context.Context, market types.Market) ([]types.Odd, error) {
	requestURL := fmt.Sprintf("%s/markets/%s/runners", c.baseURL, market.ID)

	var resp matchbookRunnersResponse
	err := c.getAuthorizedJSON(ctx, requestURL, &resp)
	if err != nil {
		FetchErrorsTotal.WithLabelValues(Matchbook, "odds").Inc()
		return nil, err
	}

	var odds []types.Odd
	for _, runner := range resp.Runners {
		if runner.Status != "open" {
			continue
		}

		best, ok := bestBackPrice(runner.Prices, c.minLiquidity)
		if !ok {
			continue
		}

		odds = append(odds, types.Odd{
			Selection:  runner.Name,
			Odds:       best.Odds,
			Liquidity:  best.AvailableAmount,
			Exchange:   Matchbook,
			MarketID:   market.ID,
			MarketName: market.Name,
			EventName:  market.EventName,
			Sport:      market.Sport,
		})
	}

	OddsFetchedTotal.WithLabelValues(Matchbook).Add(float64(len(odds)))

	return odds, nil
}

// bestBackPrice picks the highest back odds with sufficient liquidity.
func bestBackPrice(prices []matchbookPrice, minLiquidity float64) (matchbookPrice, bool) {
	var best matchbookPrice
	found := false
	for _, p := range prices {
		if p.Side != "back" {
			continue
		}
		if p.Odds <= 1 || p.AvailableAmount < minLiquidity {
			continue
		}
		if !found || p.Odds > best.Odds {
			best = p
			found = true
		}
	}
	return best, found
}

type matchbookLoginResponse struct {
	SessionToken string `json:"session-token"`
}

// login authenticates against Matchbook and caches the session token.
func (c *MatchbookClient) login(ctx context.Context) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"username": c.username,
		"password": c.password,
	})
	if err != nil {
		return "", fmt.Errorf("marshal login payload: %w", err)
	}

	requestURL := fmt.Sprintf("%s/security/session", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "exchange-arb/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &types.AuthError{Exchange: Matchbook, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", &types.AuthError{
			Exchange: Matchbook,
			Err:      fmt.Errorf("login status %d: %s", resp.StatusCode, string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &types.AuthError{Exchange: Matchbook, Err: fmt.Errorf("read login response: %w", err)}
	}

	var loginResp matchbookLoginResponse
	err = json.Unmarshal(body, &loginResp)
	if err != nil {
		return "", &types.AuthError{Exchange: Matchbook, Err: fmt.Errorf("unmarshal login response: %w", err)}
	}

	if loginResp.SessionToken == "" {
		return "", &types.AuthError{Exchange: Matchbook, Err: fmt.Errorf("empty session token")}
	}

	if c.sessionCache != nil {
		c.sessionCache.Set(sessionCacheKey, loginResp.SessionToken, c.sessionTTL)
	}

	SessionLoginsTotal.Inc()
	c.logger.Info("matchbook-session-established")

	return loginResp.SessionToken, nil
}

// sessionToken returns a cached session token when one exists, logging
// in otherwise. The cached value is advisory only.
func (c *MatchbookClient) sessionToken(ctx context.Context) (string, error) {
	if c.sessionCache != nil {
		if value, found := c.sessionCache.Get(sessionCacheKey); found {
			if token, ok := value.(string); ok && token != "" {
				return token, nil
			}
		}
	}

	return c.login(ctx)
}

// getAuthorizedJSON performs an authorized GET. A 401 invalidates the
// cached session and retries exactly once after re-authenticating;
// persistent credential failure terminates instead of looping.
func (c *MatchbookClient) getAuthorizedJSON(ctx context.Context, requestURL string, out any) error {
	token, err := c.sessionToken(ctx)
	if err != nil {
		return err
	}

	status, err := c.getJSONWithToken(ctx, requestURL, token, out)
	if err == nil {
		return nil
	}
	if status != http.StatusUnauthorized {
		return &types.FetchError{Exchange: Matchbook, Op: "request", Err: err}
	}

	// Session expired: drop the cached token and retry once.
	AuthRetriesTotal.Inc()
	c.logger.Warn("matchbook-session-expired-retrying")
	if c.sessionCache != nil {
		c.sessionCache.Delete(sessionCacheKey)
	}

	token, err = c.login(ctx)
	if err != nil {
		return err
	}

	status, err = c.getJSONWithToken(ctx, requestURL, token, out)
	if err == nil {
		return nil
	}
	if status == http.StatusUnauthorized {
		return &types.AuthError{Exchange: Matchbook, Err: fmt.Errorf("still unauthorized after re-login")}
	}
	return &types.FetchError{Exchange: Matchbook, Op: "request", Err: err}
}

// getJSONWithToken performs one GET with the session token attached,
// returning the HTTP status alongside any error.
func (c *MatchbookClient) getJSONWithToken(ctx context.Context, requestURL string, token string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "exchange-arb/1.0")
	req.Header.Set("session-token", token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response body: %w", err)
	}

	err = json.Unmarshal(body, out)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("unmarshal response: %w", err)
	}

	return resp.StatusCode, nil
}
