package exchange

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mkirwin/exchange-arb/pkg/types"
	"go.uber.org/zap"
)

func newTestSmarketsClient(baseURL string, minLiquidity float64) *SmarketsClient {
	return NewSmarketsClient(&SmarketsConfig{
		BaseURL:      baseURL,
		Timeout:      5 * time.Second,
		MinLiquidity: minLiquidity,
		EventLimit:   50,
		Logger:       zap.NewNop(),
	})
}

func TestSmarketsClient_GetEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events/" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("sport_id"); got != "tennis" {
			t.Errorf("expected sport_id=tennis, got %q", got)
		}
		if got := r.URL.Query().Get("state"); got != "live" {
			t.Errorf("expected state=live, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"events": [
			{"id": "ev-1", "name": "N. Djokovic vs R. Federer", "sport_id": "tennis", "start_datetime": "2026-08-28T14:00:00Z", "state": "live"},
			{"id": "ev-2", "name": "Nadal vs Murray", "sport_id": "tennis", "start_datetime": "2026-08-28T16:00:00Z", "state": "live"}
		]}`))
	}))
	defer server.Close()

	client := newTestSmarketsClient(server.URL, 100)

	events, err := client.GetEvents(context.Background(), types.SportTennis)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ID != "ev-1" || events[0].Exchange != Smarkets {
		t.Errorf("unexpected first event: %+v", events[0])
	}
	if events[0].StartTime.IsZero() {
		t.Error("expected parsed start time")
	}
}

func TestSmarketsClient_GetEvents_FetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestSmarketsClient(server.URL, 100)

	_, err := client.GetEvents(context.Background(), types.SportTennis)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var fetchErr *types.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %T: %v", err, err)
	}
	if fetchErr.Exchange != Smarkets || fetchErr.Op != "events" {
		t.Errorf("unexpected error fields: %+v", fetchErr)
	}
}

func TestSmarketsClient_GetMarkets_FiltersNonLive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events/ev-1/markets/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"markets": [
			{"id": "mk-1", "name": "Match Odds", "state": "live"},
			{"id": "mk-2", "name": "Correct Score", "state": "suspended"}
		]}`))
	}))
	defer server.Close()

	client := newTestSmarketsClient(server.URL, 100)
	event := types.Event{ID: "ev-1", Name: "Djokovic v Federer", Sport: types.SportTennis, Exchange: Smarkets}

	markets, err := client.GetMarkets(context.Background(), event)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(markets) != 1 {
		t.Fatalf("expected 1 live market, got %d", len(markets))
	}
	if markets[0].ID != "mk-1" {
		t.Errorf("unexpected market: %+v", markets[0])
	}

	// Event metadata is denormalized onto the market.
	if markets[0].EventName != "Djokovic v Federer" || markets[0].Sport != types.SportTennis {
		t.Errorf("event metadata not denormalized: %+v", markets[0])
	}
}

func TestSmarketsClient_GetOdds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/markets/mk-1/contracts/":
			w.Write([]byte(`{"contracts": [
				{"id": "ct-1", "name": "N. Djokovic"},
				{"id": "ct-2", "name": "R. Federer"},
				{"id": "ct-3", "name": "Thin Market"}
			]}`))
		case "/contracts/ct-1/prices/":
			// 210 / 100 = 2.10 decimal odds, 50000 / 100 = 500 liquidity.
			w.Write([]byte(`{"buys": [{"odds": 210, "quantity": 50000}]}`))
		case "/contracts/ct-2/prices/":
			w.Write([]byte(`{"buys": [{"odds": 205, "quantity": 30000}]}`))
		case "/contracts/ct-3/prices/":
			// Liquidity 50 is below the 100 minimum.
			w.Write([]byte(`{"buys": [{"odds": 500, "quantity": 5000}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := newTestSmarketsClient(server.URL, 100)
	market := types.Market{
		ID: "mk-1", Name: "Match Odds", EventID: "ev-1",
		Exchange: Smarkets, EventName: "Djokovic v Federer", Sport: types.SportTennis,
	}

	odds, err := client.GetOdds(context.Background(), market)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(odds) != 2 {
		t.Fatalf("expected 2 quotes after liquidity filter, got %d", len(odds))
	}
	if odds[0].Odds != 2.10 || odds[0].Liquidity != 500 {
		t.Errorf("price scaling wrong: %+v", odds[0])
	}
	if odds[0].Selection != "N. Djokovic" {
		t.Errorf("original selection not preserved: %q", odds[0].Selection)
	}
	if odds[0].MarketName != "Match Odds" || odds[0].EventName != "Djokovic v Federer" {
		t.Errorf("market metadata not denormalized: %+v", odds[0])
	}
}

func TestSmarketsClient_GetOdds_PartialPriceFailure(t *testing.T) {
	// One contract failing to price must not fail the whole market.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/markets/mk-1/contracts/":
			w.Write([]byte(`{"contracts": [
				{"id": "ct-1", "name": "Djokovic"},
				{"id": "ct-2", "name": "Federer"}
			]}`))
		case "/contracts/ct-1/prices/":
			http.Error(w, "boom", http.StatusInternalServerError)
		case "/contracts/ct-2/prices/":
			w.Write([]byte(`{"buys": [{"odds": 200, "quantity": 20000}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := newTestSmarketsClient(server.URL, 100)
	market := types.Market{ID: "mk-1", Name: "Match Odds"}

	odds, err := client.GetOdds(context.Background(), market)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(odds) != 1 {
		t.Fatalf("expected 1 quote, got %d", len(odds))
	}
	if odds[0].Selection != "Federer" {
		t.Errorf("unexpected surviving quote: %+v", odds[0])
	}
}
