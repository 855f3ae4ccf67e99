package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// MockSmarketsAPI is a mock HTTP server that simulates the Smarkets
// public API: events, markets, contracts and prices.
type MockSmarketsAPI struct {
	*httptest.Server
	Fixture *SmarketsFixture
	mu      sync.RWMutex
}

// NewMockSmarketsAPI creates a new mock Smarkets API server.
func NewMockSmarketsAPI(fixture *SmarketsFixture) *MockSmarketsAPI {
	mock := &MockSmarketsAPI{Fixture: fixture}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.RLock()
		defer mock.mu.RUnlock()

		w.Header().Set("Content-Type", "application/json")

		path := r.URL.Path
		switch {
		case path == "/events/":
			json.NewEncoder(w).Encode(map[string]interface{}{"events": mock.Fixture.Events})

		case strings.HasPrefix(path, "/events/") && strings.HasSuffix(path, "/markets/"):
			eventID := strings.TrimSuffix(strings.TrimPrefix(path, "/events/"), "/markets/")
			json.NewEncoder(w).Encode(map[string]interface{}{"markets": mock.Fixture.Markets[eventID]})

		case strings.HasPrefix(path, "/markets/") && strings.HasSuffix(path, "/contracts/"):
			marketID := strings.TrimSuffix(strings.TrimPrefix(path, "/markets/"), "/contracts/")
			json.NewEncoder(w).Encode(map[string]interface{}{"contracts": mock.Fixture.Contracts[marketID]})

		case strings.HasPrefix(path, "/contracts/") && strings.HasSuffix(path, "/prices/"):
			contractID := strings.TrimSuffix(strings.TrimPrefix(path, "/contracts/"), "/prices/")
			json.NewEncoder(w).Encode(map[string]interface{}{"buys": mock.Fixture.Prices[contractID]})

		default:
			http.NotFound(w, r)
		}
	})

	mock.Server = httptest.NewServer(handler)
	return mock
}

// MockMatchbookAPI is a mock HTTP server that simulates the Matchbook
// API, including the session login flow.
type MockMatchbookAPI struct {
	*httptest.Server
	Fixture      *MatchbookFixture
	SessionToken string

	mu         sync.RWMutex
	loginCount int
}

// NewMockMatchbookAPI creates a new mock Matchbook API server.
func NewMockMatchbookAPI(fixture *MatchbookFixture) *MockMatchbookAPI {
	mock := &MockMatchbookAPI{
		Fixture:      fixture,
		SessionToken: "mock-session-token",
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/security/session" && r.Method == http.MethodPost {
			mock.mu.Lock()
			mock.loginCount++
			mock.mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"session-token": mock.SessionToken})
			return
		}

		if r.Header.Get("session-token") != mock.SessionToken {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		mock.mu.RLock()
		defer mock.mu.RUnlock()

		w.Header().Set("Content-Type", "application/json")

		path := r.URL.Path
		switch {
		case path == "/lookups/events":
			json.NewEncoder(w).Encode(map[string]interface{}{"events": mock.Fixture.Events})

		case strings.HasPrefix(path, "/events/") && strings.HasSuffix(path, "/markets"):
			eventID := strings.TrimSuffix(strings.TrimPrefix(path, "/events/"), "/markets")
			json.NewEncoder(w).Encode(map[string]interface{}{"markets": mock.Fixture.Markets[eventID]})

		case strings.HasPrefix(path, "/markets/") && strings.HasSuffix(path, "/runners"):
			marketID := strings.TrimSuffix(strings.TrimPrefix(path, "/markets/"), "/runners")
			json.NewEncoder(w).Encode(map[string]interface{}{"runners": mock.Fixture.Runners[marketID]})

		default:
			http.NotFound(w, r)
		}
	})

	mock.Server = httptest.NewServer(handler)
	return mock
}

// LoginCount returns how many times the session endpoint was called.
func (m *MockMatchbookAPI) LoginCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loginCount
}
