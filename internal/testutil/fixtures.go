package testutil

// SmarketsEvent mirrors the Smarkets events wire format.
type SmarketsEvent struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SportID       string `json:"sport_id"`
	StartDatetime string `json:"start_datetime"`
	State         string `json:"state"`
}

// SmarketsMarket mirrors the Smarkets markets wire format.
type SmarketsMarket struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
}

// SmarketsContract mirrors the Smarkets contracts wire format.
type SmarketsContract struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SmarketsPrice mirrors one entry of the Smarkets price book. Odds and
// quantities are integers scaled by 100 on the wire.
type SmarketsPrice struct {
	Odds     float64 `json:"odds"`
	Quantity float64 `json:"quantity"`
}

// SmarketsFixture is canned Smarkets API state, keyed the way the API
// nests it: markets by event ID, contracts by market ID, prices by
// contract ID.
type SmarketsFixture struct {
	Events    []SmarketsEvent
	Markets   map[string][]SmarketsMarket
	Contracts map[string][]SmarketsContract
	Prices    map[string][]SmarketsPrice
}

// MatchbookEvent mirrors the Matchbook events wire format.
type MatchbookEvent struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	SportID       float64 `json:"sport-id"`
	Start         string  `json:"start"`
	InRunningFlag bool    `json:"in-running-flag"`
}

// MatchbookMarket mirrors the Matchbook markets wire format.
type MatchbookMarket struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// MatchbookPrice mirrors one price of a Matchbook runner.
type MatchbookPrice struct {
	Side            string  `json:"side"`
	Odds            float64 `json:"odds"`
	AvailableAmount float64 `json:"available-amount"`
}

// MatchbookRunner mirrors the Matchbook runners wire format.
type MatchbookRunner struct {
	ID     int64            `json:"id"`
	Name   string           `json:"name"`
	Status string           `json:"status"`
	Prices []MatchbookPrice `json:"prices"`
}

// MatchbookFixture is canned Matchbook API state.
type MatchbookFixture struct {
	Events  []MatchbookEvent
	Markets map[string][]MatchbookMarket
	Runners map[string][]MatchbookRunner
}

// TennisArbFixtures returns paired Smarkets and Matchbook fixtures
// quoting the same tennis match with prices wide enough that exactly
// one arbitrage survives commission at the default settings.
func TennisArbFixtures() (*SmarketsFixture, *MatchbookFixture) {
	smarkets := &SmarketsFixture{
		Events: []SmarketsEvent{
			{ID: "sm-ev-1", Name: "N. Djokovic vs R. Federer", SportID: "tennis", StartDatetime: "2026-08-28T14:00:00Z", State: "live"},
		},
		Markets: map[string][]SmarketsMarket{
			"sm-ev-1": {
				{ID: "sm-mk-1", Name: "Match Odds", State: "live"},
			},
		},
		Contracts: map[string][]SmarketsContract{
			"sm-mk-1": {
				{ID: "sm-ct-1", Name: "N. Djokovic"},
				{ID: "sm-ct-2", Name: "R. Federer"},
			},
		},
		Prices: map[string][]SmarketsPrice{
			"sm-ct-1": {{Odds: 210, Quantity: 50000}}, // 2.10 @ 500
			"sm-ct-2": {{Odds: 190, Quantity: 50000}}, // 1.90 @ 500
		},
	}

	matchbook := &MatchbookFixture{
		Events: []MatchbookEvent{
			{ID: 101, Name: "Djokovic v Federer", SportID: 325, Start: "2026-08-28T14:00:00Z", InRunningFlag: true},
		},
		Markets: map[string][]MatchbookMarket{
			"101": {
				{ID: 555, Name: "Match Winner", Status: "open"},
			},
		},
		Runners: map[string][]MatchbookRunner{
			"555": {
				{ID: 1, Name: "Djokovic", Status: "open", Prices: []MatchbookPrice{
					{Side: "back", Odds: 2.05, AvailableAmount: 800},
				}},
				{ID: 2, Name: "Federer", Status: "open", Prices: []MatchbookPrice{
					{Side: "back", Odds: 2.20, AvailableAmount: 800},
				}},
			},
		},
	}

	return smarkets, matchbook
}
