package types

// Odd is a best-available quote for one selection in one market.
// Quotes are liquidity-filtered at the fetch boundary: clients never
// construct an Odd with DecimalOdds <= 1 or liquidity below the
// configured minimum.
type Odd struct {
	Selection  string  // original selection name, preserved for display
	Odds       float64 // decimal odds, always > 1
	Liquidity  float64 // stake available at this price
	Exchange   string
	MarketID   string
	MarketName string
	EventName  string
	Sport      Sport
}

// OutcomeGroup maps a normalized selection name to every quote for that
// outcome across all markets in a market group.
type OutcomeGroup map[string][]Odd
