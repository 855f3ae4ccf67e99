package types

// Market is a single betting market within an event on one exchange.
// Event metadata is denormalized onto the market so downstream stages
// never need to resolve the parent event again.
type Market struct {
	ID        string
	Name      string
	EventID   string
	Exchange  string
	EventName string
	Sport     Sport
}

// MarketGroup is a set of markets judged to be the same market type
// across exchanges within one event group. Retained groups always span
// at least two exchanges.
type MarketGroup struct {
	Markets []Market
}

// Exchanges returns the set of distinct exchanges represented in the group.
func (g *MarketGroup) Exchanges() map[string]struct{} {
	set := make(map[string]struct{}, len(g.Markets))
	for _, m := range g.Markets {
		set[m.Exchange] = struct{}{}
	}
	return set
}
