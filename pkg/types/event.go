package types

import "time"

// Sport identifies a sport category supported by the scanner.
type Sport string

// Supported sports. The set mirrors what both exchanges expose for
// in-play trading.
const (
	SportTennis     Sport = "tennis"
	SportFootball   Sport = "football"
	SportBasketball Sport = "basketball"
)

// ParseSport converts a string into a Sport, reporting whether it is known.
func ParseSport(s string) (Sport, bool) {
	switch Sport(s) {
	case SportTennis, SportFootball, SportBasketball:
		return Sport(s), true
	}
	return "", false
}

// Event is a live fixture as reported by a single exchange.
// Events are immutable once fetched; every scan cycle produces fresh ones.
type Event struct {
	ID        string
	Name      string
	Sport     Sport
	StartTime time.Time
	Exchange  string
}

// EventGroup is a set of events believed to denote the same real-world
// fixture across exchanges. A group is only valid when its events span
// more than one exchange; single-exchange clusters are discarded by the
// matcher before they reach downstream stages.
type EventGroup struct {
	Events []Event
}

// Exchanges returns the set of distinct exchanges represented in the group.
func (g *EventGroup) Exchanges() map[string]struct{} {
	set := make(map[string]struct{}, len(g.Events))
	for _, e := range g.Events {
		set[e.Exchange] = struct{}{}
	}
	return set
}
