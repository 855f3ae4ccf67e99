package matching

import (
	"strings"

	"github.com/mkirwin/exchange-arb/pkg/types"
	"go.uber.org/zap"
)

const (
	// jaccardThreshold is the minimum word-set overlap for two event
	// names to be considered the same fixture.
	jaccardThreshold = 0.6

	// partialThreshold is the minimum partial-token score. It catches
	// initialed or truncated team names ("N. Djokovic" vs "Djokovic")
	// that full-token overlap misses.
	partialThreshold = 0.5

	// minPartialTokenLen keeps short, common tokens ("fc", "utd") from
	// producing substring false positives.
	minPartialTokenLen = 4
)

// EventMatcher clusters events across exchanges that denote the same
// real-world fixture.
type EventMatcher struct {
	logger *zap.Logger
}

// NewEventMatcher creates a new event matcher.
func NewEventMatcher(logger *zap.Logger) *EventMatcher {
	return &EventMatcher{logger: logger}
}

// Match clusters the given events into cross-exchange groups using
// greedy single-pass clustering: each unassigned event seeds a group
// and absorbs every later unassigned event that is similar and comes
// from a different exchange. Groups confined to a single exchange are
// discarded. O(n²) over the event set; fine at tens of live events.
func (m *EventMatcher) Match(events []types.Event) []types.EventGroup {
	var groups []types.EventGroup
	assigned := make([]bool, len(events))

	for i := range events {
		if assigned[i] {
			continue
		}

		group := types.EventGroup{Events: []types.Event{events[i]}}
		assigned[i] = true

		for j := i + 1; j < len(events); j++ {
			if assigned[j] {
				continue
			}
			if events[j].Exchange == events[i].Exchange {
				continue
			}
			if !Similar(events[i].Name, events[j].Name) {
				continue
			}
			group.Events = append(group.Events, events[j])
			assigned[j] = true
		}

		if len(group.Exchanges()) < 2 {
			SingleExchangeGroupsTotal.WithLabelValues("event").Inc()
			continue
		}

		m.logger.Debug("event-group-formed",
			zap.String("seed", events[i].Name),
			zap.Int("size", len(group.Events)))
		EventGroupsFormedTotal.Inc()
		groups = append(groups, group)
	}

	return groups
}

// Similar reports whether two event names likely denote the same
// fixture. It is symmetric in its arguments.
func Similar(a, b string) bool {
	w1 := tokenSet(Clean(a))
	w2 := tokenSet(Clean(b))

	union := len(w1)
	intersection := 0
	for w := range w2 {
		if _, ok := w1[w]; ok {
			intersection++
		} else {
			union++
		}
	}

	if union == 0 {
		return false
	}

	jaccard := float64(intersection) / float64(union)
	if jaccard >= jaccardThreshold {
		return true
	}

	partialMatches := 0
	for t1 := range w1 {
		for t2 := range w2 {
			if len(t1) < minPartialTokenLen || len(t2) < minPartialTokenLen {
				continue
			}
			if strings.Contains(t1, t2) || strings.Contains(t2, t1) {
				partialMatches++
			}
		}
	}

	larger := len(w1)
	if len(w2) > larger {
		larger = len(w2)
	}

	return float64(partialMatches)/float64(larger) >= partialThreshold
}
