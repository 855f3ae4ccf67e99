package matching

import (
	"testing"

	"github.com/mkirwin/exchange-arb/pkg/types"
	"go.uber.org/zap"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "Djokovic VS Federer", "djokovic federer"},
		{"initials-kept-as-tokens", "N. Djokovic vs R. Federer", "n djokovic r federer"},
		{"parenthetical-stripped", "Arsenal (ENG) v Bayern (GER)", "arsenal bayern"},
		{"v-separator", "Nadal v Murray", "nadal murray"},
		{"special-chars", "Real Madrid - Barcelona!", "real madrid barcelona"},
		{"collapsed-whitespace", "  Leeds   United   v  Hull ", "leeds united hull"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.input)
			if got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"N. Djokovic vs R. Federer",
		"Arsenal (ENG) v Bayern",
		"Total Goals Over/Under 2.5",
		"",
		"already clean",
	}

	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestSimilar(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{"identical", "Djokovic vs Federer", "Djokovic vs Federer", true},
		{"initials", "N. Djokovic vs R. Federer", "Djokovic v Federer", true},
		{"reordered-suffix", "Manchester United v Chelsea", "Chelsea vs Manchester United", true},
		{"unrelated", "Djokovic vs Federer", "Lakers vs Celtics", false},
		{"partial-team-names", "Atletico Madrid vs Valencia", "Atl. Madrid v Valencia CF", true},
		{"short-common-tokens", "AC v BD", "AC v XY", false},
		{"both-empty", "", "", false},
		{"one-empty", "Nadal v Murray", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similar(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("Similar(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}

			// Symmetry must hold for every input pair.
			reversed := Similar(tt.b, tt.a)
			if got != reversed {
				t.Errorf("Similar not symmetric for (%q, %q): %v vs %v", tt.a, tt.b, got, reversed)
			}
		})
	}
}

func TestEventMatcher_Match(t *testing.T) {
	matcher := NewEventMatcher(zap.NewNop())

	events := []types.Event{
		{ID: "sm-1", Name: "N. Djokovic vs R. Federer", Sport: types.SportTennis, Exchange: "smarkets"},
		{ID: "mb-1", Name: "Djokovic v Federer", Sport: types.SportTennis, Exchange: "matchbook"},
		{ID: "sm-2", Name: "Arsenal v Chelsea", Sport: types.SportFootball, Exchange: "smarkets"},
		{ID: "mb-2", Name: "Lakers vs Celtics", Sport: types.SportBasketball, Exchange: "matchbook"},
	}

	groups := matcher.Match(events)

	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if len(groups[0].Events) != 2 {
		t.Fatalf("expected 2 events in group, got %d", len(groups[0].Events))
	}
	if groups[0].Events[0].ID != "sm-1" || groups[0].Events[1].ID != "mb-1" {
		t.Errorf("unexpected group membership: %+v", groups[0].Events)
	}
}

func TestEventMatcher_NeverReturnsSingleExchangeGroup(t *testing.T) {
	matcher := NewEventMatcher(zap.NewNop())

	// Same fixture listed twice by the same exchange must not group.
	events := []types.Event{
		{ID: "sm-1", Name: "Nadal v Murray", Exchange: "smarkets"},
		{ID: "sm-2", Name: "Nadal vs Murray", Exchange: "smarkets"},
		{ID: "sm-3", Name: "Arsenal v Chelsea", Exchange: "smarkets"},
	}

	groups := matcher.Match(events)

	if len(groups) != 0 {
		t.Fatalf("expected no groups from single-exchange input, got %d", len(groups))
	}
}

func TestEventMatcher_GroupsAlwaysSpanExchanges(t *testing.T) {
	matcher := NewEventMatcher(zap.NewNop())

	events := []types.Event{
		{ID: "1", Name: "Nadal v Murray", Exchange: "smarkets"},
		{ID: "2", Name: "R. Nadal vs A. Murray", Exchange: "matchbook"},
		{ID: "3", Name: "Monaco v Lyon", Exchange: "smarkets"},
		{ID: "4", Name: "AS Monaco vs Olympique Lyon", Exchange: "matchbook"},
		{ID: "5", Name: "Unmatched Event Name Here", Exchange: "smarkets"},
	}

	groups := matcher.Match(events)

	for _, g := range groups {
		if len(g.Exchanges()) < 2 {
			t.Errorf("group with single exchange returned: %+v", g.Events)
		}
	}
}

func TestEventMatcher_EmptyInput(t *testing.T) {
	matcher := NewEventMatcher(zap.NewNop())

	groups := matcher.Match(nil)
	if len(groups) != 0 {
		t.Errorf("expected no groups for empty input, got %d", len(groups))
	}
}
