package matching

import (
	"testing"

	"github.com/mkirwin/exchange-arb/pkg/types"
)

func TestNormalizeSelection(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "Djokovic", "djokovic"},
		{"leading-initial", "N. Djokovic", "djokovic"},
		{"initial-mid-name", "Novak N. Djokovic", "novak djokovic"},
		{"whitespace-collapsed", "  Roger   Federer  ", "roger federer"},
		{"no-op", "federer", "federer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSelection(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeSelection(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGroupOutcomes(t *testing.T) {
	odds := []types.Odd{
		{Selection: "N. Djokovic", Odds: 2.0, Exchange: "smarkets"},
		{Selection: "Djokovic", Odds: 2.05, Exchange: "matchbook"},
		{Selection: "R. Federer", Odds: 2.1, Exchange: "smarkets"},
		{Selection: "Federer", Odds: 2.12, Exchange: "matchbook"},
	}

	groups := GroupOutcomes(odds)

	if len(groups) != 2 {
		t.Fatalf("expected 2 outcome groups, got %d: %v", len(groups), groups)
	}
	if len(groups["djokovic"]) != 2 {
		t.Errorf("expected 2 quotes for djokovic, got %d", len(groups["djokovic"]))
	}
	if len(groups["federer"]) != 2 {
		t.Errorf("expected 2 quotes for federer, got %d", len(groups["federer"]))
	}

	// Original selection strings are preserved on each quote.
	if groups["djokovic"][0].Selection != "N. Djokovic" {
		t.Errorf("original selection not preserved: %q", groups["djokovic"][0].Selection)
	}
}

func TestGroupOutcomes_Empty(t *testing.T) {
	groups := GroupOutcomes(nil)
	if len(groups) != 0 {
		t.Errorf("expected empty grouping, got %v", groups)
	}
}
