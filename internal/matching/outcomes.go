package matching

import (
	"regexp"
	"strings"

	"github.com/mkirwin/exchange-arb/pkg/types"
)

// initialToken matches leading single-letter initials such as "N. " in
// "N. Djokovic", which exchanges apply inconsistently.
var initialToken = regexp.MustCompile(`\b[a-z]\.\s*`)

// NormalizeSelection canonicalizes a selection name for grouping quotes
// across exchanges. The original selection string stays on each Odd for
// display; this form is only a grouping key.
func NormalizeSelection(selection string) string {
	selection = strings.ToLower(strings.TrimSpace(selection))
	selection = initialToken.ReplaceAllString(selection, "")
	selection = whitespace.ReplaceAllString(selection, " ")
	return strings.TrimSpace(selection)
}

// GroupOutcomes buckets quotes by normalized selection name so the same
// real-world outcome groups together regardless of exchange formatting.
func GroupOutcomes(odds []types.Odd) types.OutcomeGroup {
	groups := make(types.OutcomeGroup)
	for _, odd := range odds {
		key := NormalizeSelection(odd.Selection)
		groups[key] = append(groups[key], odd)
	}
	return groups
}
