package matching

import (
	"regexp"
	"strings"
)

var (
	parenthetical = regexp.MustCompile(`\(.*?\)`)
	versusToken   = regexp.MustCompile(`\b(vs|v)\b`)
	nonWord       = regexp.MustCompile(`[^\w\s]`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// Clean canonicalizes an event name for cross-exchange comparison:
// lowercase, parenthetical substrings removed, "vs"/"v" separators
// removed, non-alphanumerics stripped, whitespace collapsed.
// Clean is idempotent.
func Clean(name string) string {
	name = strings.ToLower(name)
	name = parenthetical.ReplaceAllString(name, "")
	name = versusToken.ReplaceAllString(name, " ")
	name = nonWord.ReplaceAllString(name, " ")
	name = whitespace.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// tokenSet splits a cleaned name into its word set.
func tokenSet(cleaned string) map[string]struct{} {
	fields := strings.Fields(cleaned)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
