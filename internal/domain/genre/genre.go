// Package genre normalizes comma-separated genre strings into tokens and
// implements the matching rules used by sampling, filtering and champions.
package genre

import (
	"sort"
	"strings"
)

// Split parses a comma-separated genre string into normalized tokens:
// trimmed, lowercased, empties dropped, duplicates removed. Order of first
// appearance is preserved. A blank input yields an empty set.
func Split(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var tokens []string
	for _, piece := range strings.Split(s, ",") {
		tok := strings.ToLower(strings.TrimSpace(piece))
		if tok == "" {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Overlap returns the sorted tokens present in both normalized sets.
func Overlap(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	in := make(map[string]struct{}, len(a))
	for _, tok := range a {
		in[tok] = struct{}{}
	}
	var shared []string
	for _, tok := range b {
		if _, ok := in[tok]; ok {
			shared = append(shared, tok)
		}
	}
	sort.Strings(shared)
	return shared
}

// Contains reports whether the raw genre string contains filter as a
// case-insensitive substring. Matching is deliberately textual rather than
// tokenized: a filter of "action" also matches "Action-Adventure". Callers
// rely on this tolerance, so it must not be tightened to set membership.
func Contains(genres, filter string) bool {
	if filter == "" {
		return false
	}
	return strings.Contains(strings.ToLower(genres), strings.ToLower(filter))
}

// All collects the distinct normalized tokens across the given genre strings,
// sorted lexicographically. Used for champion extraction and filter options.
func All(genreStrings []string) []string {
	seen := make(map[string]struct{})
	for _, s := range genreStrings {
		for _, tok := range Split(s) {
			seen[tok] = struct{}{}
		}
	}
	all := make([]string, 0, len(seen))
	for tok := range seen {
		all = append(all, tok)
	}
	sort.Strings(all)
	return all
}
