// Package model contains domain models passed between layers.
package model

import "strings"

// DefaultRating is assigned to rows whose rating is absent or non-numeric.
const DefaultRating = 1500

// Record represents one row of the backing store. Several rows may share a
// title (repeat viewings of the same movie); they form one logical entity and
// must carry the same rating after every vote.
type Record struct {
	Row       int               // source row index in the backing store
	Title     string            // entity identity, matched case-insensitively
	Director  string            // display metadata
	Genres    string            // raw comma-separated genre string
	PosterURL string            // display metadata, optional
	Rating    int               // Elo rating, DefaultRating when unknown
	Extra     map[string]string // opaque passthrough fields, preserved as-is
}

// Key returns the normalized identity of the record: title trimmed and
// lowercased. Rows with equal keys belong to the same entity.
func (r Record) Key() string {
	return NormalizeTitle(r.Title)
}

// NormalizeTitle trims and lowercases a title for identity comparison.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// Pair is a sampled duel between two distinct records.
type Pair struct {
	A, B Record

	// SharedGenres holds the sorted genre tokens the two sides have in
	// common. Empty when the sampler fell back to a disjoint pair.
	SharedGenres []string

	// Fallback reports that the sampler exhausted its attempt budget
	// without finding a genre overlap and returned the final draw anyway.
	Fallback bool
}
