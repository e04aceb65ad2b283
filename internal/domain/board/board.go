// Package board aggregates raw rows into leaderboards and genre champions.
package board

import (
	"sort"

	"github.com/okian/reelo/internal/domain/genre"
	"github.com/okian/reelo/internal/domain/model"
)

// OverallFilter is the sentinel filter that includes every entity.
const OverallFilter = "Overall"

// Row is one leaderboard entry after duplicate rows have been collapsed.
type Row struct {
	Title    string `json:"title"`
	Director string `json:"director"`
	Genres   string `json:"genres"`
	Rating   int    `json:"rating"`
}

// Champion is the top-rated entity within one genre.
type Champion struct {
	Genre string `json:"genre"`
	Row
}

// Leaderboard collapses duplicate rows by normalized title, optionally
// filters by genre, and sorts descending by rating.
//
// The first-encountered row of each group is the representative for display
// metadata; its rating is authoritative because every row of an entity
// carries the same rating after a vote. Ties keep first-encountered order.
// Filtering uses case-insensitive substring matching against the raw genre
// string, so "Action" also matches "Action-Adventure".
func Leaderboard(records []model.Record, genreFilter string) []Row {
	rows := collapse(records)
	if genreFilter != "" && genreFilter != OverallFilter {
		filtered := rows[:0]
		for _, row := range rows {
			if genre.Contains(row.Genres, genreFilter) {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Rating > rows[j].Rating
	})
	return rows
}

// Champions returns, for every distinct genre token across all records in
// lexicographic order, the top-rated entity whose genre string contains that
// token. Genres left without entities after grouping are omitted.
func Champions(records []model.Record) []Champion {
	genreStrings := make([]string, 0, len(records))
	for _, r := range records {
		genreStrings = append(genreStrings, r.Genres)
	}

	var champions []Champion
	for _, tok := range genre.All(genreStrings) {
		top := Leaderboard(records, tok)
		if len(top) == 0 {
			continue
		}
		champions = append(champions, Champion{Genre: tok, Row: top[0]})
	}
	return champions
}

// collapse groups records by normalized title, keeping the first-encountered
// row of each group in collection order. Records with an empty title collapse
// into a single blank entity rather than failing.
func collapse(records []model.Record) []Row {
	seen := make(map[string]struct{}, len(records))
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		key := r.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, Row{
			Title:    r.Title,
			Director: r.Director,
			Genres:   r.Genres,
			Rating:   r.Rating,
		})
	}
	return rows
}
