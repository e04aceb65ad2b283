// Package store defines the record store contract and row/field mapping
// shared by its implementations.
package store

import (
	"context"
	"strconv"
	"strings"

	"github.com/okian/reelo/internal/domain/model"
)

// Well-known column names, matched case-insensitively against the source
// header. Everything else is opaque metadata carried through unchanged.
const (
	FieldTitle     = "title"
	FieldDirector  = "director"
	FieldGenres    = "genres"
	FieldPosterURL = "poster_url"
	FieldElo       = "elo"
)

// Store provides read/write access to the row-oriented record store.
type Store interface {
	// LoadAll returns every stored row in order. Rows without a usable
	// rating default to model.DefaultRating; a missing title coerces to
	// the empty string rather than failing the load.
	LoadAll(ctx context.Context) ([]model.Record, error)

	// SaveRating persists rating to every stored row whose normalized
	// title matches. Matching is by title against the store's current
	// rows, never by position, so it stays correct when the in-memory
	// collection and the store disagree on order. Returns the number of
	// rows written. Safe to repeat with the same value.
	SaveRating(ctx context.Context, title string, rating int) (int, error)
}

// RecordFromFields maps one row of field name/value pairs onto a Record.
// Field names are normalized to lowercase; unknown fields land in Extra.
func RecordFromFields(row int, fields map[string]string) model.Record {
	rec := model.Record{
		Row:    row,
		Rating: model.DefaultRating,
		Extra:  make(map[string]string),
	}
	for name, value := range fields {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case FieldTitle:
			rec.Title = strings.TrimSpace(value)
		case FieldDirector:
			rec.Director = strings.TrimSpace(value)
		case FieldGenres:
			rec.Genres = strings.TrimSpace(value)
		case FieldPosterURL:
			rec.PosterURL = strings.TrimSpace(value)
		case FieldElo:
			rec.Rating = ParseRating(value)
		default:
			rec.Extra[name] = value
		}
	}
	return rec
}

// ParseRating coerces a stored rating value, defaulting non-numeric input to
// model.DefaultRating. Float-formatted cells are truncated toward zero.
func ParseRating(value string) int {
	v := strings.TrimSpace(value)
	if v == "" {
		return model.DefaultRating
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f)
	}
	return model.DefaultRating
}
