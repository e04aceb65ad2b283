// Package memstore implements the record store in memory. It backs tests and
// the zero-configuration dev backend, and can inject write failures.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/reelo/internal/adapters/store"
	"github.com/okian/reelo/internal/domain/model"
)

// Store keeps rows in a slice, mirroring the row-oriented shape of the real
// backends. Implements store.Store.
type Store struct {
	mu      sync.Mutex
	records []model.Record

	// failSave, when set, is returned by SaveRating to simulate a
	// transient persistence failure.
	failSave error

	saves int // total SaveRating calls, for assertions
}

// New creates a memory store seeded with the given rows. Row indices are
// assigned in order.
func New(records ...model.Record) *Store {
	s := &Store{records: make([]model.Record, len(records))}
	for i, r := range records {
		r.Row = i
		if r.Rating == 0 {
			r.Rating = model.DefaultRating
		}
		s.records[i] = r
	}
	return s
}

// LoadAll returns a copy of every stored row in order.
func (s *Store) LoadAll(_ context.Context) ([]model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

// SaveRating writes rating to every row whose normalized title matches.
func (s *Store) SaveRating(_ context.Context, title string, rating int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saves++
	if s.failSave != nil {
		return 0, fmt.Errorf("%w: %w", store.ErrPersist, s.failSave)
	}

	key := model.NormalizeTitle(title)
	updated := 0
	for i := range s.records {
		if s.records[i].Key() == key {
			s.records[i].Rating = rating
			updated++
		}
	}
	return updated, nil
}

// FailSaves makes subsequent SaveRating calls fail with cause. Pass nil to
// restore normal operation.
func (s *Store) FailSaves(cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSave = cause
}

// SaveCount returns the number of SaveRating calls observed.
func (s *Store) SaveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
