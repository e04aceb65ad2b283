// Package sampler selects duel pairs biased toward sharing a genre.
package sampler

import (
	"math/rand"
	"sync"

	"github.com/okian/reelo/internal/domain/genre"
	"github.com/okian/reelo/internal/domain/model"
)

// DefaultMaxAttempts bounds the rejection-sampling loop. The sampler trades
// genre overlap for bounded latency: once the budget is spent the final draw
// is returned even when the two sides share no genre.
const DefaultMaxAttempts = 50

// Sampler draws pairs of distinct records uniformly at random, accepting the
// first draw whose normalized genre sets intersect.
type Sampler struct {
	mu          sync.Mutex
	rng         *rand.Rand
	maxAttempts int
}

// New creates a sampler with configuration options.
func New(opts ...Option) *Sampler {
	s := &Sampler{
		rng:         rand.New(rand.NewSource(rand.Int63())), //nolint:gosec // sampling bias, not security
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pair samples two distinct records from the collection. It makes up to
// maxAttempts independent draws and accepts the first with a non-empty genre
// intersection; otherwise the final draw is returned with Fallback set.
// Returns ErrInsufficientRecords when the collection holds fewer than two
// records.
func (s *Sampler) Pair(records []model.Record) (model.Pair, error) {
	if len(records) < 2 {
		return model.Pair{}, ErrInsufficientRecords
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var pair model.Pair
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		a, b := s.drawTwo(records)
		shared := genre.Overlap(genre.Split(a.Genres), genre.Split(b.Genres))
		pair = model.Pair{A: a, B: b, SharedGenres: shared}
		if len(shared) > 0 {
			return pair, nil
		}
	}

	// Budget exhausted: keep the last draw rather than scanning the full
	// combination space.
	pair.Fallback = true
	return pair, nil
}

// drawTwo picks two distinct indices uniformly without replacement.
func (s *Sampler) drawTwo(records []model.Record) (model.Record, model.Record) {
	i := s.rng.Intn(len(records))
	j := s.rng.Intn(len(records) - 1)
	if j >= i {
		j++
	}
	return records[i], records[j]
}
