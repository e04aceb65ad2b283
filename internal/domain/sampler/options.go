// Package sampler selects duel pairs biased toward sharing a genre.
package sampler

import "math/rand"

// Option applies a configuration option to the Sampler.
type Option func(*Sampler)

// WithMaxAttempts sets the rejection-sampling attempt budget.
func WithMaxAttempts(n int) Option {
	return func(s *Sampler) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithSeed makes the sampler deterministic for tests.
func WithSeed(seed int64) Option {
	return func(s *Sampler) {
		s.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic seed for reproducible testing
	}
}
