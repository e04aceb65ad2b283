// Package elo implements the pairwise rating update rule.
package elo

import "math"

// Default rating parameters.
const (
	// DefaultK controls the magnitude of rating change per comparison.
	DefaultK = 32

	// DefaultRating is the starting rating for an unrated entity.
	DefaultRating = 1500

	scaleFactor = 400.0
)

// Expected returns the winner's expected win probability against the loser's
// rating: 1 / (1 + 10^((loser-winner)/400)).
func Expected(winner, loser int) float64 {
	return 1.0 / (1.0 + math.Pow(10, float64(loser-winner)/scaleFactor))
}

// Update computes the post-vote ratings for a winner/loser pair. Both outputs
// are rounded to the nearest integer; the sum of the pair is preserved up to
// rounding. Ratings are not clamped and may in principle go negative.
func Update(winner, loser, k int) (newWinner, newLoser int) {
	gain := float64(k) * (1.0 - Expected(winner, loser))
	newWinner = int(math.Round(float64(winner) + gain))
	newLoser = int(math.Round(float64(loser) - gain))
	return newWinner, newLoser
}
