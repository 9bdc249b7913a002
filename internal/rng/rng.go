// Package rng provides the seeded random source shared by map generation,
// placement and enemy decisions.
package rng

import (
	"math/rand"
	"time"
)

// New returns a random source for the given seed.
// A seed of 0 means a time based seed is used.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Between returns a uniformly distributed integer in [min, max].
// If max < min the bounds are swapped.
func Between(r *rand.Rand, min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + r.Intn(max-min+1)
}

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
