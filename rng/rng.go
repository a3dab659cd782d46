// Package rng provides the deterministic random source used by every
// stochastic decision in the simulation. A single instance is threaded
// through all calls so that a fixed seed reproduces an identical run.
package rng

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// New creates a deterministic RNG using the provided seed.
func New(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float returns a random float64 in [0, 1).
func (r *RNG) Float() float64 {
	return r.r.Float64()
}

// FloatBetween returns a random float64 in [lo, hi).
func (r *RNG) FloatBetween(lo, hi float64) float64 {
	return lo + r.r.Float64()*(hi-lo)
}

// Between returns a random int in [lo, hi], inclusive on both ends.
func (r *RNG) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.r.IntN(hi-lo+1)
}

// Bool returns true with probability p.
func (r *RNG) Bool(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.r.Float64() < p
}

// Jitter returns -1, 0 or 1 with equal probability. Used for random walks
// and offspring placement.
func (r *RNG) Jitter() int {
	return r.r.IntN(3) - 1
}
