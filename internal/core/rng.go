package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.r.Float64() < p
}

// State picks a live state, weighting conductors over signal cells.
func (r *RNG) State() State {
	switch r.r.IntN(8) {
	case 0:
		return Head
	case 1:
		return Tail
	default:
		return Conductor
	}
}
