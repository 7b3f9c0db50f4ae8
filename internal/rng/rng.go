// Package rng abstracts the randomness the simulation consumes so tests can
// supply deterministic sequences.
package rng

import "math/rand"

// Source supplies the three draws the simulation needs.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntRange returns a uniform integer in [lo, hi] inclusive.
	IntRange(lo, hi int) int
	// Choice returns a uniform index in [0, n).
	Choice(n int) int
}

type mathRand struct {
	r *rand.Rand
}

// New returns a Source backed by math/rand with the given seed.
func New(seed int64) Source {
	return &mathRand{r: rand.New(rand.NewSource(seed))}
}

func (m *mathRand) Float64() float64 {
	return m.r.Float64()
}

func (m *mathRand) IntRange(lo, hi int) int {
	return lo + m.r.Intn(hi-lo+1)
}

func (m *mathRand) Choice(n int) int {
	return m.r.Intn(n)
}
