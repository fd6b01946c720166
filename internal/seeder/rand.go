package seeder

import (
	"math/rand/v2"
	"time"
)

// Rand is the seeder's single source of randomness. A fixed seed makes a run
// reproducible against the same database state.
type Rand struct {
	r *rand.Rand
}

// NewRand returns a generator seeded with seed, or with the current time
// when seed is 0.
func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Rand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// IntN returns a value in [0, n).
func (r *Rand) IntN(n int) int {
	return r.r.IntN(n)
}

// Between returns a value in [lo, hi].
func (r *Rand) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.r.IntN(hi-lo+1)
}

// Chance reports true with probability p.
func (r *Rand) Chance(p float64) bool {
	return r.r.Float64() < p
}

// Shuffle randomizes the order of n elements.
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	r.r.Shuffle(n, swap)
}

// Choice returns a uniformly chosen element of items, which must be non-empty.
func Choice[T any](r *Rand, items []T) T {
	return items[r.IntN(len(items))]
}

// Sample returns up to k distinct elements of items in random order.
func Sample[T any](r *Rand, items []T, k int) []T {
	k = min(k, len(items))
	idx := r.r.Perm(len(items))[:k]
	out := make([]T, k)
	for i, j := range idx {
		out[i] = items[j]
	}
	return out
}
