package mines

import (
	"hash/maphash"
	"math/rand/v2"
)

// Rand is the source of randomness for mine placement. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	// IntN returns a number in [0, n).
	IntN(n int) int
}

// NewRand returns a PCG-backed generator with a random seed.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// NewSeededRand returns a reproducible generator.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// pickMines chooses count distinct indices out of [0, size) uniformly at
// random without replacement.
func pickMines(r Rand, size, count int) []int {
	/*
	 * Write down the list of possible mine locations.
	 */
	candidates := make([]int, size)
	for i := range candidates {
		candidates[i] = i
	}

	/*
	 * Now pick n off the list at random.
	 */
	picked := make([]int, 0, count)
	k := size
	for range count {
		i := r.IntN(k)
		picked = append(picked, candidates[i])
		k--
		candidates[i] = candidates[k]
	}
	return picked
}
