/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package charades

import (
	"math/rand/v2"
)

// Rand is the only source of randomness in the engine.
type Rand interface {
	// IntN returns a value in [0, n). n is always positive.
	IntN(n int) int
}

// NewRand returns a PCG-backed source. A zero seed picks a random one.
func NewRand(seed uint64) Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}

	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func pick[T any](r Rand, items []T) T {
	return items[r.IntN(len(items))]
}

// shuffled returns a Fisher-Yates shuffled copy of items.
func shuffled[T any](r Rand, items []T) []T {
	out := append([]T(nil), items...)

	for i := len(out) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}

	return out
}

// permutation returns a shuffled [0, n).
func permutation(r Rand, n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}

	return shuffled(r, ids)
}
