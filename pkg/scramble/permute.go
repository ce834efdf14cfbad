package scramble

import "math/rand/v2"

// Permutation maps a destination slot index to the source block index placed
// there. A valid permutation of length n holds every integer in [0, n) once.
type Permutation []int

// Identity returns the permutation [0, 1, ..., n-1].
func Identity(n int) Permutation {
	p := make(Permutation, max(n, 0))
	for i := range p {
		p[i] = i
	}
	return p
}

// Generate returns a uniformly random permutation of [0, total) drawn from rng
// with a Fisher–Yates shuffle.
func Generate(rng *rand.Rand, total int) Permutation {
	p := Identity(total)
	rng.Shuffle(len(p), func(i, j int) { p[i], p[j] = p[j], p[i] })
	return p
}

// Valid reports whether p is a bijection on [0, len(p)).
func (p Permutation) Valid() bool {
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Inverse returns q such that q[p[i]] == i. p must be valid.
func (p Permutation) Inverse() Permutation {
	q := make(Permutation, len(p))
	for i, v := range p {
		q[v] = i
	}
	return q
}

// Clone returns a copy of p.
func (p Permutation) Clone() Permutation {
	return append(Permutation(nil), p...)
}
