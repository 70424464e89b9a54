package engine

import (
	"math"
	"math/rand"
)

// Rand is the injectable randomness source shared by the director and the
// opponent policies. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a seeded source.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// between returns a uniform value in [lo, hi).
func between(r Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// angle returns a uniform heading in [0, 2π).
func angle(r Rand) float64 {
	return r.Float64() * 2 * math.Pi
}

// jitter returns base plus a uniform extra in [0, extra].
func jitter(r Rand, base, extra int) int {
	if extra <= 0 {
		return base
	}
	return base + r.Intn(extra+1)
}
