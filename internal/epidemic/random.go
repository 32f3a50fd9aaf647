package epidemic

import (
	"math/rand"
	"time"
)

// RandomSource is the single source of randomness for every stochastic stage.
// *rand.Rand satisfies it, so tests can pass a seeded generator and get a
// reproducible run.
type RandomSource interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64

	// Intn returns a uniform value in [0, n). Panics if n <= 0.
	Intn(n int) int
}

// NewSource returns a seeded math/rand generator.
// A zero seed means "use the current time", matching the runtime config
// convention of the platform layer.
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// uniform draws a value in [lo, hi].
func uniform(rng RandomSource, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// roll performs a Bernoulli trial with success probability p.
// p <= 0 never succeeds and p >= 1 always does; the draw is consumed either
// way so the random stream does not depend on parameter values.
func roll(rng RandomSource, p float64) bool {
	return rng.Float64() < p
}
