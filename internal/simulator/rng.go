package simulator

import (
	"math"
	"math/rand"

	"github.com/google/uuid"
)

// Rand is the single deterministic entropy source for a run. Every
// stochastic decision in the engine routes through one instance in a fixed,
// parameter-determined call order, so identical (seed, parameters) reproduce
// byte-identical output. Nothing in the engine may read system entropy, the
// wall clock, or map iteration order as a source of variation.
type Rand struct {
	*rand.Rand
}

// NewRand seeds the run's random source.
func NewRand(seed int64) *Rand {
	return &Rand{rand.New(rand.NewSource(seed))}
}

// Uniform returns a float drawn uniformly from [lo, hi).
func (r *Rand) Uniform(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// IntBetween returns an int drawn uniformly from [lo, hi] inclusive.
func (r *Rand) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Bool returns true with probability p.
func (r *Rand) Bool(p float64) bool {
	return r.Float64() < p
}

// WeightedIndex draws an index proportionally to the given weights.
func (r *Rand) WeightedIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}
	target := r.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if target < acc {
			return i
		}
	}
	return len(weights) - 1
}

// Normal draws from N(mean, std) via the Box-Muller transform.
func (r *Rand) Normal(mean, std float64) float64 {
	u1 := math.Max(r.Float64(), 1e-10)
	u2 := r.Float64()
	z := math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)
	return mean + std*z
}

// UUID returns a v4 UUID drawn from the seeded stream, never from the
// system's entropy pool.
func (r *Rand) UUID() string {
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		// rand.Rand.Read cannot fail
		panic(err)
	}
	return id.String()
}
