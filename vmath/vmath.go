package vmath

import (
	"math"
)

// Epsilon is the smallest magnitude handed to integration and drawing code
// Stroke widths, radii and distances below it are clamped up to it
const Epsilon = 1e-9

// --- Scalars ---

// Clamp limits v to [lo, hi]. NaN collapses to lo
func Clamp(v, lo, hi float64) float64 {
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AtLeastEpsilon returns v, or Epsilon if v is non-positive or not finite
func AtLeastEpsilon(v float64) float64 {
	if !(v > Epsilon) || math.IsInf(v, 1) {
		return Epsilon
	}
	return v
}

// Finite reports whether v is neither NaN nor infinite
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Pow is math.Pow with non-positive bases clamped to zero
// Keeps weight/size scaling monotone and NaN-free for fractional exponents
func Pow(base, exp float64) float64 {
	if base <= 0 {
		if exp <= 0 {
			return 1
		}
		return 0
	}
	return math.Pow(base, exp)
}

// --- Randomness ---

// FastRand is a xorshift64 generator, deterministic for a given seed
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Float64 returns a value in [0, 1) using the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Jiggle returns a tiny non-zero offset in (-0.5e-6, 0.5e-6)
// Used to separate coincident points without biasing direction
func (r *FastRand) Jiggle() float64 {
	j := (r.Float64() - 0.5) * 1e-6
	if j == 0 {
		return 1e-7
	}
	return j
}
