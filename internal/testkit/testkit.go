// Package testkit builds small deterministic surface maps for tests.
// Vectors are sized like real cortices only when a test needs that; most
// tests run on short vectors to stay fast.
package testkit

import (
	"math"
	"math/rand"

	"brainmaps/domain/core"
	"brainmaps/domain/surface"
)

// NoisyCopy returns base plus Gaussian noise, giving a pair of vectors
// with a strong positive correlation.
func NoisyCopy(base []float64, noise float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, len(base))
	for i, v := range base {
		out[i] = v + rng.NormFloat64()*noise
	}
	return out
}

// Gradient returns a smooth monotone vector of length n in [0, 1].
func Gradient(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / float64(n-1)
	}
	return out
}

// Random returns n draws from a seeded standard normal.
func Random(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64()
	}
	return out
}

// WithMedialWall zeroes the first k entries, imitating the masked medial
// wall of real annotation files.
func WithMedialWall(v []float64, k int) []float64 {
	out := append([]float64(nil), v...)
	for i := 0; i < k && i < len(out); i++ {
		out[i] = 0
	}
	return out
}

// WithNaNs replaces every stride-th entry with NaN.
func WithNaNs(v []float64, stride int) []float64 {
	out := append([]float64(nil), v...)
	for i := 0; i < len(out); i += stride {
		out[i] = math.NaN()
	}
	return out
}

// SurfaceMap wraps values as a named map.
func SurfaceMap(name string, values []float64) surface.Map {
	return surface.Map{Name: core.MapKey(name), Values: values}
}
