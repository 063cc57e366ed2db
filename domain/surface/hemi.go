package surface

import "math"

// NaNVector returns a length-n vector of NaNs, used to pad a missing
// hemisphere.
func NaNVector(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = math.NaN()
	}
	return v
}

// ConcatHemis builds the canonical LH||RH full-cortex vector.
func ConcatHemis(left, right []float64) []float64 {
	out := make([]float64, 0, len(left)+len(right))
	out = append(out, left...)
	out = append(out, right...)
	return out
}

// PadSingleHemi places a single-hemisphere array on the side named by hemi
// and NaN-pads the other side to the given per-hemisphere counts.
func PadSingleHemi(values []float64, hemi Hemisphere, nLeft, nRight int) (left, right []float64) {
	if hemi == HemiLeft {
		return values, NaNVector(nRight)
	}
	return NaNVector(nLeft), values
}
