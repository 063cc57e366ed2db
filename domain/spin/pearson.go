// Package spin implements the spin-test core: the masked Pearson
// similarity statistic, null-matrix orientation resolution, the
// per-permutation null distribution, the smoothed empirical p-value, and
// Benjamini-Hochberg FDR correction across targets.
package spin

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"brainmaps/domain/core"
)

// PearsonIgnoreZero computes the Pearson correlation between two
// equal-length vectors, excluding every pair where either entry is zero or
// non-finite. The ignore-zero rule is a surface-map convention: zero
// vertices are implicit missingness (e.g. the medial wall), distinct from
// NaN-based missingness, and both are dropped here.
//
// The result is returned at full precision; callers round for reporting
// with Round6. Fewer than two valid pairs, or a zero-variance mask, yields
// NaN.
func PearsonIgnoreZero(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return math.NaN(), fmt.Errorf("%w: %d vs %d", core.ErrLengthMismatch, len(a), len(b))
	}

	xs := make([]float64, 0, len(a))
	ys := make([]float64, 0, len(b))
	for i := range a {
		x, y := a[i], b[i]
		if x == 0 || y == 0 {
			continue
		}
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}

	if len(xs) < 2 {
		return math.NaN(), nil
	}
	return stat.Correlation(xs, ys, nil), nil
}

// Round6 rounds a statistic to 6 decimal digits for reporting. Values that
// feed a null distribution must stay unrounded so downstream extremeness
// computations are not degraded.
func Round6(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return math.Round(x*1e6) / 1e6
}
