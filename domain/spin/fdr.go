package spin

import (
	"fmt"
	"math"
	"sort"

	"brainmaps/domain/core"
)

// Adjusted holds the Benjamini-Hochberg outcome for one hypothesis, in the
// same position as its raw p-value in the input.
type Adjusted struct {
	P           float64
	Significant bool
}

// BenjaminiHochberg applies step-up FDR correction to a family of raw
// p-values at level alpha. Adjusted p-values are the running minimum of
// p(i)*m/i from the largest rank down, clamped to 1, so they are monotone
// non-decreasing in raw-p order and never smaller than the raw p-value.
// Rejection follows the step-up rule: all hypotheses at or below the
// largest rank i with p(i) <= (i/m)*alpha.
//
// Results are returned in the original input order, rounded to 6 decimals.
func BenjaminiHochberg(pvals []float64, alpha float64) ([]Adjusted, error) {
	if len(pvals) == 0 {
		return nil, fmt.Errorf("%w: no p-values to correct", core.ErrInsufficientData)
	}
	if alpha <= 0 || alpha >= 1 {
		return nil, fmt.Errorf("alpha must be in (0, 1), got %g", alpha)
	}
	for i, p := range pvals {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return nil, fmt.Errorf("p-value at index %d out of [0, 1]: %g", i, p)
		}
	}

	m := len(pvals)
	order := make([]int, m)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return pvals[order[a]] < pvals[order[b]] })

	// Largest rank satisfying the step-up threshold.
	rejectUpTo := -1
	for rank := m; rank >= 1; rank-- {
		if pvals[order[rank-1]] <= float64(rank)/float64(m)*alpha {
			rejectUpTo = rank - 1
			break
		}
	}

	// Adjusted p with monotonicity enforced from the top rank down.
	adjSorted := make([]float64, m)
	runningMin := 1.0
	for rank := m; rank >= 1; rank-- {
		q := pvals[order[rank-1]] * float64(m) / float64(rank)
		if q < runningMin {
			runningMin = q
		}
		adjSorted[rank-1] = runningMin
	}

	out := make([]Adjusted, m)
	for rank, idx := range order {
		out[idx] = Adjusted{
			P:           Round6(adjSorted[rank]),
			Significant: rank <= rejectUpTo,
		}
	}
	return out, nil
}

// ApplyFDR appends the correction columns to a set of spin-test results,
// preserving the input order.
func ApplyFDR(results []Result, alpha float64) ([]Result, error) {
	pvals := make([]float64, len(results))
	for i, r := range results {
		pvals[i] = r.PSpin
	}
	adj, err := BenjaminiHochberg(pvals, alpha)
	if err != nil {
		return nil, err
	}

	out := make([]Result, len(results))
	for i, r := range results {
		r.PFDR = adj[i].P
		r.SigFDR = adj[i].Significant
		out[i] = r
	}
	return out, nil
}
