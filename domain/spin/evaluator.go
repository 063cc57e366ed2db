package spin

import (
	"context"
	"fmt"
	"math"

	"brainmaps/domain/core"
	"brainmaps/domain/surface"
)

// NullRequest describes the spatial null model conditioning: the (already
// sanitized) source map, the surface template it lives on, the permutation
// count, and the seed forwarded to the generator. The evaluator itself is
// not seed-aware beyond passing it through.
type NullRequest struct {
	Source       []float64
	Space        surface.Space
	Density      surface.Density
	Permutations int
	Seed         int64
}

// NullGenerator produces a 2-D matrix of spatially permuted copies of the
// source map. Implementations preserve spatial autocorrelation (spins) or
// substitute an alternative null model; orientation of the returned matrix
// is deliberately unspecified.
type NullGenerator interface {
	Generate(ctx context.Context, req NullRequest) (Matrix, error)
}

// Result is one row of the correspondence table: observed correlation and
// spin-test p-value for a target map, with the FDR columns appended by the
// correction step. Reported statistics are rounded to 6 decimals.
type Result struct {
	Map    core.MapKey `json:"map"`
	R      float64     `json:"r"`
	PSpin  float64     `json:"p_spin"`
	PFDR   float64     `json:"p_fdr,omitempty"`
	SigFDR bool        `json:"sig_fdr,omitempty"`
}

// Evaluator runs spin tests against an injected null generator.
type Evaluator struct {
	gen NullGenerator
}

// NewEvaluator creates a spin-test evaluator.
func NewEvaluator(gen NullGenerator) *Evaluator {
	return &Evaluator{gen: gen}
}

// Test computes the observed masked Pearson r between source and target,
// builds the null correlation distribution from the generator's spun
// copies of the source, and derives the smoothed two-tailed empirical
// p-value. It returns the reporting-rounded result and the unrounded null
// correlation vector.
//
// A shape mismatch from the generator is fatal to this target only;
// callers decide whether to skip the target or abort the run.
func (e *Evaluator) Test(ctx context.Context, source []float64, target surface.Map, space surface.Space, den surface.Density, nPerm int, seed int64) (Result, []float64, error) {
	if len(source) != target.Len() {
		return Result{}, nil, fmt.Errorf("%w: source has %d vertices, target %q has %d",
			core.ErrLengthMismatch, len(source), target.Name, target.Len())
	}
	if nPerm < 1 {
		return Result{}, nil, fmt.Errorf("permutation count must be positive, got %d", nPerm)
	}

	// Non-finite entries become NaN (missing), never zero, before any
	// correlation is computed.
	src := surface.SanitizeNonFinite(source)
	tgt := surface.SanitizeNonFinite(target.Values)

	nulls, err := e.gen.Generate(ctx, NullRequest{
		Source:       src,
		Space:        space,
		Density:      den,
		Permutations: nPerm,
		Seed:         seed,
	})
	if err != nil {
		return Result{}, nil, fmt.Errorf("null generation for %q: %w", target.Name, err)
	}

	rObs, err := PearsonIgnoreZero(src, tgt)
	if err != nil {
		return Result{}, nil, err
	}

	rNull, err := NullCorrelations(target.Name, nulls, tgt)
	if err != nil {
		return Result{}, nil, err
	}
	if len(rNull) != nPerm {
		// A wrong-length null vector must never propagate silently.
		return Result{}, nil, fmt.Errorf("%w for %q: generator produced %d permutations, expected %d",
			core.ErrShapeMismatch, target.Name, len(rNull), nPerm)
	}

	p := EmpiricalP(rNull, rObs)

	return Result{
		Map:   target.Name,
		R:     Round6(rObs),
		PSpin: Round6(p),
	}, rNull, nil
}

// EmpiricalP computes the two-tailed empirical p-value with additive
// smoothing: (#{|r_null| >= |r_obs|} + 1) / (N + 1). The +1 keeps p
// strictly positive for any N and the absolute values make it symmetric
// under sign flips of either map.
func EmpiricalP(null []float64, observed float64) float64 {
	count := 0
	absObs := math.Abs(observed)
	for _, r := range null {
		if math.Abs(r) >= absObs {
			count++
		}
	}
	return float64(count+1) / float64(len(null)+1)
}
