// Package nulls provides the null-model generators the spin-test
// evaluator is wired with. Spatial rotation mathematics is never
// implemented here: the spin generator replays rotations produced by the
// external neuroimaging toolchain, and the permutation generator is an
// explicitly non-spatial fallback.
package nulls

import (
	"context"
	"fmt"
	"math/rand"

	"brainmaps/domain/spin"
)

// PermutationGenerator builds exchangeable nulls by Fisher-Yates shuffling
// the source map. It is deterministic for a given seed. Unlike spins it
// does not preserve spatial autocorrelation, which makes its p-values
// anti-conservative on smooth maps; it exists for testing and for runs
// where no spin files are available.
type PermutationGenerator struct{}

// NewPermutationGenerator creates the fallback generator.
func NewPermutationGenerator() *PermutationGenerator {
	return &PermutationGenerator{}
}

// Generate returns a (permutations x vertices) matrix of shuffled copies
// of the source.
func (g *PermutationGenerator) Generate(ctx context.Context, req spin.NullRequest) (spin.Matrix, error) {
	nVert := len(req.Source)
	if nVert == 0 {
		return spin.Matrix{}, fmt.Errorf("empty source map")
	}
	if req.Permutations < 1 {
		return spin.Matrix{}, fmt.Errorf("permutation count must be positive, got %d", req.Permutations)
	}

	rng := rand.New(rand.NewSource(req.Seed))
	data := make([]float64, req.Permutations*nVert)

	for k := 0; k < req.Permutations; k++ {
		select {
		case <-ctx.Done():
			return spin.Matrix{}, ctx.Err()
		default:
		}

		row := data[k*nVert : (k+1)*nVert]
		copy(row, req.Source)
		for i := nVert - 1; i > 0; i-- {
			j := rng.Intn(i + 1)
			row[i], row[j] = row[j], row[i]
		}
	}

	return spin.NewMatrix(req.Permutations, nVert, data)
}
