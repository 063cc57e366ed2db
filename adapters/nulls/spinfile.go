package nulls

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/kshedden/gonpy"

	"brainmaps/domain/core"
	"brainmaps/domain/spin"
)

// SpinFileGenerator replays spatial rotations generated by the external
// neuroimaging toolchain. A spin file is a 2-D .npy array of vertex
// indices (stored as float64): entry v of a permutation names the source
// vertex whose value lands at position v after the rotation. Negative or
// NaN entries mark vertices with no assignment (medial wall) and become
// NaN in the spun map.
//
// The file's orientation (vertices x permutations or the transpose) is
// passed through unchanged; disambiguation stays where it belongs, in the
// consumer's orientation resolution.
type SpinFileGenerator struct {
	dir string
}

// NewSpinFileGenerator creates a generator reading spin files from dir.
func NewSpinFileGenerator(dir string) *SpinFileGenerator {
	return &SpinFileGenerator{dir: dir}
}

// FilePath returns the expected spin file for a request:
// spins_<space>-<density>_n<perms>_s<seed>.npy.
func (g *SpinFileGenerator) FilePath(req spin.NullRequest) string {
	name := fmt.Sprintf("spins_%s-%s_n%d_s%d.npy", req.Space, req.Density, req.Permutations, req.Seed)
	return filepath.Join(g.dir, name)
}

// Generate loads the spin index file for the request and applies it to the
// source map.
func (g *SpinFileGenerator) Generate(ctx context.Context, req spin.NullRequest) (spin.Matrix, error) {
	path := g.FilePath(req)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return spin.Matrix{}, core.NewMissingArtifactError(path, "spin generation (external toolchain)")
	}

	r, err := gonpy.NewFileReader(path)
	if err != nil {
		return spin.Matrix{}, fmt.Errorf("read spin file %s: %w", path, err)
	}
	if len(r.Shape) != 2 {
		return spin.Matrix{}, core.NewDimensionError("spins", r.Shape)
	}
	indices, err := r.GetFloat64()
	if err != nil {
		return spin.Matrix{}, fmt.Errorf("decode spin file %s: %w", path, err)
	}

	idxMat, err := spin.NewMatrix(r.Shape[0], r.Shape[1], indices)
	if err != nil {
		return spin.Matrix{}, err
	}

	// Each element is a vertex index into the source, whichever axis
	// holds permutations; applying the lookup element-wise preserves the
	// file's orientation.
	nVert := len(req.Source)
	spun := make([]float64, len(indices))
	for i, idx := range indices {
		switch {
		case math.IsNaN(idx) || idx < 0:
			spun[i] = math.NaN()
		case int(idx) >= nVert:
			return spin.Matrix{}, fmt.Errorf("%w: spin file %s references vertex %d of a %d-vertex source",
				core.ErrShapeMismatch, path, int(idx), nVert)
		default:
			spun[i] = req.Source[int(idx)]
		}
	}

	select {
	case <-ctx.Done():
		return spin.Matrix{}, ctx.Err()
	default:
	}

	return spin.NewMatrix(idxMat.Rows, idxMat.Cols, spun)
}
