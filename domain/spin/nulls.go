package spin

import (
	"fmt"

	"brainmaps/domain/core"
)

// Matrix is a dense row-major 2-D array as produced by a null generator.
// The generator contract does not fix which axis holds vertices and which
// holds permutations; ResolveNulls disambiguates before any use.
type Matrix struct {
	Rows, Cols int
	Data       []float64
}

// NewMatrix validates dimensions against the backing slice.
func NewMatrix(rows, cols int, data []float64) (Matrix, error) {
	if rows <= 0 || cols <= 0 || rows*cols != len(data) {
		return Matrix{}, fmt.Errorf("%w: %dx%d matrix needs %d values, got %d",
			core.ErrShapeMismatch, rows, cols, rows*cols, len(data))
	}
	return Matrix{Rows: rows, Cols: cols, Data: data}, nil
}

// At returns the element at row i, column j.
func (m Matrix) At(i, j int) float64 { return m.Data[i*m.Cols+j] }

// Shape returns the dimensions as a slice for error reporting.
func (m Matrix) Shape() []int { return []int{m.Rows, m.Cols} }

// Transpose returns a transposed copy.
func (m Matrix) Transpose() Matrix {
	out := make([]float64, len(m.Data))
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out[j*m.Rows+i] = m.Data[i*m.Cols+j]
		}
	}
	return Matrix{Rows: m.Cols, Cols: m.Rows, Data: out}
}

// ResolvedNulls is a spin matrix tagged with the roles of its axes. It is
// the only way to iterate permutations, which removes shape-sniffing from
// every consumer.
type ResolvedNulls struct {
	mat           Matrix
	verticesOnRow bool
}

// ResolveNulls determines which axis of a spin matrix is the vertex axis
// by matching against the source vector length. A square matrix resolves
// as vertices-on-rows. When neither axis matches, the result is a shape
// error carrying the expected vertex count and the actual shape, fatal to
// the named map only.
func ResolveNulls(name core.MapKey, m Matrix, nVertices int) (ResolvedNulls, error) {
	switch {
	case m.Rows == nVertices:
		return ResolvedNulls{mat: m, verticesOnRow: true}, nil
	case m.Cols == nVertices:
		return ResolvedNulls{mat: m, verticesOnRow: false}, nil
	}
	return ResolvedNulls{}, core.NewShapeError(name, nVertices, m.Shape())
}

// Permutations returns the number of spun copies in the matrix.
func (r ResolvedNulls) Permutations() int {
	if r.verticesOnRow {
		return r.mat.Cols
	}
	return r.mat.Rows
}

// Vertices returns the length of each spun copy.
func (r ResolvedNulls) Vertices() int {
	if r.verticesOnRow {
		return r.mat.Rows
	}
	return r.mat.Cols
}

// Permutation copies the k-th spun map into dst, which must have length
// Vertices().
func (r ResolvedNulls) Permutation(k int, dst []float64) []float64 {
	if r.verticesOnRow {
		for v := 0; v < r.mat.Rows; v++ {
			dst[v] = r.mat.At(v, k)
		}
		return dst
	}
	copy(dst, r.mat.Data[k*r.mat.Cols:(k+1)*r.mat.Cols])
	return dst
}

// NullCorrelations converts a spin matrix into the per-permutation null
// correlation vector against a fixed target map: one masked Pearson r per
// spun copy, in permutation order, unrounded.
//
// This is the standalone form of the conversion used inside the spin-test
// evaluator; both paths share this implementation so persisted raw null
// matrices convert bit-identically to the inline computation.
// NullsToCorrelations converts a persisted null array of any accepted
// shape. A 1-D array is already a correlation vector and passes through
// unchanged; a 2-D array is resolved and converted; anything else is a
// dimension error.
func NullsToCorrelations(name core.MapKey, shape []int, data, target []float64) ([]float64, error) {
	switch len(shape) {
	case 1:
		return data, nil
	case 2:
		m, err := NewMatrix(shape[0], shape[1], data)
		if err != nil {
			return nil, err
		}
		return NullCorrelations(name, m, target)
	}
	return nil, core.NewDimensionError(name, shape)
}

func NullCorrelations(name core.MapKey, m Matrix, target []float64) ([]float64, error) {
	resolved, err := ResolveNulls(name, m, len(target))
	if err != nil {
		return nil, err
	}

	nulls := make([]float64, resolved.Permutations())
	perm := make([]float64, resolved.Vertices())
	for k := range nulls {
		r, err := PearsonIgnoreZero(resolved.Permutation(k, perm), target)
		if err != nil {
			return nil, fmt.Errorf("permutation %d of %q: %w", k, name, err)
		}
		nulls[k] = r
	}
	return nulls, nil
}
