// Package surface models cortical-surface brain maps: named per-vertex
// scalar vectors in a standard template space, with left and right
// hemispheres concatenated in a fixed LH-then-RH order.
package surface

import (
	"fmt"
	"math"

	"brainmaps/domain/core"
)

// Space identifies a cortical surface template.
type Space string

const (
	SpaceFsLR      Space = "fsLR"
	SpaceFsaverage Space = "fsaverage"
	SpaceCivet     Space = "civet"
)

// Density identifies the vertex-count resolution of a template.
type Density string

const (
	Den10k  Density = "10k"
	Den32k  Density = "32k"
	Den41k  Density = "41k"
	Den164k Density = "164k"
)

// Hemisphere selects one side of the cortex.
type Hemisphere string

const (
	HemiLeft  Hemisphere = "L"
	HemiRight Hemisphere = "R"
)

// Map is a named brain map: one scalar per cortical vertex, both
// hemispheres concatenated LH||RH. Missing vertices are NaN.
type Map struct {
	Name   core.MapKey
	Values []float64
}

// Len returns the total vertex count.
func (m Map) Len() int { return len(m.Values) }

// verticesPerHemi holds the per-hemisphere vertex counts of the supported
// template/density combinations.
var verticesPerHemi = map[Space]map[Density]int{
	SpaceFsLR:      {Den32k: 32492, Den164k: 163842},
	SpaceFsaverage: {Den10k: 10242, Den41k: 40962, Den164k: 163842},
	SpaceCivet:     {Den41k: 40962},
}

// VerticesPerHemi returns the per-hemisphere vertex count for a
// template/density pair.
func VerticesPerHemi(space Space, den Density) (int, error) {
	if n, ok := verticesPerHemi[space][den]; ok {
		return n, nil
	}
	return 0, fmt.Errorf("unsupported surface space %s-%s", space, den)
}

// InferSpace guesses (space, density) from a per-hemisphere vertex count.
// Unknown counts fall back to fsLR-32k, matching the convention of the
// rest of the pipeline.
func InferSpace(nPerHemi int) (Space, Density) {
	switch nPerHemi {
	case 32492:
		return SpaceFsLR, Den32k
	case 10242:
		return SpaceFsaverage, Den10k
	case 40962:
		return SpaceCivet, Den41k
	case 163842:
		return SpaceFsLR, Den164k
	}
	return SpaceFsLR, Den32k
}

// SanitizeNonFinite returns a copy of v with every non-finite entry
// replaced by NaN. Infinities and NaN are both treated as missing data,
// never as zeros.
func SanitizeNonFinite(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		if math.IsInf(x, 0) {
			out[i] = math.NaN()
		} else {
			out[i] = x
		}
	}
	return out
}
