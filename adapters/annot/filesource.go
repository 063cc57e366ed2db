// Package annot loads brain-map annotations from a local data directory.
//
// The directory holds per-hemisphere vertex data already resampled to the
// working space by the external toolchain (see the workbench adapter),
// mirrored as .npy vectors: <name>.L.npy and <name>.R.npy. Single-
// hemisphere annotations ship only their side; the other is NaN-padded.
package annot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kshedden/gonpy"

	"brainmaps/domain/catalog"
	"brainmaps/domain/core"
	"brainmaps/domain/surface"
)

// FileSource reads annotation vectors from dataDir.
type FileSource struct {
	dataDir string
}

// NewFileSource creates an annotation source rooted at dataDir.
func NewFileSource(dataDir string) *FileSource {
	return &FileSource{dataDir: dataDir}
}

// HemiPath returns the expected file for one hemisphere of an entry.
func (s *FileSource) HemiPath(name core.MapKey, hemi surface.Hemisphere) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("%s.%s.npy", name, hemi))
}

// Load builds the full-cortex LH||RH vector for a catalog entry. Both
// hemisphere files absent is a missing-artifact error pointing at the
// transforms step; a present file with the wrong vertex count is a shape
// error.
func (s *FileSource) Load(ctx context.Context, entry catalog.Entry) (surface.Map, error) {
	if err := ctx.Err(); err != nil {
		return surface.Map{}, err
	}

	nPerHemi, err := surface.VerticesPerHemi(catalog.Working.Space, catalog.Working.Density)
	if err != nil {
		return surface.Map{}, err
	}

	left, leftOK, err := s.readHemi(entry.Name, surface.HemiLeft, nPerHemi)
	if err != nil {
		return surface.Map{}, err
	}
	right, rightOK, err := s.readHemi(entry.Name, surface.HemiRight, nPerHemi)
	if err != nil {
		return surface.Map{}, err
	}

	switch {
	case !leftOK && !rightOK:
		return surface.Map{}, core.NewMissingArtifactError(s.HemiPath(entry.Name, surface.HemiLeft), "transforms")
	case !leftOK:
		left = surface.NaNVector(nPerHemi)
	case !rightOK:
		right = surface.NaNVector(nPerHemi)
	}

	return surface.Map{
		Name:   entry.Name,
		Values: surface.ConcatHemis(left, right),
	}, nil
}

func (s *FileSource) readHemi(name core.MapKey, hemi surface.Hemisphere, nPerHemi int) ([]float64, bool, error) {
	path := s.HemiPath(name, hemi)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, false, nil
	}

	r, err := gonpy.NewFileReader(path)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}
	if !vectorShape(r.Shape) {
		return nil, false, fmt.Errorf("%w: %s holds shape %v, expected a 1-D vector",
			core.ErrShapeMismatch, path, r.Shape)
	}
	data, err := r.GetFloat64()
	if err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", path, err)
	}
	if len(data) != nPerHemi {
		return nil, false, fmt.Errorf("%w: %s has %d vertices, the %s-%s hemisphere needs %d; re-run the transforms step",
			core.ErrShapeMismatch, path, len(data), catalog.Working.Space, catalog.Working.Density, nPerHemi)
	}
	return data, true, nil
}

func vectorShape(shape []int) bool {
	switch len(shape) {
	case 1:
		return true
	case 2:
		return shape[0] == 1 || shape[1] == 1
	}
	return false
}
