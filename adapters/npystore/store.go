// Package npystore persists null correlation vectors as NumPy .npy files,
// one per target, so downstream tooling can read them directly.
package npystore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kshedden/gonpy"

	"brainmaps/domain/core"
)

// Store reads and writes 1-D null correlation vectors under a directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the file a target's nulls are stored at.
func (s *Store) Path(name core.MapKey) string {
	return filepath.Join(s.dir, string(name)+".npy")
}

// Save writes the vector at full precision.
func (s *Store) Save(name core.MapKey, nulls []float64) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	w, err := gonpy.NewFileWriter(s.Path(name))
	if err != nil {
		return fmt.Errorf("open nulls for %q: %w", name, err)
	}
	w.Shape = []int{len(nulls)}
	if err := w.WriteFloat64(nulls); err != nil {
		return fmt.Errorf("write nulls for %q: %w", name, err)
	}
	return nil
}

// Load reads a persisted null vector. The file must hold exactly 1-D data,
// or a 2-D array with a singleton axis; anything else means the raw spun
// maps were saved instead of the per-permutation correlations, and the
// caller is told to regenerate.
func (s *Store) Load(name core.MapKey) ([]float64, error) {
	path := s.Path(name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, core.NewMissingArtifactError(path, "stats")
	}

	r, err := gonpy.NewFileReader(path)
	if err != nil {
		return nil, fmt.Errorf("read nulls for %q: %w", name, err)
	}
	if !vectorShape(r.Shape) {
		return nil, core.NewNullVectorError(name, r.Shape)
	}
	data, err := r.GetFloat64()
	if err != nil {
		return nil, fmt.Errorf("decode nulls for %q: %w", name, err)
	}
	return data, nil
}

// vectorShape accepts 1-D shapes and trivially squeezable 2-D shapes like
// (n, 1) or (1, n).
func vectorShape(shape []int) bool {
	switch len(shape) {
	case 1:
		return true
	case 2:
		return shape[0] == 1 || shape[1] == 1
	}
	return false
}
