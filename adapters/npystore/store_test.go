package npystore

import (
	"bytes"
	"encoding/binary"
	"os"
	"strings"
	"testing"

	"github.com/kshedden/gonpy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brainmaps/domain/core"
)

func TestStore_RoundTrip(t *testing.T) {
	s := NewStore(t.TempDir() + "/nulls")
	in := []float64{0.12, -0.38, 0.051, 0.9999991}

	require.NoError(t, s.Save("myelin", in))

	out, err := s.Load("myelin")
	require.NoError(t, err)
	assert.Equal(t, in, out, "null vectors must round-trip at full precision")
}

func TestStore_MissingFile(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.Load("genepc1")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMissingArtifact)
	assert.Contains(t, err.Error(), "genepc1.npy")
	assert.Contains(t, err.Error(), "stats", "error should name the producing stage")
}

func writeShaped(t *testing.T, path string, shape []int) {
	t.Helper()
	w, err := gonpy.NewFileWriter(path)
	require.NoError(t, err)
	n := 1
	for _, d := range shape {
		n *= d
	}
	w.Shape = shape
	require.NoError(t, w.WriteFloat64(make([]float64, n)))
}

// writeRawNpy emits a minimal npy v1.0 file with the given shape tuple.
func writeRawNpy(t *testing.T, path, shape string, data []float64) {
	t.Helper()

	header := "{'descr': '<f8', 'fortran_order': False, 'shape': " + shape + ", }"
	// Total header (magic + version + length + dict) pads to 64 bytes.
	for (10+len(header)+1)%64 != 0 {
		header += " "
	}
	header += "\n"

	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY")
	buf.Write([]byte{1, 0})
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint16(len(header))))
	buf.WriteString(header)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, data))

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestStore_ShapeValidation(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	// Squeezable 2-D shapes are tolerated.
	writeShaped(t, s.Path("colvec"), []int{5, 1})
	vec, err := s.Load("colvec")
	require.NoError(t, err)
	assert.Len(t, vec, 5)

	writeShaped(t, s.Path("rowvec"), []int{1, 7})
	vec, err = s.Load("rowvec")
	require.NoError(t, err)
	assert.Len(t, vec, 7)

	// A raw spins stack is rejected with the target name and shape. The
	// file is written byte-by-byte since the gonpy writer targets vectors
	// and matrices.
	writeRawNpy(t, s.Path("devexp"), "(4, 3, 2)", make([]float64, 24))
	_, err = s.Load("devexp")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotAVector)
	assert.Contains(t, err.Error(), "devexp")
	assert.Contains(t, err.Error(), "[4 3 2]")
	assert.True(t, strings.Contains(err.Error(), "re-run"), "error should tell the caller to regenerate")

	// A non-degenerate 2-D matrix is also not a vector.
	writeShaped(t, s.Path("isv"), []int{6, 2})
	_, err = s.Load("isv")
	assert.ErrorIs(t, err, core.ErrNotAVector)
}
