package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Shape and validation errors
	ErrShapeMismatch  = errors.New("shape mismatch")
	ErrLengthMismatch = errors.New("vector length mismatch")
	ErrNotAVector     = errors.New("persisted nulls are not a 1-D correlation vector")

	// Artifact errors
	ErrMissingArtifact = errors.New("expected artifact missing")

	// External tool errors (non-fatal to the pipeline)
	ErrToolUnavailable = errors.New("external tool unavailable")

	// Data errors
	ErrInsufficientData = errors.New("insufficient data for analysis")
)

// NewShapeError reports an incompatible null matrix for a given map.
// The message carries the expected vertex count and the actual shape so the
// caller can self-diagnose before regenerating from source.
func NewShapeError(name MapKey, expectedVertices int, shape []int) error {
	return fmt.Errorf("%w for %q: no axis of shape %v matches the expected vertex count %d; regenerate the nulls from source",
		ErrShapeMismatch, name, shape, expectedVertices)
}

// NewDimensionError reports a null array that is not 2-D.
func NewDimensionError(name MapKey, shape []int) error {
	return fmt.Errorf("%w for %q: expected a 2-D spin matrix, got %d-D shape %v; regenerate the nulls from source",
		ErrShapeMismatch, name, len(shape), shape)
}

// NewNullVectorError reports a persisted null array that cannot be read as a
// per-permutation correlation vector. This usually means the raw spun maps
// were saved instead of the correlations.
func NewNullVectorError(name MapKey, shape []int) error {
	return fmt.Errorf("%w: nulls for %q have shape %v; delete the file and re-run the stats step to save the 1-D correlation vector",
		ErrNotAVector, name, shape)
}

// NewMissingArtifactError names the absent path and the pipeline stage that
// should have produced it.
func NewMissingArtifactError(path, stage string) error {
	return fmt.Errorf("%w: %s (run the %q step first)", ErrMissingArtifact, path, stage)
}

// Error checking helpers
func IsShapeError(err error) bool {
	return errors.Is(err, ErrShapeMismatch) || errors.Is(err, ErrNotAVector)
}

func IsMissingArtifact(err error) bool {
	return errors.Is(err, ErrMissingArtifact)
}
