// Package ports declares the capability interfaces the pipeline is wired
// with. Adapters implement them; the orchestrator only sees these
// contracts.
package ports

import (
	"context"

	"brainmaps/domain/catalog"
	"brainmaps/domain/surface"
)

// AnnotationSource fetches a catalog entry as a full-cortex LH||RH vector
// in the working space, NaN-padded where a hemisphere is missing.
type AnnotationSource interface {
	Load(ctx context.Context, entry catalog.Entry) (surface.Map, error)
}

// SurfaceTransformer reprojects a per-hemisphere metric file between
// surface template spaces. Implementations delegate to an external
// toolchain; the pipeline never performs surface resampling itself.
type SurfaceTransformer interface {
	ResampleMetric(ctx context.Context, inPath, outPath string, hemi surface.Hemisphere, from, to catalog.SpaceDensity) error
}

// EnvChecker probes the optional external visualization/transform
// toolchain. Failures are reported, not fatal.
type EnvChecker interface {
	Version(ctx context.Context) (string, error)
}
