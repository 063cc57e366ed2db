package workbench

import (
	"context"
	"errors"
	"strings"
	"testing"

	"brainmaps/domain/catalog"
	"brainmaps/domain/core"
	"brainmaps/domain/surface"
)

func TestVersionMissingBinary(t *testing.T) {
	c := NewClient(t.TempDir(), t.TempDir())

	_, err := c.Version(context.Background())
	if !errors.Is(err, core.ErrToolUnavailable) {
		t.Fatalf("expected tool-unavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "wb_command") {
		t.Errorf("error %q should name the binary", err)
	}
}

func TestResampleMissingBinary(t *testing.T) {
	c := NewClient(t.TempDir(), "atlases")

	err := c.ResampleMetric(context.Background(), "in.func.gii", "out.func.gii",
		surface.HemiLeft, catalog.SpaceDensity{Space: surface.SpaceFsaverage, Density: surface.Den164k}, catalog.Working)
	if !errors.Is(err, core.ErrToolUnavailable) {
		t.Fatalf("expected tool-unavailable, got %v", err)
	}
}

func TestSpherePathNaming(t *testing.T) {
	c := NewClient("", "data/atlases")

	got := c.spherePath(surface.HemiRight, catalog.Working)
	want := "data/atlases/fsLR-32k_sphere.R.surf.gii"
	if got != want {
		t.Errorf("spherePath = %q, want %q", got, want)
	}
}
