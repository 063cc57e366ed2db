// Package workbench shells out to Connectome Workbench's wb_command for
// surface-space operations the pipeline does not implement itself.
package workbench

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"brainmaps/domain/catalog"
	"brainmaps/domain/core"
	"brainmaps/domain/surface"
)

const binaryName = "wb_command"

// Client locates and invokes wb_command. An empty binDir searches PATH.
type Client struct {
	binDir   string
	atlasDir string
}

// NewClient creates a workbench client. atlasDir holds the sphere and
// vertex-area files used for resampling.
func NewClient(binDir, atlasDir string) *Client {
	return &Client{binDir: binDir, atlasDir: atlasDir}
}

func (c *Client) binary() string {
	if c.binDir == "" {
		return binaryName
	}
	return filepath.Join(c.binDir, binaryName)
}

// Version reports the installed wb_command version line. A missing or
// broken installation yields core.ErrToolUnavailable so callers can warn
// and continue.
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, c.binary(), "-version").Output()
	if err != nil {
		return "", fmt.Errorf("%w: %s -version: %v", core.ErrToolUnavailable, c.binary(), err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), "version") {
			return strings.TrimSpace(line), nil
		}
	}
	if len(lines) > 0 {
		return strings.TrimSpace(lines[0]), nil
	}
	return "", fmt.Errorf("%w: empty -version output", core.ErrToolUnavailable)
}

// ResampleMetric reprojects a per-hemisphere metric file between template
// spaces using barycentric interpolation.
func (c *Client) ResampleMetric(ctx context.Context, inPath, outPath string, hemi surface.Hemisphere, from, to catalog.SpaceDensity) error {
	args := []string{
		"-metric-resample",
		inPath,
		c.spherePath(hemi, from),
		c.spherePath(hemi, to),
		"BARYCENTRIC",
		outPath,
	}
	out, err := exec.CommandContext(ctx, c.binary(), args...).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("%w: metric-resample %s %s->%s: %s", core.ErrToolUnavailable, hemi, from, to, msg)
	}
	return nil
}

func (c *Client) spherePath(hemi surface.Hemisphere, sd catalog.SpaceDensity) string {
	name := fmt.Sprintf("%s-%s_sphere.%s.surf.gii", sd.Space, sd.Density, hemi)
	return filepath.Join(c.atlasDir, name)
}
