package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"brainmaps/domain/core"
	"brainmaps/internal/config"
)

// RunManifest records what a full pipeline run was configured with, so a
// result directory is self-describing.
type RunManifest struct {
	RunID      core.RunID    `json:"run_id"`
	StartedAt  string        `json:"started_at"`
	FinishedAt string        `json:"finished_at"`
	Config     config.Config `json:"config"`
	Targets    []core.MapKey `json:"targets"`
}

const manifestFile = "manifest.json"

func (p *Pipeline) writeManifest(runID core.RunID, started core.Timestamp) error {
	rows, err := p.results.ReadCorrelationsFDR()
	if err != nil {
		return err
	}
	targets := make([]core.MapKey, 0, len(rows))
	for _, r := range rows {
		targets = append(targets, r.Map)
	}

	m := RunManifest{
		RunID:      runID,
		StartedAt:  started.String(),
		FinishedAt: core.Now().String(),
		Config:     p.cfg,
		Targets:    targets,
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(p.cfg.OutDir, manifestFile)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	p.log.Info("wrote %s", path)
	return nil
}
