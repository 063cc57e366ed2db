// Package app orchestrates the analysis pipeline: environment check,
// surface transforms, spin-test statistics, FDR correction, and result
// artifacts. Each step reads the previous step's files, so steps can be
// run independently or chained.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"brainmaps/domain/catalog"
	"brainmaps/domain/core"
	"brainmaps/domain/spin"
	"brainmaps/domain/surface"
	"brainmaps/internal"
	"brainmaps/internal/config"
	"brainmaps/internal/report"
	"brainmaps/ports"
)

// Pipeline wires the pipeline steps to their adapters.
type Pipeline struct {
	cfg config.Config
	log *internal.Logger

	annotations ports.AnnotationSource
	transformer ports.SurfaceTransformer
	envChecker  ports.EnvChecker
	generator   spin.NullGenerator
	nullStore   ports.NullStore
	results     ports.ResultStore
	figures     ports.FigureRenderer
}

// Deps bundles the adapter implementations a Pipeline needs.
type Deps struct {
	Annotations ports.AnnotationSource
	Transformer ports.SurfaceTransformer
	EnvChecker  ports.EnvChecker
	Generator   spin.NullGenerator
	NullStore   ports.NullStore
	Results     ports.ResultStore
	Figures     ports.FigureRenderer
}

// NewPipeline creates a pipeline service.
func NewPipeline(cfg config.Config, log *internal.Logger, deps Deps) *Pipeline {
	return &Pipeline{
		cfg:         cfg,
		log:         log,
		annotations: deps.Annotations,
		transformer: deps.Transformer,
		envChecker:  deps.EnvChecker,
		generator:   deps.Generator,
		nullStore:   deps.NullStore,
		results:     deps.Results,
		figures:     deps.Figures,
	}
}

// StepEnv probes the external surface toolchain. A missing toolchain is a
// warning, not a failure: only the transforms step strictly needs it.
func (p *Pipeline) StepEnv(ctx context.Context) error {
	log := p.log.Stage("env")

	version, err := p.envChecker.Version(ctx)
	if err != nil {
		if errors.Is(err, core.ErrToolUnavailable) {
			log.Warn("surface toolchain unavailable: %v", err)
			log.Warn("transforms will fail until wb_command is installed")
			return nil
		}
		return err
	}
	log.Info("found %s", version)
	return nil
}

// StepTransforms brings every catalog annotation into the working space.
// Annotations already stored at the working resolution are verified and
// left alone; the rest are resampled through the external toolchain.
func (p *Pipeline) StepTransforms(ctx context.Context) error {
	log := p.log.Stage("transforms")

	entries := append([]catalog.Entry{catalog.SourceEntry()}, catalog.Targets()...)
	for _, entry := range entries {
		native := catalog.SpaceDensity{Space: entry.Space, Density: entry.Density}
		if native == catalog.Working {
			if _, err := p.annotations.Load(ctx, entry); err != nil {
				return fmt.Errorf("verify %s: %w", entry.Name, err)
			}
			log.Info("%s already in %s-%s", entry.Name, catalog.Working.Space, catalog.Working.Density)
			continue
		}

		// A previously transformed artifact makes the resample a no-op.
		if _, err := p.annotations.Load(ctx, entry); err == nil {
			log.Info("%s already transformed", entry.Name)
			continue
		}

		hemis := []surface.Hemisphere{surface.HemiLeft, surface.HemiRight}
		if entry.SingleHemi() {
			hemis = []surface.Hemisphere{entry.Hemi}
		}
		for _, hemi := range hemis {
			in := filepath.Join(p.cfg.DataDir, "native", fmt.Sprintf("%s.%s.func.gii", entry.Name, hemi))
			out := filepath.Join(p.cfg.DataDir, fmt.Sprintf("%s.%s.func.gii", entry.Name, hemi))
			if err := p.transformer.ResampleMetric(ctx, in, out, hemi, native, catalog.Working); err != nil {
				return fmt.Errorf("resample %s %s: %w", entry.Name, hemi, err)
			}
			log.Info("resampled %s %s from %s-%s", entry.Name, hemi, entry.Space, entry.Density)
		}
	}
	return nil
}

// StepStats runs the spin test of every target against the source map and
// writes the raw correlation table plus the per-target null vectors.
//
// A shape problem in one target's data skips that target with a warning;
// the run fails only if no target succeeds.
func (p *Pipeline) StepStats(ctx context.Context) error {
	log := p.log.Stage("stats")

	src, err := p.annotations.Load(ctx, catalog.SourceEntry())
	if err != nil {
		return fmt.Errorf("load source map: %w", err)
	}
	log.Info("source %s loaded (%d vertices)", src.Name, src.Len())

	evaluator := spin.NewEvaluator(p.generator)
	targets := catalog.Targets()

	type outcome struct {
		result spin.Result
		nulls  []float64
		err    error
	}
	outcomes := make([]outcome, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)
	for i, entry := range targets {
		g.Go(func() error {
			target, err := p.annotations.Load(gctx, entry)
			if err != nil {
				outcomes[i] = outcome{err: err}
				return nil
			}
			res, nulls, err := evaluator.Test(gctx, src.Values, target,
				p.cfg.Space, p.cfg.Density, p.cfg.NumPerm, p.cfg.Seed)
			outcomes[i] = outcome{result: res, nulls: nulls, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	rows := make([]spin.Result, 0, len(targets))
	for i, entry := range targets {
		o := outcomes[i]
		if o.err != nil {
			if core.IsShapeError(o.err) || core.IsMissingArtifact(o.err) {
				log.Warn("skipping %s: %v", entry.Name, o.err)
				continue
			}
			return fmt.Errorf("spin test for %s: %w", entry.Name, o.err)
		}
		if err := p.nullStore.Save(entry.Name, o.nulls); err != nil {
			return fmt.Errorf("save nulls for %s: %w", entry.Name, err)
		}
		log.Info("%s: r=%.4f p=%.4f", entry.Name, o.result.R, o.result.PSpin)
		rows = append(rows, o.result)
	}
	if len(rows) == 0 {
		return fmt.Errorf("no target produced a result; check the data directory")
	}

	if err := p.results.WriteCorrelations(rows); err != nil {
		return err
	}
	log.Info("wrote %d rows", len(rows))
	return nil
}

// StepFDR applies the Benjamini-Hochberg correction to the raw table and
// writes the corrected CSV plus the Excel workbook.
func (p *Pipeline) StepFDR(ctx context.Context) error {
	log := p.log.Stage("fdr")

	raw, err := p.results.ReadCorrelations()
	if err != nil {
		return err
	}

	corrected, err := spin.ApplyFDR(raw, p.cfg.Alpha)
	if err != nil {
		return err
	}
	if err := p.results.WriteCorrelationsFDR(corrected); err != nil {
		return err
	}
	if err := p.results.ExportWorkbook(raw, corrected); err != nil {
		return err
	}

	nSig := 0
	for _, r := range corrected {
		if r.SigFDR {
			nSig++
		}
	}
	log.Info("%d/%d significant at alpha=%g", nSig, len(corrected), p.cfg.Alpha)
	return nil
}

// StepResults renders the null-distribution figure and the HTML report
// from the corrected table and the stored null vectors.
func (p *Pipeline) StepResults(ctx context.Context, runID core.RunID) error {
	log := p.log.Stage("results")

	rows, err := p.results.ReadCorrelationsFDR()
	if err != nil {
		return err
	}

	nulls := make(map[core.MapKey][]float64, len(rows))
	for _, row := range rows {
		v, err := p.nullStore.Load(row.Map)
		if err != nil {
			return fmt.Errorf("nulls for %s: %w", row.Map, err)
		}
		nulls[row.Map] = v
	}

	if err := os.MkdirAll(p.cfg.FigsDir(), 0o755); err != nil {
		return err
	}
	figPath := filepath.Join(p.cfg.FigsDir(), "boxplots.png")
	f, err := os.Create(figPath)
	if err != nil {
		return err
	}
	if err := p.figures.RenderNullBoxplot(f, rows, nulls); err != nil {
		f.Close()
		return fmt.Errorf("render boxplots: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info("wrote %s", figPath)

	info := report.RunInfo{
		RunID:        runID.String(),
		Timestamp:    core.Now().String(),
		Permutations: p.cfg.NumPerm,
		Alpha:        p.cfg.Alpha,
		NullModel:    p.cfg.NullModel,
		Space:        fmt.Sprintf("%s-%s", p.cfg.Space, p.cfg.Density),
	}
	reportPath, err := report.Write(p.cfg.OutDir, info, rows)
	if err != nil {
		return err
	}
	log.Info("wrote %s", reportPath)
	return nil
}

// RunAll executes every step in order and records a run manifest.
func (p *Pipeline) RunAll(ctx context.Context) error {
	runID := core.NewRunID()
	started := core.Now()

	if err := p.StepEnv(ctx); err != nil {
		return err
	}
	if err := p.StepTransforms(ctx); err != nil {
		return err
	}
	if err := p.StepStats(ctx); err != nil {
		return err
	}
	if err := p.StepFDR(ctx); err != nil {
		return err
	}
	if err := p.StepResults(ctx, runID); err != nil {
		return err
	}

	return p.writeManifest(runID, started)
}

// Clean removes the output directory.
func (p *Pipeline) Clean() error {
	p.log.Stage("clean").Info("removing %s", p.cfg.OutDir)
	return os.RemoveAll(p.cfg.OutDir)
}
