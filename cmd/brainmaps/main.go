package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"brainmaps/adapters/annot"
	"brainmaps/adapters/npystore"
	"brainmaps/adapters/nulls"
	"brainmaps/adapters/render"
	"brainmaps/adapters/tabular"
	"brainmaps/adapters/workbench"
	"brainmaps/app"
	"brainmaps/domain/core"
	"brainmaps/domain/spin"
	"brainmaps/internal"
	"brainmaps/internal/config"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "brainmaps",
		Short: "Spin-test pipeline for cortical surface maps",
		Long: `brainmaps correlates a source cortical map against a catalog of
target annotations, tests each correlation against a spatial null model,
corrects for multiple comparisons, and writes tables, figures, and a report.`,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/config.json", "Path to the pipeline config file")

	rootCmd.AddCommand(
		newStepCmd(&configPath, "env", "Check the external surface toolchain",
			func(p *app.Pipeline, cmd *cobra.Command) error { return p.StepEnv(cmd.Context()) }),
		newStepCmd(&configPath, "transforms", "Bring every annotation into the working surface space",
			func(p *app.Pipeline, cmd *cobra.Command) error { return p.StepTransforms(cmd.Context()) }),
		newStepCmd(&configPath, "stats", "Run the spin test for every target map",
			func(p *app.Pipeline, cmd *cobra.Command) error { return p.StepStats(cmd.Context()) }),
		newStepCmd(&configPath, "fdr", "Apply the Benjamini-Hochberg correction",
			func(p *app.Pipeline, cmd *cobra.Command) error { return p.StepFDR(cmd.Context()) }),
		newStepCmd(&configPath, "results", "Render the summary figure and the HTML report",
			func(p *app.Pipeline, cmd *cobra.Command) error {
				return p.StepResults(cmd.Context(), core.NewRunID())
			}),
		newStepCmd(&configPath, "all", "Run every pipeline step in order",
			func(p *app.Pipeline, cmd *cobra.Command) error { return p.RunAll(cmd.Context()) }),
		newStepCmd(&configPath, "clean", "Remove the output directory",
			func(p *app.Pipeline, cmd *cobra.Command) error { return p.Clean() }),
		newInitConfigCmd(&configPath),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newStepCmd(configPath *string, use, short string, run func(*app.Pipeline, *cobra.Command) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return run(buildPipeline(cfg), cmd)
		},
	}
}

func newInitConfigCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if _, err := os.Stat(*configPath); err == nil {
				return fmt.Errorf("%s already exists", *configPath)
			}
			if err := config.SaveDefault(*configPath); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", *configPath)
			return nil
		},
	}
}

func buildPipeline(cfg config.Config) *app.Pipeline {
	wb := workbench.NewClient(cfg.WorkbenchBin, cfg.AtlasDir)

	var generator spin.NullGenerator
	switch cfg.NullModel {
	case config.NullModelPermutation:
		generator = nulls.NewPermutationGenerator()
	default:
		generator = nulls.NewSpinFileGenerator(cfg.SpinDir)
	}

	return app.NewPipeline(cfg, internal.DefaultLogger, app.Deps{
		Annotations: annot.NewFileSource(cfg.DataDir),
		Transformer: wb,
		EnvChecker:  wb,
		Generator:   generator,
		NullStore:   npystore.NewStore(cfg.NullsDir()),
		Results:     tabular.NewStore(cfg.OutDir),
		Figures:     render.NewBoxplotRenderer(),
	})
}
