// Package config loads pipeline settings from a JSON file with
// environment-variable overrides. A missing config file is not an error;
// defaults apply, matching how the pipeline is usually run.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"brainmaps/domain/surface"
)

// Null model selection for the spin-test evaluator.
const (
	NullModelSpins       = "spins"       // externally generated spatial rotations
	NullModelPermutation = "permutation" // seeded exchangeable shuffles (no spatial structure)
)

// Config holds project-wide settings for a pipeline run.
type Config struct {
	OutDir       string          `json:"out_dir"`
	DataDir      string          `json:"data_dir"`
	SpinDir      string          `json:"spin_dir"`
	AtlasDir     string          `json:"atlas_dir"`
	WorkbenchBin string          `json:"workbench_bin"`
	Seed         int64           `json:"seed"`
	NumPerm      int             `json:"n_perm"`
	Alpha        float64         `json:"alpha"`
	Space        surface.Space   `json:"space"`
	Density      surface.Density `json:"density"`
	NullModel    string          `json:"null_model"`
	Workers      int             `json:"workers"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		OutDir:    "out",
		DataDir:   "data",
		SpinDir:   "data/spins",
		Seed:      42,
		NumPerm:   1000,
		Alpha:     0.05,
		Space:     surface.SpaceFsLR,
		Density:   surface.Den32k,
		NullModel: NullModelSpins,
		Workers:   1,
	}
}

// Load reads the config file at path, applies environment overrides
// (optionally from a .env file), and validates the result. A missing file
// yields defaults.
func Load(path string) (Config, error) {
	// .env is optional; ignore its absence.
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if err := json.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BRAINMAPS_OUT_DIR"); v != "" {
		cfg.OutDir = v
	}
	if v := os.Getenv("BRAINMAPS_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("BRAINMAPS_SPIN_DIR"); v != "" {
		cfg.SpinDir = v
	}
	if v := os.Getenv("BRAINMAPS_WORKBENCH_BIN"); v != "" {
		cfg.WorkbenchBin = v
	}
	if v := os.Getenv("BRAINMAPS_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
	if v := os.Getenv("BRAINMAPS_N_PERM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.NumPerm = n
		}
	}
	if v := os.Getenv("BRAINMAPS_ALPHA"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Alpha = f
		}
	}
	if v := os.Getenv("BRAINMAPS_NULL_MODEL"); v != "" {
		cfg.NullModel = v
	}
	if v := os.Getenv("BRAINMAPS_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
}

// Validate checks setting ranges.
func (c Config) Validate() error {
	if c.NumPerm < 1 {
		return fmt.Errorf("n_perm must be positive, got %d", c.NumPerm)
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf("alpha must be in (0, 1), got %g", c.Alpha)
	}
	if c.NullModel != NullModelSpins && c.NullModel != NullModelPermutation {
		return fmt.Errorf("unknown null_model %q", c.NullModel)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if _, err := surface.VerticesPerHemi(c.Space, c.Density); err != nil {
		return err
	}
	return nil
}

// NullsDir is where per-target null correlation vectors are written.
func (c Config) NullsDir() string { return filepath.Join(c.OutDir, "nulls") }

// FigsDir is where figures are written.
func (c Config) FigsDir() string { return filepath.Join(c.OutDir, "figs") }

// SaveDefault writes a default config file, creating parent directories.
func SaveDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(Default(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
