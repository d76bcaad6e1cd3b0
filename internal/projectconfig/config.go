// Package projectconfig provides the ProjectConfig struct and loader for
// .forcegrade.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up by Load.
const FileName = ".forcegrade.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultFormat         = "text"
	DefaultPassThreshold  = 0.8
	DefaultMaxSearchDepth = 10
)

// OutputConfig holds report settings.
type OutputConfig struct {
	Format        string `yaml:"format,omitempty"`
	DebugFeedback *bool  `yaml:"debug_feedback,omitempty"`
}

// GradingConfig holds grading settings.
type GradingConfig struct {
	PassThreshold     *float64 `yaml:"pass_threshold,omitempty"`
	SeedInitialForces *bool    `yaml:"seed_initial_forces,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .forcegrade.yaml.
type ProjectConfig struct {
	// Tolerances is decoded by scoring.DecodeTolerances; keys match the
	// tolerances block of a task.
	Tolerances map[string]any `yaml:"tolerances,omitempty"`
	Output     OutputConfig   `yaml:"output,omitempty"`
	Grading    GradingConfig  `yaml:"grading,omitempty"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Tolerances: map[string]any{},
		Output: OutputConfig{
			Format:        DefaultFormat,
			DebugFeedback: boolPtr(false),
		},
		Grading: GradingConfig{
			PassThreshold:     floatPtr(DefaultPassThreshold),
			SeedInitialForces: boolPtr(false),
		},
	}
}

// Load finds .forcegrade.yaml by walking up from startDir, unmarshals it,
// and fills in missing fields with defaults. If no config file is found,
// it returns defaults with a nil error. Real I/O errors are returned.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	path, data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if t := fileCfg.Grading.PassThreshold; t != nil && (*t < 0 || *t > 1) {
		return nil, fmt.Errorf("%s: grading.pass_threshold must be within [0, 1], got %g", path, *t)
	}

	mergeConfig(cfg, &fileCfg)
	cfg.Path = path
	return cfg, nil
}

// findConfigFile walks up from dir looking for the config file. Returns
// os.ErrNotExist if none is found within DefaultMaxSearchDepth levels.
func findConfigFile(dir string) (string, []byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for range DefaultMaxSearchDepth {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return p, data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return "", nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	for k, v := range src.Tolerances {
		dst.Tolerances[k] = v
	}

	if src.Output.Format != "" {
		dst.Output.Format = src.Output.Format
	}
	if src.Output.DebugFeedback != nil {
		dst.Output.DebugFeedback = src.Output.DebugFeedback
	}

	if src.Grading.PassThreshold != nil {
		dst.Grading.PassThreshold = src.Grading.PassThreshold
	}
	if src.Grading.SeedInitialForces != nil {
		dst.Grading.SeedInitialForces = src.Grading.SeedInitialForces
	}
}

func boolPtr(b bool) *bool { return &b }

func floatPtr(f float64) *float64 { return &f }
