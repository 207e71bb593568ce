// Package config provides configuration loading and access for the navarea tools.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all navigation configuration parameters.
type Config struct {
	Mesh      MeshConfig      `yaml:"mesh"`
	Editing   EditingConfig   `yaml:"editing"`
	Hiding    HidingConfig    `yaml:"hiding"`
	Sniper    SniperConfig    `yaml:"sniper"`
	Encounter EncounterConfig `yaml:"encounter"`
	Danger    DangerConfig    `yaml:"danger"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`

}

// MeshConfig holds mesh geometry parameters.
type MeshConfig struct {
	GridCellSize       float64 `yaml:"grid_cell_size"`       // Spatial index cell size
	GenerationStepSize float64 `yaml:"generation_step_size"` // Sampling stride of the generator
	HalfHumanHeight    float64 `yaml:"half_human_height"`    // Crouched eye height
	StandEyeHeight     float64 `yaml:"stand_eye_height"`     // Standing eye height
	StepHeight         float64 `yaml:"step_height"`          // Tolerance for stacked area lookup
}

// EditingConfig holds split/merge/splice parameters.
type EditingConfig struct {
	SplitMargin          float64 `yaml:"split_margin"`
	MergeTolerance       float64 `yaml:"merge_tolerance"`
	CoplanarThreshold    float64 `yaml:"coplanar_threshold"`
	RequireCoplanarMerge bool    `yaml:"require_coplanar_merge"`
	MaxAspect            float64 `yaml:"max_aspect"`
	Seed                 int64   `yaml:"seed"` // 0 = time-based
}

// HidingConfig holds hiding spot placement and cover test parameters.
type HidingConfig struct {
	CornerSize     float64 `yaml:"corner_size"`
	Inset          float64 `yaml:"inset"`
	CollisionRange float64 `yaml:"collision_range"`
	CoverRange     float64 `yaml:"cover_range"`
	CeilingCheck   float64 `yaml:"ceiling_check"`
	CoverRays      int     `yaml:"cover_rays"`
	CoverRequired  int     `yaml:"cover_required"`
}

// SniperConfig holds sniper spot classification thresholds.
type SniperConfig struct {
	MinRange   float64 `yaml:"min_range"`
	IdealRange float64 `yaml:"ideal_range"`
	IdealSize  float64 `yaml:"ideal_size"`
}

// EncounterConfig holds spot encounter sampling parameters.
type EncounterConfig struct {
	StepSize float64 `yaml:"step_size"`
	SeeRange float64 `yaml:"see_range"`
	FrontDot float64 `yaml:"front_dot"`
}

// DangerConfig holds danger decay parameters.
type DangerConfig struct {
	DecayRate float64 `yaml:"decay_rate"` // Danger units forgotten per second
}

// TelemetryConfig holds bake report parameters.
type TelemetryConfig struct {
	OutputDir  string `yaml:"output_dir"`  // Empty disables CSV output
	PerfWindow int    `yaml:"perf_window"` // Samples kept per bake phase
}

// LoggingConfig holds slog handler settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Mesh.GridCellSize <= 0:
		return fmt.Errorf("mesh.grid_cell_size must be positive, got %g", c.Mesh.GridCellSize)
	case c.Hiding.CoverRays <= 0:
		return fmt.Errorf("hiding.cover_rays must be positive, got %d", c.Hiding.CoverRays)
	case c.Hiding.CoverRequired > c.Hiding.CoverRays:
		return fmt.Errorf("hiding.cover_required (%d) exceeds cover_rays (%d)", c.Hiding.CoverRequired, c.Hiding.CoverRays)
	case c.Encounter.StepSize <= 0:
		return fmt.Errorf("encounter.step_size must be positive, got %g", c.Encounter.StepSize)
	case c.Danger.DecayRate < 0:
		return fmt.Errorf("danger.decay_rate must not be negative, got %g", c.Danger.DecayRate)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be json or text, got %q", c.Logging.Format)
	}
	return nil
}

// applyDefaults fills settings that fall back to a default when unset.
func (c *Config) applyDefaults() {
	if c.Telemetry.PerfWindow <= 0 {
		c.Telemetry.PerfWindow = 120
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
