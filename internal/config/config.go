package config

import (
	"fmt"
	"os"

	"github.com/san-kum/chamber/internal/dynamo"
	"github.com/san-kum/chamber/internal/field"
	"github.com/san-kum/chamber/internal/integrators"
	"github.com/san-kum/chamber/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS   = 50
	DefaultTheme = "cyberpunk"
)

type Config struct {
	Simulation SimulationConfig    `yaml:"simulation"`
	Integrator string              `yaml:"integrator"`
	Seed       int64               `yaml:"seed"`
	Spawn      physics.SpawnConfig `yaml:"spawn"`
	Grid       GridConfig          `yaml:"grid"`
	Initial    InitialConfig       `yaml:"initial"`
	View       ViewConfig          `yaml:"view"`
}

type SimulationConfig struct {
	G             float64 `yaml:"g"`
	TimeStep      float64 `yaml:"time_step"`
	PositionScale float64 `yaml:"position_scale"`
	Softening     float64 `yaml:"softening"`
	WorldWidth    float64 `yaml:"world_width"`
	WorldHeight   float64 `yaml:"world_height"`
	ForceExponent float64 `yaml:"force_exponent"`
	FieldExponent float64 `yaml:"field_exponent"`
}

// GridConfig leaves the bounds implicit: the grid always covers the world.
type GridConfig struct {
	Spacing    float64 `yaml:"spacing"`
	SampleStep float64 `yaml:"sample_step"`
	Distortion float64 `yaml:"distortion"`
}

// InitialConfig lists bodies spawned before the first step.
type InitialConfig struct {
	Planets int `yaml:"planets"`
	Stars   int `yaml:"stars"`
}

type ViewConfig struct {
	FPS      int    `yaml:"fps"`
	Theme    string `yaml:"theme"`
	ShowGrid bool   `yaml:"show_grid"`
}

func DefaultConfig() *Config {
	d := dynamo.DefaultConfig()
	return &Config{
		Simulation: SimulationConfig{
			G:             d.G,
			TimeStep:      d.TimeStep,
			PositionScale: d.PositionScale,
			Softening:     d.Softening,
			WorldWidth:    d.WorldWidth,
			WorldHeight:   d.WorldHeight,
			ForceExponent: d.ForceExponent,
			FieldExponent: d.FieldExponent,
		},
		Integrator: integrators.Default,
		Spawn:      physics.DefaultSpawnConfig(),
		Grid: GridConfig{
			Spacing:    field.DefaultSpacing,
			SampleStep: field.DefaultSampleStep,
			Distortion: field.DefaultDistortion,
		},
		View: ViewConfig{
			FPS:      DefaultFPS,
			Theme:    DefaultTheme,
			ShowGrid: true,
		},
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys
// it changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Dynamo() dynamo.Config {
	s := c.Simulation
	return dynamo.Config{
		G:             s.G,
		TimeStep:      s.TimeStep,
		PositionScale: s.PositionScale,
		Softening:     s.Softening,
		WorldWidth:    s.WorldWidth,
		WorldHeight:   s.WorldHeight,
		ForceExponent: s.ForceExponent,
		FieldExponent: s.FieldExponent,
	}
}

func (c *Config) FieldGrid() field.Grid {
	return field.Grid{
		Spacing:    c.Grid.Spacing,
		SampleStep: c.Grid.SampleStep,
		Distortion: c.Grid.Distortion,
		Bounds:     field.World(c.Dynamo()),
	}
}

// Validate checks every section so that errors surface when the file is
// loaded rather than on the first frame.
func (c *Config) Validate() error {
	if err := c.Dynamo().Validate(); err != nil {
		return err
	}
	if err := c.Spawn.Validate(); err != nil {
		return err
	}
	if err := c.FieldGrid().Validate(); err != nil {
		return err
	}
	if _, err := integrators.New(c.Integrator); err != nil {
		return err
	}
	if c.Initial.Planets < 0 || c.Initial.Stars < 0 {
		return fmt.Errorf("%w: initial body counts must be non-negative", dynamo.ErrInvalidConfig)
	}
	if c.View.FPS <= 0 {
		return &dynamo.ConfigError{Field: "view.fps", Value: float64(c.View.FPS)}
	}
	return nil
}

// Clone returns a deep copy; presets are shared values and must not be
// edited in place.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
