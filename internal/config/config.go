package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
	"github.com/san-kum/attractors/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt           = 0.01
	DefaultWindowWidth  = 800
	DefaultWindowHeight = 600
	DefaultFPS          = 60
)

type Config struct {
	System        string             `yaml:"system"`
	Particles     int                `yaml:"particles"`
	MaxParticles  int                `yaml:"max_particles"`
	TrailLength   int                `yaml:"trail_length"`
	TimeScale     float64            `yaml:"time_scale"`
	MinTimeScale  float64            `yaml:"min_time_scale"`
	MaxTimeScale  float64            `yaml:"max_time_scale"`
	Dt            float64            `yaml:"dt"`
	Realtime      bool               `yaml:"realtime"`
	Seed          uint64             `yaml:"seed"`
	ResetOnSwitch bool               `yaml:"reset_on_switch"`
	Window        WindowConfig       `yaml:"window"`
	Parameters    map[string]float64 `yaml:"parameters,omitempty"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		System:       dynamo.Lorenz.String(),
		Particles:    sim.DefaultParticles,
		MaxParticles: sim.DefaultMaxParticles,
		TrailLength:  sim.DefaultTrailLength,
		TimeScale:    sim.DefaultTimeScale,
		MinTimeScale: sim.DefaultMinTimeScale,
		MaxTimeScale: sim.DefaultMaxTimeScale,
		Dt:           DefaultDt,
		Seed:         1,
		Window: WindowConfig{
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
			FPS:    DefaultFPS,
		},
	}
}

// Load reads a YAML file over the defaults. Fields absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// Kind resolves the configured system name.
func (c *Config) Kind() (dynamo.SystemKind, error) {
	return dynamo.ParseSystemKind(c.System)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{dynamo.ErrInvalidConfig}, args...)...)
}

// Validate reports the first out of range field.
func (c *Config) Validate() error {
	kind, err := c.Kind()
	if err != nil {
		return err
	}
	switch {
	case !(c.Dt > 0):
		return invalid("dt must be positive, got %g", c.Dt)
	case c.TrailLength < 0:
		return invalid("trail_length must not be negative, got %d", c.TrailLength)
	case c.Particles < 1:
		return invalid("particles must be at least 1, got %d", c.Particles)
	case c.MaxParticles < c.Particles:
		return invalid("max_particles %d is below particles %d", c.MaxParticles, c.Particles)
	case !(c.MinTimeScale > 0):
		return invalid("min_time_scale must be positive, got %g", c.MinTimeScale)
	case c.MaxTimeScale < c.MinTimeScale:
		return invalid("max_time_scale %g is below min_time_scale %g", c.MaxTimeScale, c.MinTimeScale)
	case c.TimeScale < c.MinTimeScale || c.TimeScale > c.MaxTimeScale:
		return invalid("time_scale %g outside [%g, %g]", c.TimeScale, c.MinTimeScale, c.MaxTimeScale)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return invalid("window size %dx%d", c.Window.Width, c.Window.Height)
	case c.Window.FPS <= 0:
		return invalid("window fps must be positive, got %d", c.Window.FPS)
	}
	p := physics.Defaults(kind)
	if err := p.Apply(c.Parameters); err != nil {
		return fmt.Errorf("%w: %w", dynamo.ErrInvalidConfig, err)
	}
	return nil
}

// EngineOptions converts the configuration into engine options.
func (c *Config) EngineOptions(logger *slog.Logger) (sim.Options, error) {
	if err := c.Validate(); err != nil {
		return sim.Options{}, err
	}
	kind, _ := c.Kind()
	var params map[string]float64
	if len(c.Parameters) > 0 {
		params = make(map[string]float64, len(c.Parameters))
		for k, v := range c.Parameters {
			params[k] = v
		}
	}
	return sim.Options{
		System:        kind,
		Parameters:    params,
		Particles:     c.Particles,
		MaxParticles:  c.MaxParticles,
		TrailLength:   c.TrailLength,
		TimeScale:     c.TimeScale,
		MinTimeScale:  c.MinTimeScale,
		MaxTimeScale:  c.MaxTimeScale,
		TrailsEnabled: true,
		ResetOnSwitch: c.ResetOnSwitch,
		Seed:          c.Seed,
		Logger:        logger,
	}, nil
}
