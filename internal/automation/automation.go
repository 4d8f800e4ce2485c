package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/sim"
	"github.com/san-kum/attractors/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of headless runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run in a scenario. Zero fields take the engine
// defaults.
type ScenarioStep struct {
	System          string             `yaml:"system"`
	Preset          string             `yaml:"preset"`
	Params          map[string]float64 `yaml:"params"`
	Particles       int                `yaml:"particles"`
	TimeScale       float64            `yaml:"time_scale"`
	Dt              float64            `yaml:"dt"`
	Frames          int                `yaml:"frames"`
	Seed            uint64             `yaml:"seed"`
	InitState       []float64          `yaml:"init_state"`
	SampleEvery     int                `yaml:"sample_every"`
	RecordParticles int                `yaml:"record_particles"`
	Save            bool               `yaml:"save"`
}

// StepResult is the outcome of one scenario step. RunID is empty unless
// the step was saved.
type StepResult struct {
	Step   int
	System dynamo.SystemKind
	RunID  string
	Result *sim.Result
	Final  []dynamo.Vec3
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%w: scenario %q has no steps", dynamo.ErrInvalidConfig, scenario.Name)
	}

	return &scenario, nil
}

// options builds engine options for the step.
func (s ScenarioStep) options(logger *slog.Logger) (sim.Options, error) {
	kind, err := dynamo.ParseSystemKind(s.System)
	if err != nil {
		return sim.Options{}, err
	}
	opts := sim.DefaultOptions()
	opts.System = kind
	opts.Logger = logger
	opts.Parameters = map[string]float64{}
	if s.Preset != "" {
		p := config.GetPreset(kind.String(), s.Preset)
		if p == nil {
			return sim.Options{}, fmt.Errorf("%w: no preset %q for system %q", dynamo.ErrInvalidConfig, s.Preset, kind)
		}
		for k, v := range p.Parameters {
			opts.Parameters[k] = v
		}
	}
	for k, v := range s.Params {
		opts.Parameters[k] = v
	}
	if s.Particles > 0 {
		opts.Particles = s.Particles
		opts.MaxParticles = max(opts.MaxParticles, s.Particles)
	}
	if s.TimeScale > 0 {
		opts.TimeScale = s.TimeScale
	}
	if s.Seed != 0 {
		opts.Seed = s.Seed
	}
	return opts, nil
}

func (s ScenarioStep) runConfig() sim.RunConfig {
	cfg := sim.RunConfig{Dt: s.Dt, Frames: s.Frames}
	if cfg.Dt == 0 {
		cfg.Dt = config.DefaultDt
	}
	if cfg.Frames == 0 {
		cfg.Frames = 1000
	}
	return cfg
}

// RunScenario executes all steps in order. Steps marked Save are written
// to store; store may be nil when no step saves.
func RunScenario(ctx context.Context, scenario *Scenario, store *storage.Store, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		logger.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "system", step.System)

		opts, err := step.options(logger)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		e, err := sim.NewEngine(opts)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		if len(step.InitState) > 0 {
			if len(step.InitState) != 3 {
				return results, fmt.Errorf("step %d: %w: init_state needs 3 values, got %d", i+1, dynamo.ErrInvalidConfig, len(step.InitState))
			}
			e.Place(0, dynamo.Vec3{X: step.InitState[0], Y: step.InitState[1], Z: step.InitState[2]})
		}

		cfg := step.runConfig()
		rec := storage.NewRecorder(step.SampleEvery, step.RecordParticles)
		res, err := e.Run(ctx, cfg, rec)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		out := StepResult{Step: i + 1, System: e.System(), Result: res}
		for _, p := range e.Particles() {
			out.Final = append(out.Final, p.State)
		}

		if step.Save {
			if store == nil {
				return results, fmt.Errorf("step %d: %w: save requested without a store", i+1, dynamo.ErrInvalidConfig)
			}
			out.RunID, err = store.Save(storage.RunMetadata{
				System:      e.System().String(),
				Seed:        opts.Seed,
				Dt:          cfg.Dt,
				TimeScale:   e.TimeScale(),
				Frames:      res.Frames,
				Particles:   e.ParticleCount(),
				SampleEvery: rec.Every,
				Parameters:  e.Parameters().Map(),
				Diverged:    res.Diverged,
			}, rec.Samples())
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}

		results = append(results, out)
	}

	return results, nil
}
