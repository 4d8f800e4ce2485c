package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/attractors/internal/dynamo"
)

// RunConfig drives a headless simulation.
type RunConfig struct {
	Dt     float64
	Frames int
}

// Observer is notified once before the first frame and after every frame.
type Observer interface {
	OnFrame(e *Engine)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(e *Engine)

func (f ObserverFunc) OnFrame(e *Engine) { f(e) }

// Result summarises a headless run.
type Result struct {
	Frames   int
	Time     float64
	Diverged int // particles whose state is no longer finite
}

// Run advances the engine cfg.Frames times with a fixed step, stopping early
// if ctx is cancelled.
func (e *Engine) Run(ctx context.Context, cfg RunConfig, observers ...Observer) (*Result, error) {
	if err := validateRun(cfg); err != nil {
		return nil, err
	}

	result := &Result{}
	for _, o := range observers {
		o.OnFrame(e)
	}

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			result.Time = e.time
			result.Diverged = e.diverged()
			return result, ctx.Err()
		default:
		}

		e.Advance(cfg.Dt)
		result.Frames++

		for _, o := range observers {
			o.OnFrame(e)
		}
	}

	result.Time = e.time
	result.Diverged = e.diverged()
	if result.Diverged > 0 {
		e.log.Warn("particles diverged", "count", result.Diverged, "system", e.system)
	}
	return result, nil
}

func validateRun(cfg RunConfig) error {
	if !(cfg.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Frames < 0 {
		return fmt.Errorf("%w: frames must not be negative, got %d", dynamo.ErrInvalidConfig, cfg.Frames)
	}
	return nil
}

func (e *Engine) diverged() int {
	n := 0
	for i := range e.particles {
		if !e.particles[i].State.IsValid() {
			n++
		}
	}
	return n
}
