package sim

import (
	"io"
	"log/slog"
	"math"

	"github.com/san-kum/attractors/internal/dynamo"
)

const (
	DefaultParticles    = 50
	DefaultMaxParticles = 200
	DefaultTrailLength  = 100
	DefaultTimeScale    = 1.0
	DefaultMinTimeScale = 0.1
	DefaultMaxTimeScale = 5.0
)

// Options configures a new Engine. Start from DefaultOptions; NewEngine
// repairs out-of-range counts and scales but honours TrailLength as given.
type Options struct {
	System        dynamo.SystemKind
	Parameters    map[string]float64 // overrides applied on top of System's defaults
	Particles     int
	MaxParticles  int
	TrailLength   int
	TimeScale     float64
	MinTimeScale  float64
	MaxTimeScale  float64
	TrailsEnabled bool
	ResetOnSwitch bool // re-seed particles when the system changes
	Seed          uint64
	Logger        *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		System:        dynamo.Lorenz,
		Particles:     DefaultParticles,
		MaxParticles:  DefaultMaxParticles,
		TrailLength:   DefaultTrailLength,
		TimeScale:     DefaultTimeScale,
		MinTimeScale:  DefaultMinTimeScale,
		MaxTimeScale:  DefaultMaxTimeScale,
		TrailsEnabled: true,
		Seed:          1,
	}
}

func (o Options) normalize() Options {
	if !o.System.Valid() {
		o.System = dynamo.Lorenz
	}
	if o.MaxParticles < 1 {
		o.MaxParticles = DefaultMaxParticles
	}
	o.Particles = clampInt(o.Particles, 1, o.MaxParticles)
	if !(o.MinTimeScale > 0) {
		o.MinTimeScale = DefaultMinTimeScale
	}
	if !(o.MaxTimeScale >= o.MinTimeScale) {
		o.MaxTimeScale = max(DefaultMaxTimeScale, o.MinTimeScale)
	}
	if math.IsNaN(o.TimeScale) {
		o.TimeScale = DefaultTimeScale
	}
	o.TimeScale = clampFloat(o.TimeScale, o.MinTimeScale, o.MaxTimeScale)
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func clampFloat(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
