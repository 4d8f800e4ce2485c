package sim

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
)

// Engine is the simulation state machine. The zero value is not usable;
// construct one with NewEngine.
type Engine struct {
	opts      Options
	log       *slog.Logger
	rng       *rand.Rand
	system    dynamo.SystemKind
	params    physics.ParameterSet
	timeScale float64
	trails    bool
	particles []Particle
	time      float64
	frame     uint64
}

// Status is a snapshot of the engine's observable settings.
type Status struct {
	System     dynamo.SystemKind
	Label      string
	Parameters physics.ParameterSet
	TimeScale  float64
	Particles  int
	Trails     bool
	Time       float64
	Frame      uint64
}

// NewEngine builds an engine with freshly seeded particles. It fails only
// when opts.Parameters names a coefficient the system does not define.
func NewEngine(opts Options) (*Engine, error) {
	opts = opts.normalize()
	e := &Engine{
		opts:      opts,
		log:       opts.Logger,
		rng:       rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		system:    opts.System,
		params:    physics.Defaults(opts.System),
		timeScale: opts.TimeScale,
		trails:    opts.TrailsEnabled,
		particles: make([]Particle, 0, opts.MaxParticles),
	}
	if err := e.params.Apply(opts.Parameters); err != nil {
		return nil, err
	}
	region := physics.Describe(e.system).Region
	for i := 0; i < opts.Particles; i++ {
		e.particles = append(e.particles, e.newParticle(region))
	}
	e.log.Debug("engine created",
		"system", e.system,
		"particles", len(e.particles),
		"trail", opts.TrailLength,
		"time_scale", e.timeScale)
	return e, nil
}

func (e *Engine) newParticle(region physics.Region) Particle {
	return Particle{
		State: seed(e.rng, region),
		Trail: NewTrail(e.opts.TrailLength),
		Color: pastel(e.rng),
	}
}

// Advance integrates every particle by dtWall·timeScale. Non-positive or
// NaN dtWall leaves the engine untouched.
func (e *Engine) Advance(dtWall float64) {
	if !(dtWall > 0) {
		return
	}
	dt := dtWall * e.timeScale
	for i := range e.particles {
		p := &e.particles[i]
		p.Step(physics.Derivative(e.system, p.State, e.params), dt)
		if e.trails {
			p.Trail.Push(p.State)
		}
	}
	e.time += dt
	e.frame++
}

// SelectSystem switches the active system and restores its default
// coefficients. Particles keep their states unless ResetOnSwitch is set.
// Selecting the active system, or an undefined one, does nothing.
func (e *Engine) SelectSystem(k dynamo.SystemKind) bool {
	if !k.Valid() || k == e.system {
		return false
	}
	e.system = k
	e.params = physics.Defaults(k)
	if e.opts.ResetOnSwitch {
		e.reseed()
	}
	e.log.Debug("system selected", "system", k, "reseeded", e.opts.ResetOnSwitch)
	return true
}

// AdjustParameter adds delta to the coefficient in slot. Out of range slots
// are ignored and report false.
func (e *Engine) AdjustParameter(slot int, delta float64) bool {
	v, ok := e.params.AdjustSlot(slot, delta)
	if ok {
		e.log.Debug("parameter adjusted", "system", e.system, "slot", slot, "value", v)
	}
	return ok
}

// SetParameter assigns a coefficient of the active system by name.
func (e *Engine) SetParameter(name string, v float64) error {
	return e.params.Set(name, v)
}

// ApplyParameters assigns several coefficients at once. On error no
// coefficient is changed.
func (e *Engine) ApplyParameters(m map[string]float64) error {
	return e.params.Apply(m)
}

// AdjustTimeScale adds delta to the time scale, clamped to the configured
// bounds, and returns the result.
func (e *Engine) AdjustTimeScale(delta float64) float64 {
	if math.IsNaN(delta) {
		return e.timeScale
	}
	e.timeScale = clampFloat(e.timeScale+delta, e.opts.MinTimeScale, e.opts.MaxTimeScale)
	e.log.Debug("time scale adjusted", "time_scale", e.timeScale)
	return e.timeScale
}

// AdjustParticleCount grows or shrinks the ensemble by delta, clamped to
// [1, MaxParticles]. New particles are appended; removal takes from the end.
func (e *Engine) AdjustParticleCount(delta int) int {
	cur := len(e.particles)
	target := clampInt(cur+delta, 1, e.opts.MaxParticles)
	switch {
	case target > cur:
		region := physics.Describe(e.system).Region
		for len(e.particles) < target {
			e.particles = append(e.particles, e.newParticle(region))
		}
	case target < cur:
		clear(e.particles[target:])
		e.particles = e.particles[:target]
	}
	if target != cur {
		e.log.Debug("particle count adjusted", "particles", target)
	}
	return target
}

// ToggleTrails flips trail recording. Turning trails back on clears every
// trail so old history is not joined to the current positions.
func (e *Engine) ToggleTrails() bool {
	e.trails = !e.trails
	if e.trails {
		e.clearTrails()
	}
	e.log.Debug("trails toggled", "enabled", e.trails)
	return e.trails
}

// Reset re-seeds every particle inside the active system's initial region
// and clears all trails and the clock.
func (e *Engine) Reset() {
	e.reseed()
	e.time = 0
	e.frame = 0
	e.log.Debug("particles reset", "system", e.system, "particles", len(e.particles))
}

func (e *Engine) reseed() {
	region := physics.Describe(e.system).Region
	for i := range e.particles {
		e.particles[i].State = seed(e.rng, region)
		e.particles[i].Trail.Clear()
	}
}

func (e *Engine) clearTrails() {
	for i := range e.particles {
		e.particles[i].Trail.Clear()
	}
}

// Place pins particle i to s and clears its trail.
func (e *Engine) Place(i int, s dynamo.Vec3) bool {
	if i < 0 || i >= len(e.particles) {
		return false
	}
	e.particles[i].State = s
	e.particles[i].Trail.Clear()
	return true
}

func (e *Engine) System() dynamo.SystemKind { return e.system }

// Parameters returns a copy of the active coefficients.
func (e *Engine) Parameters() physics.ParameterSet { return e.params }

func (e *Engine) TimeScale() float64   { return e.timeScale }
func (e *Engine) ParticleCount() int   { return len(e.particles) }
func (e *Engine) MaxParticles() int    { return e.opts.MaxParticles }
func (e *Engine) TrailLength() int     { return e.opts.TrailLength }
func (e *Engine) TrailsEnabled() bool  { return e.trails }
func (e *Engine) Time() float64        { return e.time }
func (e *Engine) Frame() uint64        { return e.frame }
func (e *Engine) Logger() *slog.Logger { return e.log }

// Particles returns the ensemble. The slice is owned by the engine and is
// only valid until the next call that changes the particle count.
func (e *Engine) Particles() []Particle { return e.particles }

func (e *Engine) Status() Status {
	return Status{
		System:     e.system,
		Label:      physics.Describe(e.system).Label,
		Parameters: e.params,
		TimeScale:  e.timeScale,
		Particles:  len(e.particles),
		Trails:     e.trails,
		Time:       e.time,
		Frame:      e.frame,
	}
}
