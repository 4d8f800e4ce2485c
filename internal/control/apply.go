package control

import (
	"fmt"

	"github.com/san-kum/attractors/internal/physics"
	"github.com/san-kum/attractors/internal/sim"
)

const (
	TimeScaleStep = 0.1
	ParticleStep  = 5
)

// Result reports what a Command did.
type Result struct {
	Command Command
	Changed bool   // engine state was modified
	Message string // short status line for the driver
	Quit    bool
}

// Apply executes cmd against e. Driver-only actions leave e untouched.
func Apply(e *sim.Engine, cmd Command) Result {
	res := Result{Command: cmd}
	switch cmd.Action {
	case SelectSystem:
		res.Changed = e.SelectSystem(cmd.System)
		res.Message = physics.Describe(e.System()).Label
	case AdjustParameter:
		coefs := physics.Describe(e.System()).Coefficients
		if cmd.Slot < 0 || cmd.Slot >= len(coefs) {
			break
		}
		c := coefs[cmd.Slot]
		res.Changed = e.AdjustParameter(cmd.Slot, float64(cmd.Sign)*c.Step)
		v, _ := e.Parameters().Slot(cmd.Slot)
		res.Message = fmt.Sprintf("%s = %.3f", c.Symbol, v)
	case AdjustTimeScale:
		before := e.TimeScale()
		after := e.AdjustTimeScale(float64(cmd.Sign) * TimeScaleStep)
		res.Changed = after != before
		res.Message = fmt.Sprintf("time scale %.1fx", after)
	case AdjustParticles:
		before := e.ParticleCount()
		after := e.AdjustParticleCount(cmd.Sign * ParticleStep)
		res.Changed = after != before
		res.Message = fmt.Sprintf("%d particles", after)
	case ToggleTrails:
		res.Changed = true
		if e.ToggleTrails() {
			res.Message = "trails on"
		} else {
			res.Message = "trails off"
		}
	case Reset:
		e.Reset()
		res.Changed = true
		res.Message = "reset"
	case Quit:
		res.Quit = true
	}
	return res
}

// HandleKey looks up key and applies it. ok is false for unbound keys.
func HandleKey(e *sim.Engine, key string) (res Result, ok bool) {
	cmd, ok := Lookup(key)
	if !ok {
		return Result{}, false
	}
	return Apply(e, cmd), true
}
