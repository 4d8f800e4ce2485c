package analysis

import (
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/integrators"
	"github.com/san-kum/attractors/internal/physics"
)

// Integrate runs explicit Euler from x0 for steps steps and returns every
// state after x0.
func Integrate(kind dynamo.SystemKind, params physics.ParameterSet, x0 dynamo.Vec3, dt float64, steps int) []dynamo.Vec3 {
	f := func(s dynamo.Vec3) dynamo.Vec3 { return physics.Derivative(kind, s, params) }
	return IntegrateWith(integrators.NewEuler(), f, x0, dt, steps)
}

// IntegrateWith is Integrate with an explicit integrator and field.
func IntegrateWith(integ integrators.Integrator, f physics.Field, x0 dynamo.Vec3, dt float64, steps int) []dynamo.Vec3 {
	if steps <= 0 {
		return nil
	}
	out := make([]dynamo.Vec3, 0, steps)
	x := x0
	for i := 0; i < steps; i++ {
		x = integ.Step(f, x, dt)
		out = append(out, x)
	}
	return out
}

// Axis returns coordinate axis (0 = x, 1 = y, 2 = z) of every state.
func Axis(states []dynamo.Vec3, axis int) []float64 {
	out := make([]float64, len(states))
	for i, s := range states {
		out[i] = s.Components()[axis]
	}
	return out
}

// FinitePrefix returns the leading states up to the first non-finite one.
// A diverged particle never returns to finite values, so the prefix is its
// whole usable trajectory.
func FinitePrefix(states []dynamo.Vec3) []dynamo.Vec3 {
	for i, s := range states {
		if !s.IsValid() {
			return states[:i]
		}
	}
	return states
}
