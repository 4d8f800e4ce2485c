package analysis

import (
	"math"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
)

// LyapunovExponent estimates the largest Lyapunov exponent using the
// trajectory separation method. A positive value indicates chaos.
//
// Algorithm:
// 1. Run two trajectories started perturbation apart along x
// 2. After every step, log the growth of their separation
// 3. Pull the companion back to distance perturbation along the same direction
// 4. λ ≈ Σ ln(|δx|/δ0) / t
func LyapunovExponent(
	kind dynamo.SystemKind,
	params physics.ParameterSet,
	x0 dynamo.Vec3,
	dt, duration float64,
	perturbation float64,
) float64 {
	if !(dt > 0) || !(duration > 0) || !(perturbation > 0) {
		return 0
	}

	x := x0
	xp := x0
	xp.X += perturbation
	d0 := perturbation

	sumLog := 0.0
	count := 0
	steps := int(duration / dt)

	for i := 0; i < steps; i++ {
		x = physics.EulerStep(x, physics.Derivative(kind, x, params), dt)
		xp = physics.EulerStep(xp, physics.Derivative(kind, xp, params), dt)

		delta := xp.Sub(x)
		sep := delta.Norm()
		if !(sep > 0) || math.IsInf(sep, 0) {
			break
		}

		sumLog += math.Log(sep / d0)
		count++

		xp = x.Add(delta.Scale(d0 / sep))
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * dt)
}
