package integrators

import (
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
)

// Euler is the explicit first-order step the live engine uses.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f physics.Field, x dynamo.Vec3, dt float64) dynamo.Vec3 {
	return physics.EulerStep(x, f(x), dt)
}
