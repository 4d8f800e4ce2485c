package integrators

import (
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
)

type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(f physics.Field, x dynamo.Vec3, dt float64) dynamo.Vec3 {
	k1 := f(x)
	k2 := f(x.Add(k1.Scale(dt * 0.5)))
	k3 := f(x.Add(k2.Scale(dt * 0.5)))
	k4 := f(x.Add(k3.Scale(dt)))

	sum := k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4)
	return x.Add(sum.Scale(dt / 6.0))
}
