package integrators

import (
	"fmt"
	"maps"
	"slices"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
)

// Integrator advances a state through a vector field by one step of dt.
type Integrator interface {
	Step(f physics.Field, x dynamo.Vec3, dt float64) dynamo.Vec3
}

var registry = map[string]func() Integrator{
	"euler": func() Integrator { return NewEuler() },
	"rk4":   func() Integrator { return NewRK4() },
}

// Get returns a new integrator by name.
func Get(name string) (Integrator, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, Names())
	}
	return ctor(), nil
}

func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}
