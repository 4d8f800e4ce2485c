package physics

import "github.com/san-kum/attractors/internal/dynamo"

// Derivative evaluates the vector field of kind at s using the coefficients in p.
// An undefined kind yields the zero vector.
func Derivative(kind dynamo.SystemKind, s dynamo.Vec3, p ParameterSet) dynamo.Vec3 {
	v := &p.values
	switch kind {
	case dynamo.Lorenz:
		return Lorenz(s, v[0], v[1], v[2])
	case dynamo.Rossler:
		return Rossler(s, v[0], v[1], v[2])
	case dynamo.Aizawa:
		return Aizawa(s, v[0], v[1], v[2], v[3], v[4], v[5])
	case dynamo.ChenLee:
		return ChenLee(s, v[0], v[1], v[2])
	}
	return dynamo.Vec3{}
}

// Field binds a system and its coefficients into a single callable.
type Field func(s dynamo.Vec3) dynamo.Vec3

// FieldOf returns the vector field for p's system with p's current values.
// Later changes to p do not affect the returned Field.
func FieldOf(p ParameterSet) Field {
	kind := p.kind
	return func(s dynamo.Vec3) dynamo.Vec3 {
		return Derivative(kind, s, p)
	}
}

// EulerStep advances s by one explicit Euler step of size dt.
func EulerStep(s, d dynamo.Vec3, dt float64) dynamo.Vec3 {
	return s.Add(d.Scale(dt))
}
