package physics

import "github.com/san-kum/attractors/internal/dynamo"

// Rossler calculates the Rössler attractor derivatives.
func Rossler(s dynamo.Vec3, a, b, c float64) dynamo.Vec3 {
	return dynamo.Vec3{
		X: -s.Y - s.Z,
		Y: s.X + a*s.Y,
		Z: b + s.Z*(s.X-c),
	}
}
