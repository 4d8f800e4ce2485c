package physics

import "github.com/san-kum/attractors/internal/dynamo"

// Aizawa calculates the Aizawa attractor derivatives.
func Aizawa(s dynamo.Vec3, a, b, c, d, e, f float64) dynamo.Vec3 {
	zb := s.Z - b
	r2 := s.X*s.X + s.Y*s.Y
	return dynamo.Vec3{
		X: zb*s.X - d*s.Y,
		Y: d*s.X + zb*s.Y,
		Z: c + a*s.Z - s.Z*s.Z*s.Z/3 - r2*(1+e*s.Z) + f*s.Z*s.X*s.X*s.X,
	}
}
