package physics

import "github.com/san-kum/attractors/internal/dynamo"

// Lorenz calculates the Lorenz attractor derivatives.
func Lorenz(s dynamo.Vec3, sigma, rho, beta float64) dynamo.Vec3 {
	return dynamo.Vec3{
		X: sigma * (s.Y - s.X),
		Y: s.X*(rho-s.Z) - s.Y,
		Z: s.X*s.Y - beta*s.Z,
	}
}
