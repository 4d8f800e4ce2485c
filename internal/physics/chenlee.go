package physics

import "github.com/san-kum/attractors/internal/dynamo"

// ChenLee calculates the Chen-Lee attractor derivatives.
func ChenLee(s dynamo.Vec3, alpha, beta, gamma float64) dynamo.Vec3 {
	return dynamo.Vec3{
		X: alpha*s.X - s.Y*s.Z,
		Y: beta*s.Y + s.X*s.Z,
		Z: gamma*s.Z + s.X*s.Y/3,
	}
}
