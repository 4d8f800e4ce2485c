// Package physics provides the vector fields of the supported chaotic attractors.
//
// Each system is a pure function from a state and its coefficients to the
// instantaneous rate of change:
//
//   - [Lorenz]: butterfly attractor
//   - [Rossler]: single-scroll spiral with a folding funnel
//   - [Aizawa]: sphere-like torus pierced along the z axis
//   - [ChenLee]: double-scroll with cross-coupled rotation
//
// [Derivative] dispatches on a [dynamo.SystemKind] using a [ParameterSet]
// that stores coefficients in fixed slots. [Describe] exposes the display
// metadata (labels, key step sizes, seeding region, screen scale) that
// drivers need without hard-coding per-system tables of their own.
//
// # Divergence
//
// Nothing here guards against overflow. Pushing a coefficient far outside
// its chaotic range can send a trajectory to Inf or NaN; that outcome is
// visible to the caller through [dynamo.Vec3.IsValid] and is not an error.
//
//	p := physics.Defaults(dynamo.Lorenz)
//	d := physics.Derivative(dynamo.Lorenz, dynamo.Vec3{X: 1, Y: 1, Z: 1}, p)
package physics
