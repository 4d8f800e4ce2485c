// Package dynamo provides the core value types shared by the attractor simulation.
//
// The package defines the small vocabulary every other package speaks:
//
//   - [Vec3]: a point or rate of change in three-dimensional phase space
//   - [SystemKind]: the selector among the supported chaotic systems
//   - domain errors such as [ErrUnknownSystem] and [ErrInvalidParameter]
//
// # Example
//
//	kind, err := dynamo.ParseSystemKind("rossler")
//	if err != nil {
//	    return err
//	}
//	x := dynamo.Vec3{X: 1, Y: 1, Z: 1}
//
// Values in this package carry no references; copying a [Vec3] never aliases.
package dynamo
