package physics

import "github.com/san-kum/attractors/internal/dynamo"

// MaxSlots is the largest coefficient count of any supported system.
const MaxSlots = 6

// Coefficient describes one adjustable parameter of a system.
type Coefficient struct {
	Name    string  // identifier used in config files and lookups
	Symbol  string  // display label
	Default float64 // compiled-in value
	Step    float64 // increment applied per key press
}

// Region is an axis-aligned box; Min is inclusive and Max exclusive.
type Region struct {
	Min, Max dynamo.Vec3
}

// Contains reports whether s lies inside r.
func (r Region) Contains(s dynamo.Vec3) bool {
	return s.X >= r.Min.X && s.X < r.Max.X &&
		s.Y >= r.Min.Y && s.Y < r.Max.Y &&
		s.Z >= r.Min.Z && s.Z < r.Max.Z
}

// Sample maps three uniform variates in [0,1) onto a point in r.
func (r Region) Sample(u, v, w float64) dynamo.Vec3 {
	return dynamo.Vec3{
		X: r.Min.X + u*(r.Max.X-r.Min.X),
		Y: r.Min.Y + v*(r.Max.Y-r.Min.Y),
		Z: r.Min.Z + w*(r.Max.Z-r.Min.Z),
	}
}

// Descriptor holds the static display and seeding metadata for a system.
type Descriptor struct {
	Kind         dynamo.SystemKind
	Label        string
	Equations    [3]string
	Coefficients []Coefficient
	Region       Region  // where fresh particles are seeded
	Scale        float64 // world to screen pixels
}

func cube(h float64) Region {
	return Region{Min: dynamo.Vec3{X: -h, Y: -h, Z: -h}, Max: dynamo.Vec3{X: h, Y: h, Z: h}}
}

var descriptors = [...]Descriptor{
	dynamo.Lorenz: {
		Kind:  dynamo.Lorenz,
		Label: "Lorenz",
		Equations: [3]string{
			"dx/dt = σ(y - x)",
			"dy/dt = x(ρ - z) - y",
			"dz/dt = xy - βz",
		},
		Coefficients: []Coefficient{
			{"sigma", "σ", 10.0, 0.1},
			{"rho", "ρ", 28.0, 0.1},
			{"beta", "β", 8.0 / 3.0, 0.01},
		},
		Region: Region{Min: dynamo.Vec3{X: -1, Y: -1, Z: 15}, Max: dynamo.Vec3{X: 1, Y: 1, Z: 25}},
		Scale:  10,
	},
	dynamo.Rossler: {
		Kind:  dynamo.Rossler,
		Label: "Rössler",
		Equations: [3]string{
			"dx/dt = -y - z",
			"dy/dt = x + ay",
			"dz/dt = b + z(x - c)",
		},
		Coefficients: []Coefficient{
			{"a", "a", 0.2, 0.01},
			{"b", "b", 0.2, 0.01},
			{"c", "c", 5.7, 0.01},
		},
		Region: cube(1),
		Scale:  30,
	},
	dynamo.Aizawa: {
		Kind:  dynamo.Aizawa,
		Label: "Aizawa",
		Equations: [3]string{
			"dx/dt = (z - b)x - dy",
			"dy/dt = dx + (z - b)y",
			"dz/dt = c + az - z³/3 - (x² + y²)(1 + ez) + fzx³",
		},
		Coefficients: []Coefficient{
			{"a", "a", 0.95, 0.01},
			{"b", "b", 0.7, 0.01},
			{"c", "c", 0.6, 0.01},
			{"d", "d", 3.5, 0.01},
			{"e", "e", 0.25, 0.01},
			{"f", "f", 0.1, 0.01},
		},
		Region: cube(0.1),
		Scale:  100,
	},
	dynamo.ChenLee: {
		Kind:  dynamo.ChenLee,
		Label: "Chen-Lee",
		Equations: [3]string{
			"dx/dt = αx - yz",
			"dy/dt = βy + xz",
			"dz/dt = γz + xy/3",
		},
		Coefficients: []Coefficient{
			{"alpha", "α", 5.0, 0.1},
			{"beta", "β", -10.0, 0.1},
			{"gamma", "γ", -0.38, 0.01},
		},
		Region: cube(1),
		Scale:  30,
	},
}

// Describe returns the metadata for kind. The Coefficients slice is a copy.
// An undefined kind yields the zero Descriptor.
func Describe(kind dynamo.SystemKind) Descriptor {
	if !kind.Valid() {
		return Descriptor{Kind: kind}
	}
	d := descriptors[kind]
	d.Coefficients = append([]Coefficient(nil), d.Coefficients...)
	return d
}
