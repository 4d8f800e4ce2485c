package dynamo

import (
	"fmt"
	"math"
	"strings"
)

// Vec3 is a point, or a rate of change, in three-dimensional phase space.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Norm() float64        { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Components returns the coordinates in x, y, z order.
func (v Vec3) Components() [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

// IsValid reports whether every coordinate is finite.
func (v Vec3) IsValid() bool {
	for _, c := range v.Components() {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.5g, %.5g, %.5g)", v.X, v.Y, v.Z)
}

// SystemKind selects one of the supported chaotic ODE systems.
type SystemKind int

const (
	Lorenz SystemKind = iota
	Rossler
	Aizawa
	ChenLee
)

var systemNames = [...]string{
	Lorenz:  "lorenz",
	Rossler: "rossler",
	Aizawa:  "aizawa",
	ChenLee: "chenlee",
}

// Systems returns every SystemKind in selection-key order.
func Systems() []SystemKind {
	return []SystemKind{Lorenz, Rossler, Aizawa, ChenLee}
}

// Valid reports whether k is one of the defined kinds.
func (k SystemKind) Valid() bool {
	return k >= Lorenz && k <= ChenLee
}

func (k SystemKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("system(%d)", int(k))
	}
	return systemNames[k]
}

// ParseSystemKind resolves a user supplied name, ignoring case and separators.
func ParseSystemKind(name string) (SystemKind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("-", "", "_", "", " ", "", "ö", "o").Replace(n)
	for i, s := range systemNames {
		if s == n {
			return SystemKind(i), nil
		}
	}
	return Lorenz, fmt.Errorf("%w: %q", ErrUnknownSystem, name)
}

// MarshalText implements encoding.TextMarshaler so kinds serialize by name.
func (k SystemKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSystem, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *SystemKind) UnmarshalText(text []byte) error {
	parsed, err := ParseSystemKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
