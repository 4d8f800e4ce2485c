package sim

import (
	"math/rand/v2"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
)

// Color is a display colour with components in [0, 1].
type Color struct {
	R, G, B float64
}

// RGB8 returns the colour as 8-bit channels.
func (c Color) RGB8() (r, g, b uint8) {
	return to8(c.R), to8(c.G), to8(c.B)
}

func to8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v * 255)
}

// Particle is one point moving through the active vector field.
type Particle struct {
	State dynamo.Vec3
	Trail *Trail
	Color Color
}

// Step advances the particle by one explicit Euler step: State += dt·d.
func (p *Particle) Step(d dynamo.Vec3, dt float64) {
	p.State = physics.EulerStep(p.State, d, dt)
}

func pastel(rng *rand.Rand) Color {
	return Color{
		R: 0.5 + 0.5*rng.Float64(),
		G: 0.5 + 0.5*rng.Float64(),
		B: 0.5 + 0.5*rng.Float64(),
	}
}

func seed(rng *rand.Rand, r physics.Region) dynamo.Vec3 {
	return r.Sample(rng.Float64(), rng.Float64(), rng.Float64())
}
