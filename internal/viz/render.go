package viz

import (
	"math"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
	"github.com/san-kum/attractors/internal/sim"
)

// views gives each system a centre and half-size that frames its attractor.
var views = map[dynamo.SystemKind]struct {
	center dynamo.Vec3
	extent float64
}{
	dynamo.Lorenz:  {dynamo.Vec3{Z: 25}, 30},
	dynamo.Rossler: {dynamo.Vec3{Z: 4}, 14},
	dynamo.Aizawa:  {dynamo.Vec3{Z: 0.5}, 1.6},
	dynamo.ChenLee: {dynamo.Vec3{}, 12},
}

// FrameSystem points cam at kind's attractor.
func FrameSystem(cam *Camera, kind dynamo.SystemKind) {
	if v, ok := views[kind]; ok {
		cam.Frame(v.center, v.extent)
		return
	}
	cam.Frame(dynamo.Vec3{}, 300/physics.Describe(kind).Scale)
}

// Render draws every particle and, when enabled, its trail.
func Render(c *Canvas, particles []sim.Particle, trails bool, cam *Camera) {
	if c == nil || cam == nil {
		return
	}
	sw, sh := c.Pixels()
	for i := range particles {
		p := &particles[i]
		if trails {
			px, py, havePrev := 0, 0, false
			p.Trail.Each(func(_ int, s dynamo.Vec3) {
				x, y, _, ok := cam.Project(s, sw, sh)
				if ok && havePrev && absInt(x-px)+absInt(y-py) < sw/2 {
					c.DrawLine(px, py, x, y)
				}
				px, py, havePrev = x, y, ok
			})
		}
		if x, y, _, ok := cam.Project(p.State, sw, sh); ok {
			c.Dot(x, y)
		}
	}
}

// Spin turns the camera about the vertical axis by an angle proportional to dt.
func Spin(cam *Camera, dt float64) {
	cam.RotY = math.Mod(cam.RotY+0.25*dt, 2*math.Pi)
}
