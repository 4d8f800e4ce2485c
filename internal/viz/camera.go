package viz

import (
	"math"

	"github.com/san-kum/attractors/internal/dynamo"
)

// Camera rotates world points about a centre and projects them with a
// simple perspective divide.
type Camera struct {
	Center           dynamo.Vec3 // world point shown at the middle of the screen
	Extent           float64     // world half-size that fills the shorter screen side
	Distance         float64     // eye distance in normalized units
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Extent: 1, Distance: 4, RotX: -math.Pi / 2, Zoom: 1}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// Frame centres the camera on a system's typical region.
func (c *Camera) Frame(center dynamo.Vec3, extent float64) {
	c.Center = center
	if extent > 0 {
		c.Extent = extent
	}
}

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p dynamo.Vec3) dynamo.Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts a world point to screen coordinates on a sw x sh grid.
// Returns x, y, depth, and visibility.
func (c *Camera) Project(p dynamo.Vec3, sw, sh int) (int, int, float64, bool) {
	if !p.IsValid() {
		return 0, 0, 0, false
	}
	rot := c.RotatePoint(p.Sub(c.Center).Scale(c.Zoom / c.Extent))
	if rot.Z >= c.Distance-0.1 {
		return 0, 0, 0, false
	}
	persp := c.Distance / (c.Distance - rot.Z)
	half := float64(min(sw, sh)) / 2
	sx := int(rot.X*persp*half) + sw/2
	sy := int(-rot.Y*persp*half) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}
