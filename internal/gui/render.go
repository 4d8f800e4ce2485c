package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/attractors/internal/control"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
	"github.com/san-kum/attractors/internal/sim"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColText    = rl.NewColor(200, 200, 200, 255)
	ColTextDim = rl.NewColor(110, 110, 110, 255)
	ColPanel   = rl.NewColor(20, 20, 20, 200)
)

const (
	particleRadius = 2
	fontSize       = 16
	lineHeight     = 20
)

// project maps a state onto the screen: centre plus (x, y) times the
// system's display scale. z is dropped.
func project(s dynamo.Vec3, scale float64, w, h int32) rl.Vector2 {
	return rl.NewVector2(
		float32(float64(w)/2+s.X*scale),
		float32(float64(h)/2+s.Y*scale),
	)
}

func particleColor(c sim.Color, alpha uint8) rl.Color {
	r, g, b := c.RGB8()
	return rl.NewColor(r, g, b, alpha)
}

// trailPoints projects a trail oldest first, skipping non-finite states.
func trailPoints(t *sim.Trail, scale float64, w, h int32) []rl.Vector2 {
	if t == nil {
		return nil
	}
	pts := make([]rl.Vector2, 0, t.Len())
	t.Each(func(_ int, s dynamo.Vec3) {
		if s.IsValid() {
			pts = append(pts, project(s, scale, w, h))
		}
	})
	return pts
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	scale := physics.Describe(a.Engine.System()).Scale
	a.drawParticles(scale, w, h)
	a.drawOverlay(h)

	rl.EndDrawing()
}

func (a *App) drawParticles(scale float64, w, h int32) {
	trails := a.Engine.TrailsEnabled()
	for _, p := range a.Engine.Particles() {
		if trails {
			if pts := trailPoints(p.Trail, scale, w, h); len(pts) > 1 {
				rl.DrawLineStrip(pts, particleColor(p.Color, 120))
			}
		}
		if p.State.IsValid() {
			rl.DrawCircleV(project(p.State, scale, w, h), particleRadius, particleColor(p.Color, 255))
		}
	}
}

func (a *App) drawOverlay(h int32) {
	lines := control.StatusLines(a.Engine.Status())
	if a.Message != "" {
		lines = append(lines, "", a.Message)
	}

	rl.DrawRectangle(5, 5, 260, int32(len(lines))*lineHeight+10, ColPanel)
	y := int32(10)
	for _, line := range lines {
		rl.DrawText(line, 10, y, fontSize, ColText)
		y += lineHeight
	}

	if a.ShowHelp {
		y += lineHeight
		for _, line := range control.HelpLines() {
			rl.DrawText(line, 10, y, fontSize, ColTextDim)
			y += lineHeight
		}
	} else {
		rl.DrawText("h: help", 10, h-lineHeight-5, fontSize, ColTextDim)
	}
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 10, h-2*lineHeight-5, fontSize, ColTextDim)
}
