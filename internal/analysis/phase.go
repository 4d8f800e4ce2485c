package analysis

import (
	"math"

	"github.com/san-kum/attractors/internal/dynamo"
)

type Point2 struct{ X, Y float64 }

// PhasePortrait2D is a trajectory projected onto two coordinate axes.
type PhasePortrait2D struct {
	XAxis, YAxis int
	Points       []Point2
}

// NewPhasePortrait projects states onto axes xAxis and yAxis (0 = x, 1 = y, 2 = z).
// Non-finite states are dropped.
func NewPhasePortrait(states []dynamo.Vec3, xAxis, yAxis int) *PhasePortrait2D {
	if xAxis < 0 || xAxis > 2 || yAxis < 0 || yAxis > 2 {
		return nil
	}
	portrait := &PhasePortrait2D{XAxis: xAxis, YAxis: yAxis, Points: make([]Point2, 0, len(states))}
	for _, s := range states {
		if !s.IsValid() {
			continue
		}
		c := s.Components()
		portrait.Points = append(portrait.Points, Point2{c[xAxis], c[yAxis]})
	}
	return portrait
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width <= 1 || height <= 1 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y
	for _, p := range portrait.Points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	// 10% padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := blankCanvas(width, height)
	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}
	return canvasString(canvas)
}

// NewPoincareSection records the (xAxis, yAxis) coordinates where the
// trajectory crosses plane crossAxis = threshold going upward, linearly
// interpolated between the bracketing states.
func NewPoincareSection(states []dynamo.Vec3, crossAxis int, threshold float64, xAxis, yAxis int) *PhasePortrait2D {
	if crossAxis < 0 || crossAxis > 2 || xAxis < 0 || xAxis > 2 || yAxis < 0 || yAxis > 2 {
		return nil
	}
	section := &PhasePortrait2D{XAxis: xAxis, YAxis: yAxis}
	for i := 1; i < len(states); i++ {
		prev, curr := states[i-1].Components(), states[i].Components()
		if !(prev[crossAxis] < threshold && curr[crossAxis] >= threshold) {
			continue
		}
		frac := (threshold - prev[crossAxis]) / (curr[crossAxis] - prev[crossAxis])
		if math.IsNaN(frac) || math.IsInf(frac, 0) {
			frac = 0.5
		}
		section.Points = append(section.Points, Point2{
			X: prev[xAxis] + frac*(curr[xAxis]-prev[xAxis]),
			Y: prev[yAxis] + frac*(curr[yAxis]-prev[yAxis]),
		})
	}
	return section
}
