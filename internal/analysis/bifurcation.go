package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/integrators"
	"github.com/san-kum/attractors/internal/physics"
)

// BifurcationPoint holds the distinct local maxima seen for one coefficient value.
type BifurcationPoint struct {
	Param  float64
	Values []float64
}

// BifurcationSweep configures a BifurcationDiagram.
type BifurcationSweep struct {
	Param      string  // coefficient to vary
	Min, Max   float64 // sweep range
	Steps      int
	Axis       int // coordinate whose peaks are recorded
	Dt         float64
	Transient  float64 // time discarded before recording
	Record     float64 // time spent recording
	Resolution float64 // peaks closer than this are merged

	// Integrator defaults to explicit Euler when nil.
	Integrator integrators.Integrator
}

// BifurcationDiagram sweeps one coefficient and records the distinct local
// maxima of one coordinate after a transient. base supplies every other
// coefficient and is not modified.
func BifurcationDiagram(kind dynamo.SystemKind, base physics.ParameterSet, x0 dynamo.Vec3, sw BifurcationSweep) ([]BifurcationPoint, error) {
	if _, err := base.Get(sw.Param); err != nil {
		return nil, err
	}
	if !(sw.Dt > 0) {
		return nil, fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrInvalidConfig, sw.Dt)
	}
	steps := sw.Steps
	if steps < 2 {
		steps = 2
	}
	res := sw.Resolution
	if !(res > 0) {
		res = 1e-3
	}
	axis := max(0, min(sw.Axis, 2))
	transient := int(sw.Transient / sw.Dt)
	record := int(sw.Record / sw.Dt)
	paramStep := (sw.Max - sw.Min) / float64(steps-1)
	integ := sw.Integrator
	if integ == nil {
		integ = integrators.NewEuler()
	}

	results := make([]BifurcationPoint, 0, steps)
	for i := 0; i < steps; i++ {
		param := sw.Min + float64(i)*paramStep
		p := base
		p.Set(sw.Param, param)

		f := func(s dynamo.Vec3) dynamo.Vec3 { return physics.Derivative(kind, s, p) }
		x := x0
		for j := 0; j < transient; j++ {
			x = integ.Step(f, x, sw.Dt)
		}
		path := IntegrateWith(integ, f, x, sw.Dt, record)

		values := make([]float64, 0, 32)
		seen := make(map[int64]bool)
		for _, v := range peaks(Axis(path, axis)) {
			key := int64(math.Round(v / res))
			if !seen[key] {
				seen[key] = true
				values = append(values, v)
			}
		}
		results = append(results, BifurcationPoint{Param: param, Values: values})
	}
	return results, nil
}

func peaks(v []float64) []float64 {
	var out []float64
	for i := 1; i+1 < len(v); i++ {
		if v[i] > v[i-1] && v[i] >= v[i+1] && !math.IsNaN(v[i]) && !math.IsInf(v[i], 0) {
			out = append(out, v[i])
		}
	}
	return out
}

// BifurcationToASCII converts bifurcation data to ASCII art
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	foundFirst := false
	for _, p := range data {
		for _, v := range p.Values {
			if !foundFirst {
				minVal, maxVal = v, v
				foundFirst = true
				continue
			}
			minVal = math.Min(minVal, v)
			maxVal = math.Max(maxVal, v)
		}
	}
	if !foundFirst {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := blankCanvas(width, height)
	for i, p := range data {
		col := min(i*width/len(data), width-1)
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}
	return canvasString(canvas)
}

func blankCanvas(width, height int) [][]rune {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}
	return canvas
}

func canvasString(canvas [][]rune) string {
	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
