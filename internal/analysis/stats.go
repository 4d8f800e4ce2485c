package analysis

import (
	"math"

	"github.com/san-kum/attractors/internal/dynamo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type AxisStats struct {
	Mean float64
	Std  float64
	Min  float64
	Max  float64
}

// Summary describes the finite part of a set of states.
type Summary struct {
	Count    int
	Diverged int
	X, Y, Z  AxisStats
}

func axisStats(v []float64) AxisStats {
	if len(v) == 0 {
		return AxisStats{}
	}
	mean, std := stat.MeanStdDev(v, nil)
	if len(v) == 1 {
		std = 0
	}
	return AxisStats{Mean: mean, Std: std, Min: floats.Min(v), Max: floats.Max(v)}
}

// Summarize computes per-axis statistics. Non-finite states are counted
// in Diverged and otherwise ignored.
func Summarize(states []dynamo.Vec3) Summary {
	var xs, ys, zs []float64
	s := Summary{}
	for _, v := range states {
		if !v.IsValid() {
			s.Diverged++
			continue
		}
		xs = append(xs, v.X)
		ys = append(ys, v.Y)
		zs = append(zs, v.Z)
	}
	s.Count = len(xs)
	s.X, s.Y, s.Z = axisStats(xs), axisStats(ys), axisStats(zs)
	return s
}

// Extent returns the largest absolute coordinate of the summary on any axis.
func (s Summary) Extent() float64 {
	e := 0.0
	for _, a := range []AxisStats{s.X, s.Y, s.Z} {
		e = math.Max(e, math.Max(math.Abs(a.Min), math.Abs(a.Max)))
	}
	return e
}
