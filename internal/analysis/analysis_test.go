package analysis

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/integrators"
	"github.com/san-kum/attractors/internal/physics"
)

var lorenzStart = dynamo.Vec3{X: 1, Y: 1, Z: 1}

func TestIntegrate(t *testing.T) {
	path := Integrate(dynamo.Lorenz, physics.Defaults(dynamo.Lorenz), lorenzStart, 0.01, 3)
	if len(path) != 3 {
		t.Fatalf("expected 3 states, got %d", len(path))
	}
	if math.Abs(path[0].Y-1.26) > 1e-12 {
		t.Errorf("expected first y 1.26, got %v", path[0].Y)
	}
	if Integrate(dynamo.Lorenz, physics.Defaults(dynamo.Lorenz), lorenzStart, 0.01, 0) != nil {
		t.Error("expected nil for zero steps")
	}
}

func TestIntegrateWith(t *testing.T) {
	p := physics.Defaults(dynamo.Lorenz)
	euler := Integrate(dynamo.Lorenz, p, lorenzStart, 0.01, 5)
	same := IntegrateWith(integrators.NewEuler(), physics.FieldOf(p), lorenzStart, 0.01, 5)
	rk4 := IntegrateWith(integrators.NewRK4(), physics.FieldOf(p), lorenzStart, 0.01, 5)
	if len(rk4) != 5 {
		t.Fatalf("expected 5 states, got %d", len(rk4))
	}
	for i := range euler {
		if euler[i] != same[i] {
			t.Errorf("step %d: expected %v, got %v", i, euler[i], same[i])
		}
	}
	if rk4[4] == euler[4] {
		t.Error("expected rk4 to differ from euler")
	}
}

func TestFinitePrefix(t *testing.T) {
	states := []dynamo.Vec3{{X: 1}, {X: 2}, {X: math.Inf(1)}, {X: math.NaN()}, {X: 3}}
	got := FinitePrefix(states)
	if len(got) != 2 || got[1].X != 2 {
		t.Errorf("expected the two leading states, got %v", got)
	}
	if len(FinitePrefix(states[:2])) != 2 {
		t.Error("expected a finite trajectory to be kept whole")
	}
	if len(FinitePrefix([]dynamo.Vec3{{Y: math.NaN()}})) != 0 {
		t.Error("expected empty prefix when the first state is invalid")
	}
}

func TestLyapunovExponent(t *testing.T) {
	chaotic := LyapunovExponent(dynamo.Lorenz, physics.Defaults(dynamo.Lorenz), lorenzStart, 0.01, 100, 1e-8)
	if chaotic < 0.3 {
		t.Errorf("expected positive exponent for classic Lorenz, got %v", chaotic)
	}

	stable := physics.Defaults(dynamo.Lorenz)
	stable.Set("rho", 10)
	if got := LyapunovExponent(dynamo.Lorenz, stable, lorenzStart, 0.01, 100, 1e-8); got >= 0 {
		t.Errorf("expected negative exponent below the chaotic threshold, got %v", got)
	}
}

func TestLyapunovExponent_Degenerate(t *testing.T) {
	p := physics.Defaults(dynamo.Lorenz)
	tests := []struct {
		name              string
		dt, duration, eps float64
	}{
		{"zero dt", 0, 10, 1e-8},
		{"zero duration", 0.01, 0, 1e-8},
		{"zero perturbation", 0.01, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LyapunovExponent(dynamo.Lorenz, p, lorenzStart, tt.dt, tt.duration, tt.eps); got != 0 {
				t.Errorf("expected 0, got %v", got)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	states := []dynamo.Vec3{
		{X: 1, Y: 10, Z: -1},
		{X: 3, Y: 10, Z: 1},
		{X: math.NaN(), Y: 0, Z: 0},
	}
	s := Summarize(states)
	if s.Count != 2 || s.Diverged != 1 {
		t.Fatalf("expected 2 finite and 1 diverged, got %d and %d", s.Count, s.Diverged)
	}
	if s.X.Mean != 2 || s.X.Min != 1 || s.X.Max != 3 {
		t.Errorf("unexpected x stats %+v", s.X)
	}
	if math.Abs(s.X.Std-math.Sqrt2) > 1e-12 {
		t.Errorf("expected sample std sqrt(2), got %v", s.X.Std)
	}
	if s.Y.Std != 0 {
		t.Errorf("expected zero std for constant axis, got %v", s.Y.Std)
	}
	if s.Extent() != 10 {
		t.Errorf("expected extent 10, got %v", s.Extent())
	}

	one := Summarize([]dynamo.Vec3{{X: 5}})
	if one.X.Std != 0 || one.X.Mean != 5 {
		t.Errorf("unexpected single-sample stats %+v", one.X)
	}
	if empty := Summarize(nil); empty.Count != 0 || empty.X != (AxisStats{}) {
		t.Errorf("unexpected empty summary %+v", empty)
	}
}

func TestDominantFrequency(t *testing.T) {
	const dt = 0.01
	x := make([]float64, 1000)
	for i := range x {
		x[i] = 3 + math.Sin(2*math.Pi*2*float64(i)*dt)
	}
	if got := DominantFrequency(x, dt); math.Abs(got-2) > 1e-9 {
		t.Errorf("expected 2 Hz, got %v", got)
	}

	if got := DominantFrequency(make([]float64, 64), dt); got != 0 {
		t.Errorf("expected 0 for a flat signal, got %v", got)
	}
	if got := DominantFrequency([]float64{1}, dt); got != 0 {
		t.Errorf("expected 0 for a single sample, got %v", got)
	}
}

func TestPowerSpectrum_RemovesMean(t *testing.T) {
	p := PowerSpectrum([]float64{5, 5, 5, 5})
	if len(p) != 3 {
		t.Fatalf("expected 3 bins, got %d", len(p))
	}
	for k, v := range p {
		if math.Abs(v) > 1e-20 {
			t.Errorf("bin %d: expected 0, got %v", k, v)
		}
	}
}

func TestBifurcationDiagram(t *testing.T) {
	sw := BifurcationSweep{
		Param: "rho", Min: 10, Max: 28, Steps: 2,
		Axis: 2, Dt: 0.01, Transient: 50, Record: 50,
	}
	points, err := BifurcationDiagram(dynamo.Lorenz, physics.Defaults(dynamo.Lorenz), lorenzStart, sw)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 2 || points[0].Param != 10 || points[1].Param != 28 {
		t.Fatalf("unexpected sweep %+v", points)
	}
	if len(points[0].Values) > 2 {
		t.Errorf("expected a settled fixed point at rho=10, got %d peaks", len(points[0].Values))
	}
	if len(points[1].Values) < 10 {
		t.Errorf("expected many distinct peaks at rho=28, got %d", len(points[1].Values))
	}

	art := BifurcationToASCII(points, 20, 5)
	if strings.Count(art, "\n") != 5 || !strings.Contains(art, "•") {
		t.Errorf("unexpected ascii output:\n%s", art)
	}
}

func TestBifurcationDiagram_RK4(t *testing.T) {
	sw := BifurcationSweep{
		Param: "rho", Min: 10, Max: 10, Steps: 2,
		Axis: 2, Dt: 0.01, Transient: 50, Record: 50,
		Integrator: integrators.NewRK4(),
	}
	points, err := BifurcationDiagram(dynamo.Lorenz, physics.Defaults(dynamo.Lorenz), lorenzStart, sw)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range points {
		if len(p.Values) > 2 {
			t.Errorf("expected a settled fixed point at rho=10, got %d peaks", len(p.Values))
		}
	}
}

func TestBifurcationDiagram_Errors(t *testing.T) {
	base := physics.Defaults(dynamo.Lorenz)
	if _, err := BifurcationDiagram(dynamo.Lorenz, base, lorenzStart, BifurcationSweep{Param: "c", Dt: 0.01}); !errors.Is(err, dynamo.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
	if _, err := BifurcationDiagram(dynamo.Lorenz, base, lorenzStart, BifurcationSweep{Param: "rho"}); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if BifurcationToASCII(nil, 10, 10) != "" {
		t.Error("expected empty output for no data")
	}
}

func TestPhasePortrait(t *testing.T) {
	states := []dynamo.Vec3{{X: -1, Z: 1}, {X: 1, Z: 2}, {X: math.Inf(1)}}
	p := NewPhasePortrait(states, 0, 2)
	if len(p.Points) != 2 {
		t.Fatalf("expected 2 finite points, got %d", len(p.Points))
	}
	if p.Points[1] != (Point2{1, 2}) {
		t.Errorf("unexpected projection %+v", p.Points[1])
	}

	art := PhasePortraitToASCII(p, 10, 6)
	if strings.Count(art, "\n") != 6 || !strings.Contains(art, "•") || !strings.Contains(art, "│") {
		t.Errorf("unexpected ascii output:\n%s", art)
	}

	if NewPhasePortrait(states, 0, 3) != nil {
		t.Error("expected nil for invalid axis")
	}
}

func TestPoincareSection(t *testing.T) {
	states := []dynamo.Vec3{
		{X: 0, Y: 0, Z: -1},
		{X: 2, Y: 4, Z: 1},
		{X: 0, Y: 0, Z: 2},
		{X: 0, Y: 0, Z: -3},
	}
	s := NewPoincareSection(states, 2, 0, 0, 1)
	if len(s.Points) != 1 {
		t.Fatalf("expected 1 upward crossing, got %d", len(s.Points))
	}
	if s.Points[0] != (Point2{1, 2}) {
		t.Errorf("expected interpolated crossing (1, 2), got %+v", s.Points[0])
	}
}
