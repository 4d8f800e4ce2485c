package viz

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/sim"
)

func TestCanvas_SetAndString(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if !c.IsSet(0, 0) || !c.IsSet(3, 3) || c.IsSet(1, 1) {
		t.Error("unexpected pixel state")
	}
	if got := c.String(); got != string([]rune{0x2801, 0x2880}) {
		t.Errorf("unexpected braille output %q", got)
	}

	c.Clear()
	if c.IsSet(0, 0) {
		t.Error("expected cleared canvas")
	}
}

func TestCanvas_DrawLine(t *testing.T) {
	c := NewCanvas(5, 2)
	c.DrawLine(0, 0, 9, 7)
	if !c.IsSet(0, 0) || !c.IsSet(9, 7) {
		t.Error("expected both endpoints set")
	}
	w, h := c.Pixels()
	if w != 10 || h != 8 {
		t.Errorf("expected 10x8 sub-pixels, got %dx%d", w, h)
	}
}

func TestCamera_ProjectCenter(t *testing.T) {
	cam := NewCamera()
	cam.Frame(dynamo.Vec3{Z: 25}, 30)

	x, y, _, ok := cam.Project(dynamo.Vec3{Z: 25}, 100, 80)
	if !ok || x != 50 || y != 40 {
		t.Errorf("expected centre to land mid-screen, got (%d, %d) visible=%v", x, y, ok)
	}

	// world +z is drawn upward
	_, yUp, _, ok := cam.Project(dynamo.Vec3{Z: 35}, 100, 80)
	if !ok || yUp >= y {
		t.Errorf("expected higher z above centre, got y=%d (centre %d)", yUp, y)
	}

	if _, _, _, ok := cam.Project(dynamo.Vec3{X: math.NaN()}, 100, 80); ok {
		t.Error("expected NaN point to be hidden")
	}
}

func TestCamera_Zoom(t *testing.T) {
	cam := NewCamera()
	for i := 0; i < 50; i++ {
		cam.ZoomIn()
	}
	if cam.Zoom != 10 {
		t.Errorf("expected zoom capped at 10, got %v", cam.Zoom)
	}
	for i := 0; i < 100; i++ {
		cam.ZoomOut()
	}
	if cam.Zoom != 0.1 {
		t.Errorf("expected zoom floored at 0.1, got %v", cam.Zoom)
	}
}

func newModel(t *testing.T) Model {
	t.Helper()
	e, err := sim.NewEngine(sim.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	return NewModel(e, Options{Dt: 0.01})
}

func press(m Model, key string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModel_TickAdvancesEngine(t *testing.T) {
	m := newModel(t)
	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if cmd == nil {
		t.Error("expected next tick to be scheduled")
	}
	if m.engine.Frame() != 1 {
		t.Errorf("expected one frame, got %d", m.engine.Frame())
	}
	if m.history.Len() != 1 {
		t.Errorf("expected history of particle 0, got %d", m.history.Len())
	}
}

func TestModel_PauseStopsEngine(t *testing.T) {
	m := newModel(t)
	m, _ = press(m, " ")
	next, _ := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if m.engine.Frame() != 0 {
		t.Errorf("expected no frames while paused, got %d", m.engine.Frame())
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("expected paused indicator in view")
	}
}

func TestModel_ControlKeys(t *testing.T) {
	m := newModel(t)
	m, _ = press(m, "3")
	if m.engine.System() != dynamo.Aizawa {
		t.Errorf("expected Aizawa, got %v", m.engine.System())
	}
	if m.camera.Extent != views[dynamo.Aizawa].extent {
		t.Errorf("expected camera framed on Aizawa, got extent %v", m.camera.Extent)
	}

	m, _ = press(m, "c")
	if m.engine.ParticleCount() != sim.DefaultParticles+5 {
		t.Errorf("expected 55 particles, got %d", m.engine.ParticleCount())
	}

	m, _ = press(m, "tab")
	if m.theme != 1 {
		t.Errorf("expected second theme, got %d", m.theme)
	}

	if _, cmd := press(m, "esc"); cmd == nil {
		t.Error("expected quit command")
	}
}

func TestModel_ViewShowsStatus(t *testing.T) {
	m := newModel(t)
	for i := 0; i < 5; i++ {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}
	view := m.View()
	for _, want := range []string{"LORENZ", "Particles: 50", "particle 0: x(t)"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}

	m, _ = press(m, "h")
	if !strings.Contains(m.View(), "rotate view") {
		t.Error("expected help text after pressing h")
	}
}

func TestRender_DrawsParticles(t *testing.T) {
	opts := sim.DefaultOptions()
	opts.Particles = 1
	e, err := sim.NewEngine(opts)
	if err != nil {
		t.Fatal(err)
	}
	e.Place(0, dynamo.Vec3{Z: 25})

	c := NewCanvas(20, 10)
	cam := NewCamera()
	FrameSystem(cam, dynamo.Lorenz)
	Render(c, e.Particles(), true, cam)
	if !c.IsSet(20, 20) {
		t.Errorf("expected particle dot at canvas centre:\n%s", c.String())
	}
}
