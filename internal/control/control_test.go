package control

import (
	"testing"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/sim"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *sim.Engine {
	t.Helper()
	e, err := sim.NewEngine(sim.DefaultOptions())
	require.NoError(t, err)
	return e
}

func TestLookup(t *testing.T) {
	tests := []struct {
		key  string
		want Command
	}{
		{"1", Command{Action: SelectSystem, System: dynamo.Lorenz}},
		{"2", Command{Action: SelectSystem, System: dynamo.Rossler}},
		{"3", Command{Action: SelectSystem, System: dynamo.Aizawa}},
		{"4", Command{Action: SelectSystem, System: dynamo.ChenLee}},
		{"q", Command{Action: AdjustParameter, Slot: 0, Sign: 1}},
		{"A", Command{Action: AdjustParameter, Slot: 0, Sign: -1}},
		{"e", Command{Action: AdjustParameter, Slot: 2, Sign: 1}},
		{"k", Command{Action: AdjustParameter, Slot: 5, Sign: -1}},
		{"z", Command{Action: AdjustTimeScale, Sign: 1}},
		{"x", Command{Action: AdjustTimeScale, Sign: -1}},
		{"c", Command{Action: AdjustParticles, Sign: 1}},
		{"v", Command{Action: AdjustParticles, Sign: -1}},
		{"t", Command{Action: ToggleTrails}},
		{"backspace", Command{Action: Reset}},
		{"h", Command{Action: ToggleHelp}},
		{" ", Command{Action: Pause}},
		{"esc", Command{Action: Quit}},
		{"ctrl+c", Command{Action: Quit}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := Lookup(tt.key)
			require.True(t, ok)
			require.Equal(t, tt.want, got)
		})
	}

	for _, key := range []string{"5", "b", "enter", ""} {
		_, ok := Lookup(key)
		require.False(t, ok, "key %q", key)
	}
}

func TestApply_ParameterUsesStep(t *testing.T) {
	e := newEngine(t)

	res, ok := HandleKey(e, "w")
	require.True(t, ok)
	require.True(t, res.Changed)
	rho, _ := e.Parameters().Get("rho")
	require.InDelta(t, 28.1, rho, 1e-12)
	require.Equal(t, "ρ = 28.100", res.Message)

	HandleKey(e, "d")
	beta, _ := e.Parameters().Get("beta")
	require.InDelta(t, 8.0/3.0-0.01, beta, 1e-12)
}

func TestApply_RosslerScenario(t *testing.T) {
	e := newEngine(t)
	HandleKey(e, "2")
	for i := 0; i < 10; i++ {
		HandleKey(e, "d")
	}
	c, _ := e.Parameters().Get("c")
	require.InDelta(t, 5.6, c, 1e-9)
}

func TestApply_UnusedSlotIsNoop(t *testing.T) {
	e := newEngine(t)
	before := e.Parameters()

	res, ok := HandleKey(e, "i")
	require.True(t, ok)
	require.False(t, res.Changed)
	require.Equal(t, before, e.Parameters())

	HandleKey(e, "3")
	res, _ = HandleKey(e, "i")
	require.True(t, res.Changed)
}

func TestApply_TimeScaleAndParticles(t *testing.T) {
	e := newEngine(t)

	HandleKey(e, "z")
	require.InDelta(t, 1.1, e.TimeScale(), 1e-12)

	for i := 0; i < 20; i++ {
		HandleKey(e, "x")
	}
	require.Equal(t, sim.DefaultMinTimeScale, e.TimeScale())
	res, _ := HandleKey(e, "x")
	require.False(t, res.Changed)

	HandleKey(e, "c")
	require.Equal(t, sim.DefaultParticles+ParticleStep, e.ParticleCount())
	for i := 0; i < 20; i++ {
		HandleKey(e, "v")
	}
	require.Equal(t, 1, e.ParticleCount())
}

func TestApply_TrailsResetQuit(t *testing.T) {
	e := newEngine(t)

	res, _ := HandleKey(e, "t")
	require.Equal(t, "trails off", res.Message)
	require.False(t, e.TrailsEnabled())

	e.Advance(0.01)
	res, _ = HandleKey(e, "backspace")
	require.True(t, res.Changed)
	require.Zero(t, e.Frame())

	res, _ = HandleKey(e, "esc")
	require.True(t, res.Quit)
	require.False(t, res.Changed)
}

func TestApply_DriverActionsLeaveEngineAlone(t *testing.T) {
	e := newEngine(t)
	before := e.Status()
	for _, key := range []string{"h", " "} {
		res, ok := HandleKey(e, key)
		require.True(t, ok)
		require.False(t, res.Changed)
	}
	require.Equal(t, before, e.Status())
}

func TestBindingsAndSlotKeys(t *testing.T) {
	require.NotEmpty(t, Bindings())
	for slot := 0; slot < 6; slot++ {
		up, down, ok := SlotKeys(slot)
		require.True(t, ok)
		cmd, _ := Lookup(up)
		require.Equal(t, slot, cmd.Slot)
		cmd, _ = Lookup(down)
		require.Equal(t, -1, cmd.Sign)
	}
	_, _, ok := SlotKeys(6)
	require.False(t, ok)
	require.Equal(t, "adjust-parameter", AdjustParameter.String())
}

func TestStatusLines(t *testing.T) {
	e := newEngine(t)
	HandleKey(e, "2")
	HandleKey(e, "t")

	lines := StatusLines(e.Status())
	require.Equal(t, "System: Rössler", lines[0])
	require.Equal(t, "  c = 5.700  [e/d]", lines[3])
	require.Contains(t, lines, "Trails: off")
	require.Contains(t, lines, "Particles: 50")
	require.Len(t, HelpLines(), len(Bindings()))
}
