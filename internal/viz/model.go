package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/attractors/internal/control"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/sim"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	panelWidth      = 46
	historyCapacity = 240
)

type TickMsg time.Time

// Options configures the terminal driver.
type Options struct {
	Dt       float64 // fixed frame step; ignored when Realtime is set
	Realtime bool    // step by measured wall time between frames
	FPS      int
	Theme    string
}

// Model is the Bubble Tea model driving an engine in the terminal.
type Model struct {
	engine        *sim.Engine
	opts          Options
	canvas        *Canvas
	camera        *Camera
	history       *sim.Trail
	theme         int
	styles        styles
	width, height int
	paused        bool
	showHelp      bool
	message       string
	lastTick      time.Time
}

func NewModel(e *sim.Engine, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if !(opts.Dt > 0) {
		opts.Dt = 0.01
	}
	theme := GetTheme(opts.Theme)
	themeIdx := 0
	for i, t := range Themes {
		if t.Name == theme.Name {
			themeIdx = i
		}
	}
	cam := NewCamera()
	FrameSystem(cam, e.System())
	m := Model{
		engine:  e,
		opts:    opts,
		camera:  cam,
		history: sim.NewTrail(historyCapacity),
		theme:   themeIdx,
		styles:  newStyles(theme),
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.canvas = NewCanvas(max(w-panelWidth-2, 10), max(h-1, 5))
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.step(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "left":
		m.camera.RotateY(-0.1)
		return m, nil
	case "right":
		m.camera.RotateY(0.1)
		return m, nil
	case "up":
		m.camera.RotateX(-0.1)
		return m, nil
	case "down":
		m.camera.RotateX(0.1)
		return m, nil
	case "+", "=":
		m.camera.ZoomIn()
		return m, nil
	case "-", "_":
		m.camera.ZoomOut()
		return m, nil
	case "tab":
		m.theme = (m.theme + 1) % len(Themes)
		m.styles = newStyles(Themes[m.theme])
		m.message = "theme " + Themes[m.theme].Name
		return m, nil
	}

	res, ok := control.HandleKey(m.engine, key)
	if !ok {
		return m, nil
	}
	switch res.Command.Action {
	case control.Quit:
		return m, tea.Quit
	case control.Pause:
		m.paused = !m.paused
	case control.ToggleHelp:
		m.showHelp = !m.showHelp
	case control.SelectSystem:
		FrameSystem(m.camera, m.engine.System())
		m.history.Clear()
	case control.Reset:
		m.history.Clear()
	}
	if res.Message != "" {
		m.message = res.Message
	}
	return m, nil
}

func (m *Model) step(now time.Time) {
	dt := m.opts.Dt
	if m.opts.Realtime {
		if m.lastTick.IsZero() {
			dt = 0
		} else {
			dt = now.Sub(m.lastTick).Seconds()
		}
	}
	m.lastTick = now
	if m.paused {
		return
	}
	m.engine.Advance(dt)
	Spin(m.camera, dt)
	if ps := m.engine.Particles(); len(ps) > 0 {
		m.history.Push(ps[0].State)
	}
}

func (m *Model) draw() string {
	m.canvas.Clear()
	Render(m.canvas, m.engine.Particles(), m.engine.TrailsEnabled(), m.camera)
	return m.canvas.String()
}

func (m Model) historyX() []float64 {
	xs := make([]float64, 0, m.history.Len())
	m.history.Each(func(_ int, s dynamo.Vec3) {
		if s.IsValid() {
			xs = append(xs, s.X)
		}
	})
	return xs
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := m.styles.canvas.Render(m.draw())

	var s strings.Builder
	st := m.engine.Status()
	s.WriteString(m.styles.header.Render(strings.ToUpper(st.Label)) + "\n")
	if m.paused {
		s.WriteString(m.styles.status.Render("PAUSED") + "\n")
	}
	for _, line := range control.StatusLines(st) {
		s.WriteString(m.styles.label.Render(line) + "\n")
	}
	if xs := m.historyX(); len(xs) > 1 {
		chart := asciigraph.Plot(xs, asciigraph.Height(6), asciigraph.Width(24), asciigraph.Caption("particle 0: x(t)"))
		s.WriteString(m.styles.graph.Render(chart) + "\n")
	}
	if m.message != "" {
		s.WriteString(m.styles.status.Render(m.message) + "\n")
	}
	if m.showHelp {
		s.WriteString(m.styles.help.Render(strings.Join(append(control.HelpLines(),
			fmt.Sprintf("%-12s %s", "arrows", "rotate view"),
			fmt.Sprintf("%-12s %s", "+/-", "zoom"),
			fmt.Sprintf("%-12s %s", "tab", "cycle theme"),
		), "\n")))
	} else {
		s.WriteString(m.styles.help.Render("h: help  esc: quit"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.styles.panel.Render(s.String()))
}

// Run starts the terminal driver and blocks until the user quits.
func Run(e *sim.Engine, opts Options) error {
	_, err := tea.NewProgram(NewModel(e, opts), tea.WithAltScreen()).Run()
	return err
}
