package gui

import (
	"maps"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/attractors/internal/control"
	"github.com/san-kum/attractors/internal/sim"
)

// Options configures the window driver.
type Options struct {
	Width, Height int32
	FPS           int32
	Title         string
	Dt            float64 // fixed frame step; ignored when Realtime is set
	Realtime      bool
}

func (o *Options) normalize() {
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 600
	}
	if o.FPS <= 0 {
		o.FPS = 60
	}
	if o.Title == "" {
		o.Title = "attractors"
	}
	if !(o.Dt > 0) {
		o.Dt = 0.01
	}
}

// App drives an engine inside a raylib window.
type App struct {
	Engine   *sim.Engine
	Opts     Options
	Paused   bool
	ShowHelp bool
	Message  string
	quit     bool
}

func NewApp(e *sim.Engine, opts Options) *App {
	opts.normalize()
	return &App{Engine: e, Opts: opts}
}

// initWindow opens the window and disables the default exit key so Esc
// goes through the keymap.
func (a *App) initWindow() {
	rl.InitWindow(a.Opts.Width, a.Opts.Height, a.Opts.Title)
	rl.SetTargetFPS(a.Opts.FPS)
	rl.SetExitKey(0)
}

// Run opens the window and blocks until it is closed or the user quits.
func Run(e *sim.Engine, opts Options) {
	a := NewApp(e, opts)
	a.initWindow()
	defer rl.CloseWindow()
	a.RunLoop()
}

func (a *App) RunLoop() {
	for !a.quit && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	for _, key := range pressedKeys(rl.IsKeyPressed) {
		a.HandleKey(key)
	}
	if a.Paused {
		return
	}
	dt := a.Opts.Dt
	if a.Opts.Realtime {
		dt = float64(rl.GetFrameTime())
	}
	a.Engine.Advance(dt)
}

// HandleKey applies the command bound to key. Driver-level actions
// (quit, pause, help) are resolved here.
func (a *App) HandleKey(key string) {
	res, ok := control.HandleKey(a.Engine, key)
	if !ok {
		return
	}
	switch res.Command.Action {
	case control.Quit:
		a.quit = true
	case control.Pause:
		a.Paused = !a.Paused
		if a.Paused {
			a.Message = "paused"
		} else {
			a.Message = "running"
		}
		return
	case control.ToggleHelp:
		a.ShowHelp = !a.ShowHelp
	}
	if res.Message != "" {
		a.Message = res.Message
	}
}

// Quitting reports whether a quit command has been handled.
func (a *App) Quitting() bool { return a.quit }

var keyNames = buildKeyNames()

func buildKeyNames() map[int32]string {
	m := map[int32]string{
		rl.KeyOne:       "1",
		rl.KeyTwo:       "2",
		rl.KeyThree:     "3",
		rl.KeyFour:      "4",
		rl.KeyBackspace: "backspace",
		rl.KeySpace:     "space",
		rl.KeyEscape:    "esc",
	}
	for k := int32(rl.KeyA); k <= rl.KeyZ; k++ {
		m[k] = string(rune('a' + k - rl.KeyA))
	}
	return m
}

// keyName maps a raylib key code to the name used by the keymap.
func keyName(code int32) (string, bool) {
	name, ok := keyNames[code]
	return name, ok
}

// keyCodes lists the mapped key codes in ascending order so keys pressed in
// the same frame are handled in a fixed order.
var keyCodes = slices.Sorted(maps.Keys(keyNames))

func pressedKeys(isPressed func(int32) bool) []string {
	var keys []string
	for _, code := range keyCodes {
		if isPressed(code) {
			keys = append(keys, keyNames[code])
		}
	}
	return keys
}
