package control

import (
	"strings"

	"github.com/san-kum/attractors/internal/dynamo"
)

// Action identifies what a Command does.
type Action int

const (
	None Action = iota
	SelectSystem
	AdjustParameter
	AdjustTimeScale
	AdjustParticles
	ToggleTrails
	Reset
	ToggleHelp
	Pause
	Quit
)

var actionNames = [...]string{
	None:            "none",
	SelectSystem:    "select-system",
	AdjustParameter: "adjust-parameter",
	AdjustTimeScale: "adjust-time-scale",
	AdjustParticles: "adjust-particles",
	ToggleTrails:    "toggle-trails",
	Reset:           "reset",
	ToggleHelp:      "toggle-help",
	Pause:           "pause",
	Quit:            "quit",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// Command is a single discrete input. Sign is +1 or -1 for adjustments.
type Command struct {
	Action Action
	System dynamo.SystemKind
	Slot   int
	Sign   int
}

// Binding documents a group of keys for help overlays.
type Binding struct {
	Keys string
	Help string
}

// Increase and decrease keys for parameter slots 0..5.
var slotKeys = [...][2]string{
	{"q", "a"},
	{"w", "s"},
	{"e", "d"},
	{"r", "f"},
	{"u", "j"},
	{"i", "k"},
}

var keymap = buildKeymap()

func buildKeymap() map[string]Command {
	m := map[string]Command{
		"z":         {Action: AdjustTimeScale, Sign: 1},
		"x":         {Action: AdjustTimeScale, Sign: -1},
		"c":         {Action: AdjustParticles, Sign: 1},
		"v":         {Action: AdjustParticles, Sign: -1},
		"t":         {Action: ToggleTrails},
		"backspace": {Action: Reset},
		"h":         {Action: ToggleHelp},
		"space":     {Action: Pause},
		" ":         {Action: Pause},
		"esc":       {Action: Quit},
		"ctrl+c":    {Action: Quit},
	}
	for i, k := range dynamo.Systems() {
		m[string(rune('1'+i))] = Command{Action: SelectSystem, System: k}
	}
	for slot, keys := range slotKeys {
		m[keys[0]] = Command{Action: AdjustParameter, Slot: slot, Sign: 1}
		m[keys[1]] = Command{Action: AdjustParameter, Slot: slot, Sign: -1}
	}
	return m
}

// Lookup returns the command bound to key. Single letters match either case.
func Lookup(key string) (Command, bool) {
	if len(key) == 1 {
		key = strings.ToLower(key)
	}
	cmd, ok := keymap[key]
	return cmd, ok
}

// Bindings lists the key groups in display order.
func Bindings() []Binding {
	return []Binding{
		{"1-4", "select Lorenz / Rössler / Aizawa / Chen-Lee"},
		{"q/a w/s e/d", "parameter 1-3 up / down"},
		{"r/f u/j i/k", "parameter 4-6 up / down"},
		{"z/x", "time scale up / down"},
		{"c/v", "particles up / down"},
		{"t", "toggle trails"},
		{"backspace", "reset particles"},
		{"space", "pause"},
		{"h", "toggle help"},
		{"esc", "quit"},
	}
}

// SlotKeys returns the increase and decrease keys for a parameter slot.
func SlotKeys(slot int) (up, down string, ok bool) {
	if slot < 0 || slot >= len(slotKeys) {
		return "", "", false
	}
	return slotKeys[slot][0], slotKeys[slot][1], true
}
