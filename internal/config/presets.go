package config

import (
	"maps"
	"slices"

	"github.com/san-kum/attractors/internal/dynamo"
)

// Preset is a named coefficient set for one system.
type Preset struct {
	Description string
	Parameters  map[string]float64
}

var Presets = map[string]map[string]Preset{
	"lorenz": {
		"classic":   {Description: "butterfly at σ=10 ρ=28 β=8/3", Parameters: map[string]float64{"sigma": 10, "rho": 28, "beta": 8.0 / 3.0}},
		"periodic":  {Description: "stable periodic orbit", Parameters: map[string]float64{"rho": 99.96}},
		"transient": {Description: "transient chaos decaying to a fixed point", Parameters: map[string]float64{"rho": 24.5}},
	},
	"rossler": {
		"classic":  {Description: "single scroll at a=b=0.2 c=5.7", Parameters: map[string]float64{"a": 0.2, "b": 0.2, "c": 5.7}},
		"funnel":   {Description: "funnel attractor", Parameters: map[string]float64{"c": 13}},
		"periodic": {Description: "period-one limit cycle", Parameters: map[string]float64{"c": 2.5}},
	},
	"aizawa": {
		"classic": {Description: "torus with a polar tube", Parameters: map[string]float64{"a": 0.95, "b": 0.7, "c": 0.6, "d": 3.5, "e": 0.25, "f": 0.1}},
		"flat":    {Description: "flattened shell", Parameters: map[string]float64{"e": 0.1}},
		"open":    {Description: "open spiral", Parameters: map[string]float64{"a": 0.65}},
	},
	"chenlee": {
		"classic": {Description: "double scroll at α=5 β=-10 γ=-0.38", Parameters: map[string]float64{"alpha": 5, "beta": -10, "gamma": -0.38}},
		"wide":    {Description: "wider scroll separation", Parameters: map[string]float64{"alpha": 3.5}},
	},
}

func systemKey(system string) string {
	kind, err := dynamo.ParseSystemKind(system)
	if err != nil {
		return system
	}
	return kind.String()
}

// GetPreset returns the named preset or nil. System names are normalized.
func GetPreset(system, preset string) *Preset {
	systemPresets, ok := Presets[systemKey(system)]
	if !ok {
		return nil
	}
	p, ok := systemPresets[preset]
	if !ok {
		return nil
	}
	return &p
}

// ListPresets returns the preset names for system in sorted order.
func ListPresets(system string) []string {
	systemPresets, ok := Presets[systemKey(system)]
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(systemPresets))
}

// ApplyPreset merges the named preset for the configured system into
// Parameters. Coefficients the preset does not name keep their values.
func (c *Config) ApplyPreset(name string) error {
	p := GetPreset(c.System, name)
	if p == nil {
		return invalid("no preset %q for system %q", name, c.System)
	}
	if c.Parameters == nil {
		c.Parameters = make(map[string]float64, len(p.Parameters))
	}
	for k, v := range p.Parameters {
		c.Parameters[k] = v
	}
	return nil
}
