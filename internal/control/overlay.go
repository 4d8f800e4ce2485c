package control

import (
	"fmt"

	"github.com/san-kum/attractors/internal/physics"
	"github.com/san-kum/attractors/internal/sim"
)

// StatusLines renders the overlay text shared by every driver.
func StatusLines(st sim.Status) []string {
	lines := []string{
		fmt.Sprintf("System: %s", st.Label),
	}
	desc := physics.Describe(st.System)
	for i, c := range desc.Coefficients {
		v, _ := st.Parameters.Slot(i)
		up, down, _ := SlotKeys(i)
		lines = append(lines, fmt.Sprintf("  %s = %.3f  [%s/%s]", c.Symbol, v, up, down))
	}
	trails := "off"
	if st.Trails {
		trails = "on"
	}
	lines = append(lines,
		fmt.Sprintf("Time scale: %.1fx", st.TimeScale),
		fmt.Sprintf("Particles: %d", st.Particles),
		fmt.Sprintf("Trails: %s", trails),
		fmt.Sprintf("t = %.2f", st.Time),
	)
	return lines
}

// HelpLines renders the key bindings, one group per line.
func HelpLines() []string {
	bs := Bindings()
	lines := make([]string, len(bs))
	for i, b := range bs {
		lines[i] = fmt.Sprintf("%-12s %s", b.Keys, b.Help)
	}
	return lines
}
