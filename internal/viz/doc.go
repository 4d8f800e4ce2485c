// Package viz provides the terminal driver for the attractor simulation.
//
// The driver is a Bubble Tea program that renders the particle ensemble
// on a Braille [Canvas] through a slowly rotating [Camera], with a side
// panel showing the active system, its coefficients and a live graph of
// the first particle's x coordinate.
//
// # Key Bindings
//
// All simulation keys come from package control. In addition:
//
//	←/→ ↑/↓  - Rotate the camera
//	+/-      - Zoom
//	Tab      - Cycle color themes
package viz
