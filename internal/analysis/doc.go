// Package analysis provides chaos and trajectory analysis tools.
//
// The package characterizes recorded or freshly integrated trajectories:
//
//   - [Summarize]: per-axis mean, deviation and range
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//   - [PowerSpectrum], [DominantFrequency]: spectral content of one coordinate
//   - [BifurcationDiagram]: coefficient sweep recording local maxima
//   - [NewPhasePortrait], [NewPoincareSection]: 2D projections for plotting
//
// Integration uses the same explicit Euler step as the live engine, so
// estimates describe what the viewer actually sees.
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda := analysis.LyapunovExponent(dynamo.Lorenz, physics.Defaults(dynamo.Lorenz), x0, 0.01, 50, 1e-8)
//	if lambda > 0 {
//	    // System is chaotic
//	}
package analysis
