// Package sim implements the particle simulation core.
//
// An [Engine] owns an ensemble of [Particle] values that move through the
// vector field of the active [dynamo.SystemKind]. Drivers call
// [Engine.Advance] once per frame and read [Engine.Particles] and
// [Engine.Status] to draw. Input handling maps key presses onto the
// engine's transition methods: SelectSystem, AdjustParameter,
// AdjustTimeScale, AdjustParticleCount, ToggleTrails and Reset.
//
// Integration is explicit Euler with a step of dtWall·timeScale. Each
// particle keeps a bounded [Trail] of its most recent states.
//
// The engine is single-threaded: it must only be used from the goroutine
// that drives the frame loop.
package sim
