// Package galton is a Galton board physics toy for [Ebitengine].
//
// A Galton board drops balls through a funnel into a triangular lattice of
// pegs; each peg deflects a ball left or right, and the balls collect in
// labeled bins at the bottom, approximating a binomial distribution.
//
// The package is split into an engine and a renderer. The engine derives the
// full board geometry (funnel, pegs, bin dividers, walls, gate) from a
// [Config] and a canvas size, owns the ball population, and steps a
// [Chipmunk2D] rigid-body space. The renderer draws read-only [Snapshot]
// values to an ebiten image and never touches engine state.
//
// # Quick start
//
//	sim := galton.NewSimulation(900, 600, galton.DefaultConfig())
//	sim.Fill([]galton.BallDef{
//		{Color: galton.BallColor{ID: "red", Hex: "#e74c3c", Name: "Red"}, Count: 300},
//	})
//	sim.SetGate(true)
//
//	// each frame:
//	sim.Tick(1.0 / 60.0)
//	renderer.Draw(screen, sim.Snapshot())
//
// # Commands
//
// The engine is driven by explicit commands rather than reactive state:
// [Simulation.Reset] rebuilds the board, [Simulation.Fill] loads and (in
// batch mode) spawns a ball queue, [Simulation.SetGate] opens or closes the
// funnel gate, and [Simulation.Tick] advances one frame. Canvas resizes are
// coalesced: [Simulation.Resize] records the new size and the rebuild happens
// at the next Tick.
//
// Any config or canvas change discards and rebuilds the entire static body
// set. Rebuilding is cheap at this scale and guarantees no component ever
// holds a reference to a stale peg or divider.
//
// # Events
//
// Spawn, gate, and completion events are delivered to an optional
// [EventSink]. The galton/ecs submodule bridges them into a [Donburi] world
// as typed events.
//
// [Ebitengine]: https://ebitengine.org
// [Chipmunk2D]: https://github.com/jakecoffman/cp
// [Donburi]: https://github.com/yohamta/donburi
package galton
