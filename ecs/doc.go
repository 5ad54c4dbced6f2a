// Package ecs provides ECS adapters for the galton simulation event system.
//
// The primary adapter is [NewDonburiSink], which bridges engine events
// (spawn, gate transitions, completion) into a [Donburi] world as typed
// events. Subscribe to [SimulationEventType] in your ECS systems to receive
// them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	sim.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
