package ecs

import (
	"github.com/phanxgames/galton"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SimulationEventType is the Donburi event type for galton engine events.
// Subscribe to this in your ECS systems to receive spawn, gate, and
// completion notifications.
var SimulationEventType = events.NewEventType[galton.SimulationEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Engine events are published to SimulationEventType and can be consumed
// with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) galton.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event galton.SimulationEvent) {
	SimulationEventType.Publish(s.world, event)
}
