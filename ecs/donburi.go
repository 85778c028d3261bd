package ecs

import (
	"github.com/phanxgames/arbor"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for arbor interaction events.
// Subscribe to this in your ECS systems to receive pointer, drag, focus and
// key events for nodes that carry an entity id.
var InteractionEventType = events.NewEventType[arbor.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) arbor.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event arbor.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// SubscribeTypes subscribes fn to interaction events whose type is one of
// types. Events are delivered when InteractionEventType.ProcessEvents runs.
func SubscribeTypes(world donburi.World, fn func(donburi.World, arbor.InteractionEvent), types ...arbor.EventType) {
	var mask uint32
	for _, t := range types {
		mask |= 1 << t
	}
	InteractionEventType.Subscribe(world, func(w donburi.World, e arbor.InteractionEvent) {
		if mask&(1<<e.Type) != 0 {
			fn(w, e)
		}
	})
}
