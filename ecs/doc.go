// Package ecs provides ECS adapters for arbor's interaction events.
//
// The primary adapter is [NewDonburiStore], which bridges arbor interaction
// events (mouse, drag and drop, focus, key, wheel) into a [Donburi] world as
// typed events. Only nodes tagged with Tree.SetEntityID are forwarded.
// Subscribe to [InteractionEventType] in your ECS systems to receive them,
// or use [SubscribeTypes] to filter by event type.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//	scene.Tree().SetEntityID(button, uint32(entity.Id()))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
