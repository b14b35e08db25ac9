// Package ecs bridges evergreen scene events into a [Donburi] world.
//
// [NewDonburiSink] publishes every [evergreen.SceneEvent] (mode changes,
// photo batches, rejected photos) as a typed Donburi event. Subscribe to
// [SceneEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
