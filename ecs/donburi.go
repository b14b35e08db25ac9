package ecs

import (
	"github.com/phanxgames/evergreen"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for evergreen scene events.
var SceneEventType = events.NewEventType[evergreen.SceneEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on SceneEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) evergreen.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event evergreen.SceneEvent) {
	SceneEventType.Publish(s.world, event)
}
