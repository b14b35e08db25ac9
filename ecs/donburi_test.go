package ecs

import (
	"log/slog"
	"testing"

	"github.com/phanxgames/evergreen"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func newScene(t *testing.T) *evergreen.Scene {
	t.Helper()
	cfg := evergreen.DefaultConfig()
	cfg.Foliage.Count = 50
	cfg.Ornaments.Count = 10
	cfg.Dust.Count = 20
	cfg.Logger = slog.New(slog.DiscardHandler)
	s, err := evergreen.NewScene(cfg)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return s
}

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []evergreen.SceneEvent
	SceneEventType.Subscribe(world, func(w donburi.World, e evergreen.SceneEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(evergreen.SceneEvent{
		Type:     evergreen.EventModeChanged,
		Mode:     evergreen.ModeChaos,
		Previous: evergreen.ModeTree,
	})
	sink.EmitEvent(evergreen.SceneEvent{
		Type:  evergreen.EventPhotosAdded,
		Count: 3,
		Total: 5,
	})

	// Events are queued, process them.
	SceneEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Type != evergreen.EventModeChanged || e.Mode != evergreen.ModeChaos || e.Previous != evergreen.ModeTree {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Type != evergreen.EventPhotosAdded || e.Count != 3 || e.Total != 5 {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_FromScene(t *testing.T) {
	world := donburi.NewWorld()
	scene := newScene(t)
	scene.SetEventSink(NewDonburiSink(world))

	var received []evergreen.SceneEvent
	SceneEventType.Subscribe(world, func(w donburi.World, e evergreen.SceneEvent) {
		received = append(received, e)
	})

	scene.Controller().ToggleChaos()
	res := scene.Controller().AddPhotos([]evergreen.Blob{{Name: "broken.jpg", Data: []byte("not an image")}})
	if len(res.Failed) != 1 {
		t.Fatalf("Failed = %d, want 1", len(res.Failed))
	}

	// Nothing reaches the world until the scene flushes on Update.
	events.ProcessAllEvents(world)
	if len(received) != 0 {
		t.Fatalf("events before Update: %d", len(received))
	}

	scene.Update(1.0 / 60)
	events.ProcessAllEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Type != evergreen.EventModeChanged || received[0].Mode != evergreen.ModeChaos {
		t.Errorf("event 0: %+v", received[0])
	}
	if received[1].Type != evergreen.EventPhotoRejected || received[1].Name != "broken.jpg" {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	SceneEventType.Subscribe(world, func(w donburi.World, e evergreen.SceneEvent) {
		count1++
	})
	SceneEventType.Subscribe(world, func(w donburi.World, e evergreen.SceneEvent) {
		count2++
	})

	sink.EmitEvent(evergreen.SceneEvent{Type: evergreen.EventModeChanged})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
