package evergreen

// SceneEvent describes something the scene did, for observers outside the
// frame loop (UI, ECS, analytics).
type SceneEvent struct {
	Type EventType
	// Mode and Previous are the new and old modes (EventModeChanged).
	Mode     Mode
	Previous Mode
	// Count is the number of photos added (EventPhotosAdded).
	Count int
	// Total is the photo set size after the batch (EventPhotosAdded).
	Total int
	// Name and Err identify a rejected file (EventPhotoRejected).
	Name string
	Err  error
}

// EventSink receives scene events. Events are delivered from Scene.Update
// on the frame goroutine, in the order they happened.
type EventSink interface {
	EmitEvent(event SceneEvent)
}

// SetEventSink sets the optional event observer.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// post queues an event. Safe from any goroutine.
func (s *Scene) post(ev SceneEvent) {
	s.evMu.Lock()
	s.pending = append(s.pending, ev)
	s.evMu.Unlock()
}

// flushEvents hands queued events to the sink. Called from Update.
func (s *Scene) flushEvents() {
	s.evMu.Lock()
	s.delivering, s.pending = s.pending, s.delivering[:0]
	s.evMu.Unlock()
	if s.sink == nil {
		return
	}
	for _, ev := range s.delivering {
		s.sink.EmitEvent(ev)
	}
}
