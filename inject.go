package evergreen

type injectKind uint8

const (
	injectPress injectKind = iota
	injectMove
	injectRelease
	injectLeave
)

// syntheticPointerEvent is a queued pointer event in screen coordinates.
// It goes through the same path as real input, one event per frame.
type syntheticPointerEvent struct {
	kind             injectKind
	screenX, screenY float64
}

// InjectPress queues a pointer press at the given screen coordinates. The
// event is consumed on the next frame's processInput call.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{kind: injectPress, screenX: x, screenY: y})
}

// InjectMove queues a pointer move. Between InjectPress and InjectRelease
// it drags the tree.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{kind: injectMove, screenX: x, screenY: y})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{kind: injectRelease, screenX: x, screenY: y})
}

// InjectLeave queues the pointer leaving the viewport.
func (s *Scene) InjectLeave() {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{kind: injectLeave})
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(lerp(fromX, toX, t), lerp(fromY, toY, t))
	}
	s.InjectRelease(toX, toY)
}

// PendingInput returns the number of queued synthetic events.
func (s *Scene) PendingInput() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and applies it.
// Returns true if an event was consumed (real input is skipped).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case injectPress:
		s.PointerDown(evt.screenX, evt.screenY)
	case injectMove:
		s.PointerMove(evt.screenX, evt.screenY)
	case injectRelease:
		// A release also moves the pointer, so the last step of a drag
		// still contributes its delta.
		s.PointerMove(evt.screenX, evt.screenY)
		s.PointerUp(evt.screenX, evt.screenY)
	case injectLeave:
		s.PointerLeave()
	}
	return true
}
