package evergreen

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// pointerState tracks the single pointer (mouse or first touch) between
// frames so level-triggered polling can be turned into edges.
type pointerState struct {
	down   bool
	inside bool
	lastX  float64
	lastY  float64
	// touch is the touch ID being followed, -1 when the mouse drives input.
	touch ebiten.TouchID
}

// EnableInput turns ebiten mouse and touch polling on or off. It is off by
// default so headless scenes and tests never touch ebiten's input state.
func (s *Scene) EnableInput(on bool) {
	s.inputEnabled = on
}

// PointerDown starts a drag at screen position (sx, sy).
func (s *Scene) PointerDown(sx, sy float64) {
	s.setPointer(sx, sy)
	s.pointer.down = true
	s.rotator.PointerDown(sx)
}

// PointerMove moves the pointer. While dragging the horizontal delta spins
// the tree; the position always feeds the dust field.
func (s *Scene) PointerMove(sx, sy float64) {
	s.setPointer(sx, sy)
	s.rotator.PointerMove(sx)
}

// PointerUp ends a drag. The tree keeps the momentum of the last move.
func (s *Scene) PointerUp(sx, sy float64) {
	s.setPointer(sx, sy)
	s.pointer.down = false
	s.rotator.PointerUp()
}

// PointerLeave is called when the pointer exits the viewport. It ends any
// drag and stops the dust from tracking the pointer.
func (s *Scene) PointerLeave() {
	s.pointer.down = false
	s.pointer.inside = false
	s.hasPointer = false
	s.rotator.PointerLeave()
}

func (s *Scene) setPointer(sx, sy float64) {
	s.pointer.inside = true
	s.pointer.lastX, s.pointer.lastY = sx, sy
	s.hasPointer = true
}

// processInput drains one injected event, or polls ebiten when input is
// enabled. Injected input wins for the frame.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	if !s.inputEnabled {
		return
	}
	sx, sy, pressed := s.pollPointer()
	s.processPointer(sx, sy, pressed, s.camera.Viewport.Contains(sx, sy))
}

// pollPointer reads the mouse, or the first active touch when there is one.
func (s *Scene) pollPointer() (sx, sy float64, pressed bool) {
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])
	if len(s.touchIDs) > 0 {
		tid := s.touchIDs[0]
		for _, id := range s.touchIDs {
			if id == s.pointer.touch {
				tid = id
				break
			}
		}
		s.pointer.touch = tid
		tx, ty := ebiten.TouchPosition(tid)
		return float64(tx), float64(ty), true
	}
	if s.pointer.touch >= 0 {
		// Touch lifted: release where it was last seen.
		s.pointer.touch = -1
		return s.pointer.lastX, s.pointer.lastY, false
	}
	mx, my := ebiten.CursorPosition()
	return float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// processPointer turns one frame of pointer state into down, move, up and
// leave calls.
func (s *Scene) processPointer(sx, sy float64, pressed, inside bool) {
	if !inside {
		if s.pointer.inside || s.pointer.down {
			s.PointerLeave()
		}
		return
	}
	moved := !s.pointer.inside || sx != s.pointer.lastX || sy != s.pointer.lastY
	switch {
	case pressed && !s.pointer.down:
		s.PointerDown(sx, sy)
	case !pressed && s.pointer.down:
		s.PointerUp(sx, sy)
	case moved:
		s.PointerMove(sx, sy)
	}
}
