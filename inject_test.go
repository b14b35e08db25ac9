package evergreen

import "testing"

func TestInjectDragQueuesFrames(t *testing.T) {
	s := newTestScene(t)
	s.InjectDrag(0, 0, 100, 0, 6)
	if s.PendingInput() != 6 {
		t.Fatalf("PendingInput() = %d, want 6", s.PendingInput())
	}
	runFrames(s, 6)
	if s.PendingInput() != 0 {
		t.Errorf("PendingInput() = %d after 6 frames, want 0", s.PendingInput())
	}
}

func TestInjectDragMinimumFrames(t *testing.T) {
	s := newTestScene(t)
	s.InjectDrag(0, 0, 10, 0, 0)
	if s.PendingInput() != 2 {
		t.Errorf("PendingInput() = %d, want 2 (press + release)", s.PendingInput())
	}
}

func TestInjectOneEventPerFrame(t *testing.T) {
	s := newTestScene(t)
	s.InjectPress(10, 10)
	s.InjectMove(50, 10)
	s.Update(frameDT)
	if !s.rotator.State().Dragging {
		t.Fatal("press not applied")
	}
	if s.RotationAngle() != 0 {
		t.Errorf("move applied in the same frame as press")
	}
	s.Update(frameDT)
	if want := 40 * s.cfg.Rotation.Sensitivity; s.RotationAngle() != want {
		t.Errorf("RotationAngle() = %f, want %f", s.RotationAngle(), want)
	}
}

func TestInjectLeave(t *testing.T) {
	s := newTestScene(t)
	s.InjectPress(10, 10)
	s.InjectLeave()
	runFrames(s, 2)
	if s.rotator.State().Dragging {
		t.Error("leave did not end the drag")
	}
}
