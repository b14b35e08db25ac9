package evergreen

import (
	"math"
	"testing"
)

func testRotation() RotationConfig {
	return DefaultConfig().Rotation
}

func TestPointerDragRotates(t *testing.T) {
	c := testRotation()
	s := RotationState{Cursor: CursorGrab}
	s = PointerDown(s, 100)
	if !s.Dragging || s.Cursor != CursorGrabbing {
		t.Fatalf("after down: %+v", s)
	}
	s = PointerMove(s, 120, c)
	if want := 20 * c.Sensitivity; math.Abs(s.Angle-want) > 1e-12 {
		t.Errorf("Angle = %f, want %f", s.Angle, want)
	}
	if want := 20 * c.Sensitivity; math.Abs(s.AngularVelocity-want) > 1e-12 {
		t.Errorf("AngularVelocity = %f, want %f", s.AngularVelocity, want)
	}
	s = PointerUp(s)
	if s.Dragging || s.Cursor != CursorGrab {
		t.Errorf("after up: %+v", s)
	}
}

func TestPointerDownStopsMomentum(t *testing.T) {
	s := RotationState{AngularVelocity: 0.3}
	s = PointerDown(s, 0)
	if s.AngularVelocity != 0 {
		t.Errorf("AngularVelocity = %f, want 0", s.AngularVelocity)
	}
}

func TestPointerMoveIgnoredWhenIdle(t *testing.T) {
	s := RotationState{LastX: 10, AngularVelocity: 0.01}
	got := PointerMove(s, 500, testRotation())
	if got != s {
		t.Errorf("idle move changed state: %+v", got)
	}
}

func TestDecayStrictlyDecreasesToFloor(t *testing.T) {
	c := testRotation()
	s := RotationState{AngularVelocity: 0.05}
	prev := s.AngularVelocity
	reached := -1
	for i := 0; i < 600; i++ {
		s = Decay(s, frameDT, c)
		v := s.AngularVelocity
		if reached < 0 {
			if v == c.IdleSpin {
				reached = i
			} else if v >= prev {
				t.Fatalf("frame %d: velocity %f did not decrease from %f", i, v, prev)
			}
		} else if v != c.IdleSpin {
			t.Fatalf("frame %d: velocity left the floor: %f", i, v)
		}
		prev = v
	}
	if reached < 0 {
		t.Fatal("velocity never reached the idle floor")
	}
	// 0.05·0.96^n < 0.001 first at n ≈ 96.
	if reached < 80 || reached > 110 {
		t.Errorf("floor reached at frame %d, want about 96", reached)
	}
}

func TestDecayKeepsDirection(t *testing.T) {
	c := testRotation()
	s := RotationState{AngularVelocity: -0.05}
	for i := 0; i < 600; i++ {
		s = Decay(s, frameDT, c)
	}
	if s.AngularVelocity != -c.IdleSpin {
		t.Errorf("AngularVelocity = %f, want %f", s.AngularVelocity, -c.IdleSpin)
	}
}

func TestDecayZeroVelocityGoesPositive(t *testing.T) {
	c := testRotation()
	s := Decay(RotationState{}, frameDT, c)
	if s.AngularVelocity != c.IdleSpin {
		t.Errorf("AngularVelocity = %f, want %f", s.AngularVelocity, c.IdleSpin)
	}
}

func TestDecayFrameRateIndependent(t *testing.T) {
	c := testRotation()
	at60 := RotationState{AngularVelocity: 0.04}
	for i := 0; i < 60; i++ {
		at60 = Decay(at60, 1.0/60, c)
	}
	at30 := RotationState{AngularVelocity: 0.04}
	for i := 0; i < 30; i++ {
		at30 = Decay(at30, 1.0/30, c)
	}
	if math.Abs(at60.AngularVelocity-at30.AngularVelocity) > 1e-9 {
		t.Errorf("velocity after 1s: 60Hz %f, 30Hz %f", at60.AngularVelocity, at30.AngularVelocity)
	}
}

func TestDecaySkippedWhileDragging(t *testing.T) {
	s := RotationState{Dragging: true, AngularVelocity: 0.02, Angle: 1}
	if got := Decay(s, frameDT, testRotation()); got != s {
		t.Errorf("dragging state changed: %+v", got)
	}
}

func TestRotatorIdleSpin(t *testing.T) {
	r := NewRotator(testRotation())
	for i := 0; i < 60; i++ {
		r.Update(frameDT)
	}
	want := 60 * 0.001
	if math.Abs(r.Angle()-want) > 1e-9 {
		t.Errorf("Angle after 1s idle = %f, want %f", r.Angle(), want)
	}
}

func TestRotatorLeaveEndsDrag(t *testing.T) {
	r := NewRotator(testRotation())
	r.PointerDown(10)
	r.PointerMove(30)
	r.PointerLeave()
	st := r.State()
	if st.Dragging {
		t.Error("still dragging after leave")
	}
	if st.Cursor != CursorGrab {
		t.Errorf("Cursor = %d, want CursorGrab", st.Cursor)
	}
	if st.AngularVelocity <= 0 {
		t.Errorf("release velocity = %f, want > 0", st.AngularVelocity)
	}
}

func TestRotatorAddVelocity(t *testing.T) {
	r := NewRotator(testRotation())
	r.AddVelocity(0.05)
	if got := r.State().AngularVelocity; math.Abs(got-0.051) > 1e-12 {
		t.Errorf("AngularVelocity = %f, want 0.051", got)
	}
}
