package evergreen

import "math"

// referenceFPS is the loop rate the per-frame constants were tuned at.
const referenceFPS = 60.0

// RotationState is the inertial spin of the whole scene around Y.
type RotationState struct {
	// Angle is the accumulated rotation in radians.
	Angle float64
	// AngularVelocity is radians per reference frame.
	AngularVelocity float64
	Dragging        bool
	LastX           float64
	Cursor          Cursor
}

// The transitions below are pure: they take a state and return the next one.

// PointerDown starts a drag at x. Momentum stops so the grab feels solid.
func PointerDown(s RotationState, x float64) RotationState {
	s.Dragging = true
	s.LastX = x
	s.AngularVelocity = 0
	s.Cursor = CursorGrabbing
	return s
}

// PointerMove rotates by the horizontal delta since the last event and
// keeps that delta as the release velocity. Ignored unless dragging.
func PointerMove(s RotationState, x float64, c RotationConfig) RotationState {
	if !s.Dragging {
		return s
	}
	step := (x - s.LastX) * c.Sensitivity
	s.Angle += step
	s.AngularVelocity = step
	s.LastX = x
	return s
}

// PointerUp ends a drag; the stored velocity carries on as momentum.
// PointerLeave is the same transition.
func PointerUp(s RotationState) RotationState {
	s.Dragging = false
	s.Cursor = CursorGrab
	return s
}

// AddVelocity adds amount to the velocity regardless of drag state.
func AddVelocity(s RotationState, amount float64) RotationState {
	s.AngularVelocity += amount
	return s
}

// Decay advances an idle state by dt seconds: the angle moves by the
// velocity and the velocity decays geometrically by Friction per reference
// frame. Once its magnitude would drop under IdleSpin it is held at
// ±IdleSpin, so the scene never stops turning. A dragging state is
// returned unchanged.
func Decay(s RotationState, dt float64, c RotationConfig) RotationState {
	if s.Dragging || dt <= 0 {
		return s
	}
	k := dt * referenceFPS
	s.Angle += s.AngularVelocity * k
	v := s.AngularVelocity * math.Pow(c.Friction, k)
	if math.Abs(v) < c.IdleSpin {
		if v < 0 {
			v = -c.IdleSpin
		} else {
			v = c.IdleSpin
		}
	}
	s.AngularVelocity = v
	return s
}

// Rotator owns a RotationState and applies the transitions with its config.
type Rotator struct {
	Config RotationConfig
	state  RotationState
}

// NewRotator creates an idle rotator already spinning at the idle floor.
func NewRotator(cfg RotationConfig) *Rotator {
	return &Rotator{
		Config: cfg,
		state:  RotationState{AngularVelocity: cfg.IdleSpin, Cursor: CursorGrab},
	}
}

// State returns a copy of the current state.
func (r *Rotator) State() RotationState {
	return r.state
}

// Angle returns the current rotation in radians.
func (r *Rotator) Angle() float64 {
	return r.state.Angle
}

// PointerDown begins a drag at screen x.
func (r *Rotator) PointerDown(x float64) {
	r.state = PointerDown(r.state, x)
}

// PointerMove continues a drag at screen x.
func (r *Rotator) PointerMove(x float64) {
	r.state = PointerMove(r.state, x, r.Config)
}

// PointerUp ends a drag.
func (r *Rotator) PointerUp() {
	r.state = PointerUp(r.state)
}

// PointerLeave ends a drag when the pointer leaves the interactive region.
func (r *Rotator) PointerLeave() {
	r.state = PointerUp(r.state)
}

// AddVelocity nudges the spin, e.g. from rotate buttons.
func (r *Rotator) AddVelocity(amount float64) {
	r.state = AddVelocity(r.state, amount)
}

// Update applies momentum and decay for one tick.
func (r *Rotator) Update(dt float64) {
	r.state = Decay(r.state, dt, r.Config)
}
