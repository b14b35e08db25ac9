package evergreen

// Body is the live transform of one entity, rewritten every frame by the
// interpolator. Rotation holds Euler angles in radians applied in Y, X, Z
// order (yaw, pitch, roll).
type Body struct {
	Position Vec3
	Rotation Vec3
	Scale    float64
	// SwayY is a render-only vertical offset. It never feeds back into
	// Position, so smoothing stays monotonic.
	SwayY float64
}

// RenderPosition returns Position with the sway offset applied.
func (b *Body) RenderPosition() Vec3 {
	return Vec3{X: b.Position.X, Y: b.Position.Y + b.SwayY, Z: b.Position.Z}
}

// Frame carries the inputs of one tick.
type Frame struct {
	// DT is the elapsed time since the previous tick in seconds.
	DT float64
	// Elapsed is the time since the scene started in seconds.
	Elapsed float64
	Mode    Mode
	// Camera is the eye position in the rotating group's local frame,
	// used for billboarding.
	Camera Vec3
}

// SmoothingFactor returns clamp(dt·rate, 0, 1), the fraction of the
// remaining distance covered this tick.
func SmoothingFactor(dt, rate float64) float64 {
	return clamp(dt*rate, 0, 1)
}

// Approach moves pos toward dest by factor. With factor in [0, 1] the
// result lies on the segment [pos, dest], so repeated calls never
// overshoot or oscillate.
func Approach(pos, dest Vec3, factor float64) Vec3 {
	return Vec3{
		X: pos.X + (dest.X-pos.X)*factor,
		Y: pos.Y + (dest.Y-pos.Y)*factor,
		Z: pos.Z + (dest.Z-pos.Z)*factor,
	}
}

// Population is a contiguous, index-addressed set of units and their live
// bodies. Units[i] and Bodies[i] describe the same entity.
type Population struct {
	Kind   Kind
	Units  []Unit
	Bodies []Body
	// Rate is the smoothing rate per second.
	Rate float64
}

// NewPopulation wraps units with bodies starting at their chaos positions,
// so a scene that opens formed assembles itself on the first frames.
func NewPopulation(kind Kind, units []Unit, rate float64) *Population {
	p := &Population{
		Kind:   kind,
		Units:  units,
		Bodies: make([]Body, len(units)),
		Rate:   rate,
	}
	for i := range units {
		p.Bodies[i].Position = units[i].Chaos
		p.Bodies[i].Scale = units[i].Scale
	}
	return p
}

// Len returns the number of entities.
func (p *Population) Len() int {
	return len(p.Units)
}

// Update advances every body one tick toward its destination in f.Mode.
// An empty population is a no-op.
func (p *Population) Update(f Frame) {
	if len(p.Units) == 0 {
		return
	}
	k := SmoothingFactor(f.DT, p.Rate)
	for i := range p.Units {
		u := &p.Units[i]
		b := &p.Bodies[i]
		b.Position = Approach(b.Position, u.Destination(f.Mode), k)
		b.Scale = u.Scale
		switch p.Kind {
		case KindFoliage:
			jiggle(b, f, u.Phase)
		default:
			orient(b, f, u.Phase)
		}
	}
}

// Star is the single topper entity. It settles slower than everything else
// and shrinks away in chaos.
type Star struct {
	Body
	Target Vec3
	Chaos  Vec3
	Rate   float64
}

const (
	starFormedScale = 1.5
	starChaosScale  = 0.1
	starChaosHeight = 30
)

// NewStar places the star above the apex of tree.
func NewStar(tree TreeConfig, rate float64) *Star {
	s := &Star{
		Target: Vec3{X: 0, Y: tree.Height/2 + 1, Z: 0},
		Chaos:  Vec3{X: 0, Y: starChaosHeight, Z: 0},
		Rate:   rate,
	}
	s.Position = s.Chaos
	s.Scale = starChaosScale
	return s
}

// Destination returns the star position for mode m.
func (s *Star) Destination(m Mode) Vec3 {
	if m.IsFormed() {
		return s.Target
	}
	return s.Chaos
}

// Update advances the star one tick. Scale settles twice as fast as position.
func (s *Star) Update(f Frame) {
	k := SmoothingFactor(f.DT, s.Rate)
	s.Position = Approach(s.Position, s.Destination(f.Mode), k)
	target := starChaosScale
	if f.Mode.IsFormed() {
		target = starFormedScale
	}
	s.Scale += (target - s.Scale) * SmoothingFactor(f.DT, s.Rate*2)
	s.Rotation.Y += f.DT * starSpinRate
}

// UpdatePhotos advances photo bodies toward their placement for f.Mode.
// bodies must be at least as long as photos; an empty set is a no-op.
func UpdatePhotos(photos []PhotoOrnament, bodies []Body, rate float64, f Frame) {
	if len(photos) == 0 {
		return
	}
	k := SmoothingFactor(f.DT, rate)
	for i := range photos {
		pl := &photos[i]
		b := &bodies[i]
		b.Position = Approach(b.Position, pl.Destination(f.Mode), k)
		b.Scale = pl.Scale
		orient(b, f, pl.Phase)
	}
}
