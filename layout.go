package evergreen

import (
	"math"
	"math/rand/v2"
)

// Angular steps for the cone spirals. Foliage winds tightly; ornaments use
// the golden angle so neighbours never line up in columns.
const (
	foliageAngleStep  = 0.5
	ornamentAngleStep = math.Pi * (3 - 2.2360679774997896) // π(3-√5)
	ornamentOffset    = 0.2
)

// Unit is one generated foliage or ornament record. Immutable after
// generation; the live transform lives in a Body owned by the Population.
type Unit struct {
	// Chaos is the scattered position.
	Chaos Vec3
	// Target is the tree position, used by every formed mode.
	Target Vec3
	Scale  float64
	Color  Palette
	// Phase offsets the per-unit sway so units don't move in lockstep.
	Phase float64
}

// Destination returns the position this unit animates toward in mode m.
func (u *Unit) Destination(m Mode) Vec3 {
	if m.IsFormed() {
		return u.Target
	}
	return u.Chaos
}

// Generator produces populations. Structural choices come from a seeded
// source so layouts repeat across runs; cosmetic choices (chaos radius,
// scale, color, phase) come from an unseeded source.
type Generator struct {
	shape  *rand.Rand
	jitter *rand.Rand
}

// NewGenerator creates a Generator whose structural source is seeded with seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{
		shape:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		jitter: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Jitter returns the unseeded source for cosmetic variation.
func (g *Generator) Jitter() *rand.Rand {
	return g.jitter
}

// Foliage generates n needles on a tight conical spiral.
func (g *Generator) Foliage(cfg PopulationConfig, tree TreeConfig) []Unit {
	units := make([]Unit, cfg.Count)
	for i := range units {
		u := &units[i]
		u.Target = ConeTarget(i, cfg.Count, tree, foliageAngleStep, 0)
		u.Chaos = SphereChaos(i, cfg.Count, cfg.Spread, g.jitter.Float64())
		u.Scale = cfg.Scale.Random(g.jitter)
		u.Color = PaletteEmerald
		if g.jitter.Float64() > 0.8 {
			u.Color = PaletteGold
		}
		u.Phase = g.jitter.Float64() * 2 * math.Pi
	}
	return units
}

// Ornaments generates n baubles just outside the foliage surface. Each
// ornament keeps its index slot on the cone but is nudged up or down within
// the slot by the seeded source.
func (g *Generator) Ornaments(cfg PopulationConfig, tree TreeConfig) []Unit {
	units := make([]Unit, cfg.Count)
	slot := 0.0
	if cfg.Count > 0 {
		slot = tree.Height / float64(cfg.Count)
	}
	for i := range units {
		u := &units[i]
		t := ConeTarget(i, cfg.Count, tree, ornamentAngleStep, ornamentOffset)
		dy := (g.shape.Float64() - 0.5) * slot
		t.Y = clamp(t.Y+dy, -tree.Height/2, tree.Height/2)
		r := ConeRadius(tree, t.Y) + ornamentOffset
		a := float64(i) * ornamentAngleStep
		u.Target = Vec3{X: math.Cos(a) * r, Y: t.Y, Z: math.Sin(a) * r}
		u.Chaos = SphereChaos(i, cfg.Count, cfg.Spread, g.jitter.Float64())
		u.Scale = cfg.Scale.Random(g.jitter)
		switch {
		case g.jitter.Float64() > 0.8:
			u.Color = PaletteRuby
		case g.jitter.Float64() > 0.5:
			u.Color = PaletteGold
		default:
			u.Color = PaletteSilver
		}
		u.Phase = g.jitter.Float64() * 2 * math.Pi
	}
	return units
}

// ConeTarget returns the spiral-cone position of index i out of n: height
// linear in i, radius tapering linearly from base to apex, angle i·step.
func ConeTarget(i, n int, tree TreeConfig, step, offset float64) Vec3 {
	if n <= 0 {
		return Vec3{}
	}
	progress := float64(i) / float64(n)
	y := progress*tree.Height - tree.Height/2
	r := tree.Radius*(1-progress) + offset
	a := float64(i) * step
	return Vec3{X: math.Cos(a) * r, Y: y, Z: math.Sin(a) * r}
}

// ConeRadius returns the cone radius at height y.
func ConeRadius(tree TreeConfig, y float64) float64 {
	progress := clamp01((y + tree.Height/2) / tree.Height)
	return tree.Radius * (1 - progress)
}

// SphereChaos returns a point inside a sphere of radius spread. The
// direction walks an oriented spiral over the sphere by index; u in [0, 1)
// picks the radius through a cube root so points fill the volume evenly
// instead of crowding the centre.
func SphereChaos(i, n int, spread, u float64) Vec3 {
	if n <= 0 {
		return Vec3{}
	}
	phi := math.Acos(clamp(-1+2*float64(i)/float64(n), -1, 1))
	theta := math.Sqrt(float64(n)*math.Pi) * phi
	r := spread * math.Cbrt(u)
	sinPhi := math.Sin(phi)
	return Vec3{
		X: r * sinPhi * math.Cos(theta),
		Y: r * sinPhi * math.Sin(theta),
		Z: r * math.Cos(phi),
	}
}
