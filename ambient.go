package evergreen

import (
	"math"
	"math/rand/v2"

	"github.com/ojrac/opensimplex-go"
)

// mote holds per-particle state. Unexported; managed by DustField.
type mote struct {
	x, y, z float64
	speed   float64 // fall per reference frame
}

// Turbulence noise sampling scales.
const (
	gustSpatial  = 0.1
	gustTemporal = 0.2
	gustZOffset  = 100
)

// DustField is the free-floating gold dust around the tree. It is not
// driven by the display mode: motes fall, wobble, wrap at the floor and
// drift toward the pointer.
type DustField struct {
	cfg   DustConfig
	motes []mote
	rng   *rand.Rand
	noise opensimplex.Noise
}

// NewDustField scatters cfg.Count motes through the spawn cube.
func NewDustField(cfg DustConfig, rng *rand.Rand, seed int64) *DustField {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	f := &DustField{
		cfg:   cfg,
		motes: make([]mote, max(cfg.Count, 0)),
		rng:   rng,
		noise: opensimplex.New(seed),
	}
	for i := range f.motes {
		m := &f.motes[i]
		m.x = f.spread()
		m.y = f.spread()
		m.z = f.spread()
		m.speed = cfg.FallSpeed.Random(rng)
	}
	return f
}

func (f *DustField) spread() float64 {
	return (f.rng.Float64()*2 - 1) * f.cfg.HalfExtent
}

// Len returns the number of motes.
func (f *DustField) Len() int {
	return len(f.motes)
}

// Config returns a pointer to the field's config for live tuning.
func (f *DustField) Config() *DustConfig {
	return &f.cfg
}

// Position returns the position of mote i.
func (f *DustField) Position(i int) Vec3 {
	m := &f.motes[i]
	return Vec3{X: m.x, Y: m.y, Z: m.z}
}

// AppendPositions appends every mote position to buf.
func (f *DustField) AppendPositions(buf []Vec3) []Vec3 {
	for i := range f.motes {
		m := &f.motes[i]
		buf = append(buf, Vec3{X: m.x, Y: m.y, Z: m.z})
	}
	return buf
}

// Update advances the field by dt seconds. elapsed drives the wobble.
// When hasPointer is set, motes within AttractionRadius of pointer are
// pulled toward it with a force falling linearly to zero at the radius.
// A mote that wraps this tick skips attraction so it lands exactly on
// the ceiling.
func (f *DustField) Update(dt, elapsed float64, pointer Vec3, hasPointer bool) {
	if len(f.motes) == 0 {
		return
	}
	k := dt * referenceFPS
	cfg := &f.cfg
	for i := range f.motes {
		m := &f.motes[i]

		m.y -= m.speed * k
		m.x += math.Sin(elapsed*m.speed*10) * cfg.Wobble * k

		if cfg.Turbulence > 0 {
			t := elapsed * gustTemporal
			m.x += f.noise.Eval2(m.x*gustSpatial, t) * cfg.Turbulence * k
			m.z += f.noise.Eval2(m.z*gustSpatial+gustZOffset, t) * cfg.Turbulence * k
		}

		if m.y < cfg.Floor {
			m.y = cfg.Ceiling
			m.x = f.spread()
			m.z = f.spread()
			continue
		}

		if !hasPointer || cfg.AttractionRadius <= 0 {
			continue
		}
		dx := pointer.X - m.x
		dy := pointer.Y - m.y
		dz := pointer.Z - m.z
		dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
		if dist < cfg.AttractionRadius {
			force := (1 - dist/cfg.AttractionRadius) * cfg.AttractionStrength
			force = math.Min(force*k, 1)
			m.x += dx * force
			m.y += dy * force
			m.z += dz * force
		}
	}
}
