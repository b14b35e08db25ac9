package evergreen

import (
	"image/color"
	"math/rand/v2"

	"github.com/golang/geo/r3"
)

// Vec3 is the 3D vector used for positions, offsets and Euler rotations
// throughout the API. Y is up.
type Vec3 = r3.Vector

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// RGBA returns the color as a premultiplied color.RGBA for ebiten.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max] drawn from rng.
// A nil rng uses the global source.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	if rng == nil {
		return r.Min + rand.Float64()*(r.Max-r.Min)
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Contains reports whether v lies inside [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Mode is the named target layout the scene animates toward.
type Mode uint8

const (
	ModeTree    Mode = iota // cone-shaped tree, entities face outward
	ModeChaos               // scattered, entities tumble
	ModeGallery             // photos on a camera-facing spiral
)

// ModeFormed is the tree mode under its single-toggle name.
const ModeFormed = ModeTree

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeTree:
		return "tree"
	case ModeChaos:
		return "chaos"
	case ModeGallery:
		return "gallery"
	default:
		return "unknown"
	}
}

// IsFormed reports whether the base tree holds its cone shape in this mode.
// Gallery keeps the tree formed; only photos move to the spiral.
func (m Mode) IsFormed() bool {
	return m != ModeChaos
}

// Palette names the fixed decoration colors.
type Palette uint8

const (
	PaletteEmerald Palette = iota
	PaletteGold
	PaletteSilver
	PaletteRuby
	PaletteChampagne
)

// Kind identifies an entity population. Each kind settles at its own rate.
type Kind uint8

const (
	KindFoliage Kind = iota
	KindOrnament
	KindStar
	KindPhoto
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindFoliage:
		return "foliage"
	case KindOrnament:
		return "ornament"
	case KindStar:
		return "star"
	case KindPhoto:
		return "photo"
	default:
		return "unknown"
	}
}

// EventType identifies a scene event delivered to an EventSink.
type EventType uint8

const (
	EventModeChanged   EventType = iota // the active mode changed
	EventPhotosAdded                    // a decoded batch joined the photo set
	EventPhotoRejected                  // one file in a batch failed to decode
)

// Cursor is the pointer cursor the rotation controller asks for.
type Cursor uint8

const (
	CursorGrab     Cursor = iota // idle over the scene
	CursorGrabbing               // dragging
)

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
