package evergreen

import "math"

// Orientation constants. Per-second rates are the per-frame rates of the
// reference 60 Hz loop multiplied by 60.
const (
	tumbleRate       = 0.5  // rad/s while scattered
	foliageTumble    = 0.6  // rad/s, needles spin a little faster
	foliageJiggle    = 0.12 // rad/s amplitude of the formed needle shimmer
	hangingSway      = 0.03 // rad, roll amplitude of hanging entities
	gallerySway      = 0.05
	gallerySwayFreq  = 1.5
	starSpinRate     = 0.6
	minFacingHorizon = 1e-9
)

// OutwardRotation returns the rotation that makes the +Z face of an entity
// at p point away from the vertical axis: look at (0, p.Y, 0), then turn
// half a revolution.
func OutwardRotation(p Vec3) Vec3 {
	if p.X*p.X+p.Z*p.Z < minFacingHorizon {
		return Vec3{}
	}
	return Vec3{Y: math.Atan2(p.X, p.Z)}
}

// FacingRotation returns the yaw/pitch rotation that points the +Z face of
// an entity at p toward eye.
func FacingRotation(p, eye Vec3) Vec3 {
	d := eye.Sub(p)
	h := math.Hypot(d.X, d.Z)
	if h < minFacingHorizon && math.Abs(d.Y) < minFacingHorizon {
		return Vec3{}
	}
	return Vec3{X: -math.Atan2(d.Y, h), Y: math.Atan2(d.X, d.Z)}
}

// Forward returns the direction the +Z face points after rotation r.
func Forward(r Vec3) Vec3 {
	sp, cp := math.Sincos(r.X)
	sy, cy := math.Sincos(r.Y)
	return Vec3{X: cp * sy, Y: -sp, Z: cp * cy}
}

// orient applies the mode's orientation rule to a hanging entity (ornament
// or photo).
func orient(b *Body, f Frame, phase float64) {
	switch f.Mode {
	case ModeChaos:
		b.SwayY = 0
		b.Rotation.X += f.DT * tumbleRate
		b.Rotation.Y += f.DT * tumbleRate
	case ModeGallery:
		b.Rotation = FacingRotation(b.Position, f.Camera)
		b.SwayY = math.Sin(f.Elapsed*gallerySwayFreq+phase) * gallerySway
	default:
		b.SwayY = 0
		b.Rotation = OutwardRotation(b.Position)
		b.Rotation.Z = math.Sin(f.Elapsed+phase) * hangingSway
	}
}

// jiggle is the needle rule: a phase-shifted shimmer when formed, free
// tumbling otherwise.
func jiggle(b *Body, f Frame, phase float64) {
	if f.Mode.IsFormed() {
		t := f.Elapsed + phase
		b.Rotation.X += math.Sin(t) * foliageJiggle * f.DT
		b.Rotation.Y += math.Cos(t) * foliageJiggle * f.DT
		return
	}
	b.Rotation.X += f.DT * foliageTumble
	b.Rotation.Y += f.DT * foliageTumble
}
