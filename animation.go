package evergreen

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// TweenVec3 or TweenFloat and call Update(dt) each frame; values are written
// straight into the target fields.
//
// There is no global animation manager. The scene advances the tweens it
// owns; callers advance their own.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenVec3 animates all three components of *v to to over duration.
func TweenVec3(v *Vec3, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3}
	g.tweens[0] = gween.New(float32(v.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(v.Y), float32(to.Y), duration, fn)
	g.tweens[2] = gween.New(float32(v.Z), float32(to.Z), duration, fn)
	g.fields[0] = &v.X
	g.fields[1] = &v.Y
	g.fields[2] = &v.Z
	return g
}

// TweenFloat animates a single field.
func TweenFloat(f *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(*f), float32(to), duration, fn)
	g.fields[0] = f
	return g
}
