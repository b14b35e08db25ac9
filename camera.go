package evergreen

import (
	"math"

	"github.com/tanema/gween/ease"
)

const cameraNear = 0.1

var worldUp = Vec3{X: 0, Y: 1, Z: 0}

// Rect is an axis-aligned screen rectangle with its origin at the top-left
// and Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Camera is a perspective camera looking at Target from Position.
type Camera struct {
	Position Vec3
	Target   Vec3
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Viewport is the screen-space rectangle the camera renders into.
	Viewport Rect

	dolly *TweenGroup
}

// NewCamera creates a camera at the tree preset.
func NewCamera(cfg CameraConfig, viewport Rect) *Camera {
	return &Camera{
		Position: cfg.TreeEye,
		Target:   cfg.Target,
		FOV:      cfg.FOV,
		Viewport: viewport,
	}
}

// DollyTo animates Position to eye over duration seconds. A new dolly
// replaces one in flight, starting from wherever the camera is now.
func (c *Camera) DollyTo(eye Vec3, duration float32, fn ease.TweenFunc) {
	if duration <= 0 {
		c.Position = eye
		c.dolly = nil
		return
	}
	c.dolly = TweenVec3(&c.Position, eye, duration, fn)
}

// Dollying reports whether a dolly is in flight.
func (c *Camera) Dollying() bool {
	return c.dolly != nil
}

// Update advances the dolly. Called from Scene.Update.
func (c *Camera) Update(dt float32) {
	if c.dolly == nil {
		return
	}
	c.dolly.Update(dt)
	if c.dolly.Done {
		c.dolly = nil
	}
}

// Aspect returns the viewport width / height, 1 for an empty viewport.
func (c *Camera) Aspect() float64 {
	if c.Viewport.Height <= 0 {
		return 1
	}
	return c.Viewport.Width / c.Viewport.Height
}

// basis returns the camera right, up and forward unit vectors.
func (c *Camera) basis() (right, up, forward Vec3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(worldUp).Normalize()
	if right.Norm2() == 0 {
		right = Vec3{X: 1}
	}
	up = right.Cross(forward)
	return right, up, forward
}

// Project maps a world point to screen coordinates. depth is the distance
// along the view axis; ok is false for points behind the near plane.
func (c *Camera) Project(p Vec3) (sx, sy, depth float64, ok bool) {
	right, up, forward := c.basis()
	v := p.Sub(c.Position)
	z := v.Dot(forward)
	if z <= cameraNear {
		return 0, 0, z, false
	}
	f := 1 / math.Tan(c.FOV*math.Pi/360)
	ndcX := v.Dot(right) * f / (z * c.Aspect())
	ndcY := v.Dot(up) * f / z
	sx = c.Viewport.X + (ndcX+1)/2*c.Viewport.Width
	sy = c.Viewport.Y + (1-ndcY)/2*c.Viewport.Height
	return sx, sy, z, true
}

// PixelsPerUnit returns how many screen pixels one world unit spans at the
// given view depth.
func (c *Camera) PixelsPerUnit(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return c.Viewport.Height / 2 / (math.Tan(c.FOV*math.Pi/360) * depth)
}

// ScreenToNDC maps screen coordinates to [-1, 1] with Y up.
func (c *Camera) ScreenToNDC(sx, sy float64) (float64, float64) {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return 0, 0
	}
	x := (sx-c.Viewport.X)/c.Viewport.Width*2 - 1
	y := 1 - (sy-c.Viewport.Y)/c.Viewport.Height*2
	return x, y
}

// ViewExtent returns the world-space width and height visible at the
// target's depth.
func (c *Camera) ViewExtent() (w, h float64) {
	dist := c.Target.Sub(c.Position).Norm()
	h = 2 * dist * math.Tan(c.FOV*math.Pi/360)
	return h * c.Aspect(), h
}

// PointerToWorld projects a pointer in NDC onto the z=0 plane through the
// tree, scaled by the view extent at the target depth.
func (c *Camera) PointerToWorld(ndcX, ndcY float64) Vec3 {
	w, h := c.ViewExtent()
	return Vec3{X: ndcX * w / 2, Y: ndcY * h / 2, Z: 0}
}

// EyeFor returns the configured eye preset for mode m.
func (cfg CameraConfig) EyeFor(m Mode) Vec3 {
	switch m {
	case ModeChaos:
		return cfg.ChaosEye
	case ModeGallery:
		return cfg.GalleryEye
	default:
		return cfg.TreeEye
	}
}
