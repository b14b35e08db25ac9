package evergreen

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Scene composes every population, the rotation controller, the dust
// field and the camera, and advances them once per frame.
type Scene struct {
	cfg Config
	log *slog.Logger

	ctrl *Controller

	foliage   *Population
	ornaments *Population
	star      *Star

	photos      *PhotoSet
	photoBuf    []PhotoOrnament
	photoBodies []Body

	rotator *Rotator
	dust    *DustField
	camera  *Camera

	elapsed float64

	// Pointer state in screen space. hasPointer is false once the pointer
	// leaves the viewport, which releases the dust.
	pointer    pointerState
	hasPointer bool

	// Input (ebiten polling is opt-in, see EnableInput).
	inputEnabled bool
	touchIDs     []ebiten.TouchID
	injectQueue  []syntheticPointerEvent
	script       *ScriptRunner

	// Events
	sink       EventSink
	evMu       sync.Mutex
	pending    []SceneEvent
	delivering []SceneEvent

	debug      bool
	debugStats debugStats
}

// NewScene validates cfg, generates every population and returns a scene
// in tree mode with all entities at their chaos positions, ready to
// assemble.
func NewScene(cfg Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.logger()
	gen := NewGenerator(cfg.Seed)

	s := &Scene{
		cfg:       cfg,
		log:       logger,
		foliage:   NewPopulation(KindFoliage, gen.Foliage(cfg.Foliage, cfg.Tree), cfg.Foliage.Rate),
		ornaments: NewPopulation(KindOrnament, gen.Ornaments(cfg.Ornaments, cfg.Tree), cfg.Ornaments.Rate),
		star:      NewStar(cfg.Tree, cfg.StarRate),
		photos:    NewPhotoSet(cfg.Photo.Spiral),
		rotator:   NewRotator(cfg.Rotation),
		dust:      NewDustField(cfg.Dust, gen.Jitter(), int64(cfg.Seed)),
		camera:    NewCamera(cfg.Camera, Rect{Width: 1280, Height: 720}),
		pointer:   pointerState{touch: -1},
	}
	s.ctrl = &Controller{
		mode:     ModeTree,
		scene:    s,
		pipeline: NewPipeline(cfg.Photo, cfg.Tree, nil, logger),
		log:      logger,
	}

	logger.Info("scene created",
		"foliage", s.foliage.Len(),
		"ornaments", s.ornaments.Len(),
		"dust", s.dust.Len(),
		"seed", cfg.Seed,
	)
	return s, nil
}

// Controller returns the mode controller.
func (s *Scene) Controller() *Controller {
	return s.ctrl
}

// Mode returns the active mode.
func (s *Scene) Mode() Mode {
	return s.ctrl.mode
}

// Config returns the configuration the scene was built with.
func (s *Scene) Config() Config {
	return s.cfg
}

// Foliage returns the needle population. Read-only for callers.
func (s *Scene) Foliage() *Population {
	return s.foliage
}

// Ornaments returns the bauble population. Read-only for callers.
func (s *Scene) Ornaments() *Population {
	return s.ornaments
}

// Star returns the tree topper. Read-only for callers.
func (s *Scene) Star() *Star {
	return s.star
}

// Photos returns the photos as of the last Update with their live bodies.
// Both slices are reused by the next Update.
func (s *Scene) Photos() ([]PhotoOrnament, []Body) {
	return s.photoBuf, s.photoBodies[:len(s.photoBuf)]
}

// PhotoSet returns the shared photo set.
func (s *Scene) PhotoSet() *PhotoSet {
	return s.photos
}

// Dust returns the ambient dust field.
func (s *Scene) Dust() *DustField {
	return s.dust
}

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Rotator returns the inertial rotation controller.
func (s *Scene) Rotator() *Rotator {
	return s.rotator
}

// RotationAngle returns the current spin of the tree group in radians.
func (s *Scene) RotationAngle() float64 {
	return s.rotator.Angle()
}

// Cursor returns the cursor the rotation controller currently asks for.
func (s *Scene) Cursor() Cursor {
	return s.rotator.State().Cursor
}

// Elapsed returns the seconds simulated so far.
func (s *Scene) Elapsed() float64 {
	return s.elapsed
}

// ToWorld maps a position in the rotating tree group to world space.
func (s *Scene) ToWorld(local Vec3) Vec3 {
	return RotateY(local, s.rotator.Angle())
}

// RotateY rotates v around the Y axis by angle radians.
func RotateY(v Vec3, angle float64) Vec3 {
	sin, cos := math.Sincos(angle)
	return Vec3{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}

// Update advances the whole scene by dt seconds: scripted and real input,
// rotation momentum, camera dolly, every population and the dust field.
// Nothing here blocks.
func (s *Scene) Update(dt float64) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	if dt < 0 {
		dt = 0
	}
	s.elapsed += dt

	if s.script != nil {
		s.script.step(s)
	}
	s.processInput()

	s.rotator.Update(dt)
	s.camera.Update(float32(dt))

	f := Frame{
		DT:      dt,
		Elapsed: s.elapsed,
		Mode:    s.ctrl.mode,
		Camera:  RotateY(s.camera.Position, -s.rotator.Angle()),
	}
	s.foliage.Update(f)
	s.ornaments.Update(f)
	s.star.Update(f)
	s.updatePhotos(f)

	var pointer Vec3
	if s.hasPointer {
		pointer = s.camera.PointerToWorld(s.camera.ScreenToNDC(s.pointer.lastX, s.pointer.lastY))
	}
	s.dust.Update(dt, s.elapsed, pointer, s.hasPointer)

	s.flushEvents()

	if s.debug {
		s.recordFrame(time.Since(t0), dt)
	}
}

// updatePhotos takes this frame's snapshot of the photo set, gives new
// photos a body at their chaos position and steps them all.
func (s *Scene) updatePhotos(f Frame) {
	s.photoBuf = s.photos.Snapshot(s.photoBuf)
	for len(s.photoBodies) < len(s.photoBuf) {
		ph := &s.photoBuf[len(s.photoBodies)]
		s.photoBodies = append(s.photoBodies, Body{Position: ph.Chaos, Scale: ph.Scale})
	}
	UpdatePhotos(s.photoBuf, s.photoBodies, s.cfg.Photo.Rate, f)
}

// modeChanged reacts to a controller mode switch.
func (s *Scene) modeChanged(prev, next Mode) {
	s.camera.DollyTo(s.cfg.Camera.EyeFor(next), s.cfg.Camera.DollySeconds, ease.OutCubic)
	s.post(SceneEvent{Type: EventModeChanged, Mode: next, Previous: prev})
}

// SetViewport resizes the camera viewport, e.g. from ebiten's Layout.
func (s *Scene) SetViewport(r Rect) {
	s.camera.Viewport = r
}

// String summarises the scene for logs.
func (s *Scene) String() string {
	return fmt.Sprintf("scene(mode=%s foliage=%d ornaments=%d photos=%d dust=%d)",
		s.ctrl.mode, s.foliage.Len(), s.ornaments.Len(), s.photos.Len(), s.dust.Len())
}
