package evergreen

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// TreeConfig sizes the cone every tree-bound layout is built on.
type TreeConfig struct {
	// Height is the full tree height; the cone spans [-Height/2, Height/2].
	Height float64
	// Radius is the cone radius at the base.
	Radius float64
}

// PopulationConfig controls one generated population.
type PopulationConfig struct {
	// Count is the number of units. Zero is allowed and yields an empty population.
	Count int
	// Spread is the radius of the chaos sphere.
	Spread float64
	// Rate is the smoothing rate per second.
	Rate float64
	// Scale is the per-unit scale distribution.
	Scale Range
}

// RotationConfig controls the inertial rotation controller.
type RotationConfig struct {
	// Friction is the per-reference-frame velocity decay factor, in (0, 1).
	Friction float64
	// Sensitivity converts horizontal pointer pixels to radians.
	Sensitivity float64
	// IdleSpin is the velocity floor kept once momentum has decayed.
	IdleSpin float64
}

// DustConfig controls the ambient gold dust field.
type DustConfig struct {
	Count int
	// HalfExtent bounds the spawn cube and the fresh x/z after a wrap.
	HalfExtent float64
	// FallSpeed is the per-reference-frame downward drift.
	FallSpeed Range
	// Wobble is the amplitude of the lateral sine drift.
	Wobble float64
	// Floor is the height below which a particle wraps to Ceiling.
	Floor   float64
	Ceiling float64
	// AttractionRadius is the pointer influence radius.
	AttractionRadius float64
	// AttractionStrength is the pull at zero distance, falling linearly to 0 at the radius.
	AttractionStrength float64
	// Turbulence scales an OpenSimplex lateral gust. Zero disables it.
	Turbulence float64
}

// SpiralConfig shapes the gallery spiral.
type SpiralConfig struct {
	Bottom, Top float64
	InnerRadius float64
	OuterRadius float64
	// TurnsDivisor sets the angular step to 2π/TurnsDivisor per rank.
	TurnsDivisor float64
}

// AngularStep returns the angle between consecutive ranks.
func (c SpiralConfig) AngularStep() float64 {
	return 2 * math.Pi / c.TurnsDivisor
}

// PhotoConfig controls the photo ornament pipeline.
type PhotoConfig struct {
	// MaxTextureSize caps both sides after decode, preserving aspect ratio.
	MaxTextureSize int
	// ChaosHalfExtent bounds the chaos cube.
	ChaosHalfExtent float64
	// TreeBand is the fraction of tree height photos hang in.
	TreeBand Range
	// TreeOffset pushes photos outside the cone surface.
	TreeOffset float64
	ScaleBase  float64
	// ScaleJitter is the relative jitter around ScaleBase (0.1 = ±10%).
	ScaleJitter float64
	Rate        float64
	Spiral      SpiralConfig
	// DecodeWorkers bounds concurrent decodes per batch.
	DecodeWorkers int
}

// CameraConfig holds the per-mode camera presets.
type CameraConfig struct {
	// FOV is the vertical field of view in degrees.
	FOV    float64
	Target Vec3
	// Eye positions per mode.
	TreeEye    Vec3
	ChaosEye   Vec3
	GalleryEye Vec3
	// DollySeconds is the tween duration between presets.
	DollySeconds float32
}

// Config is the full scene configuration. Start from DefaultConfig.
type Config struct {
	// Seed drives the deterministic layout generator.
	Seed uint64

	Tree      TreeConfig
	Foliage   PopulationConfig
	Ornaments PopulationConfig
	StarRate  float64
	Rotation  RotationConfig
	Dust      DustConfig
	Photo     PhotoConfig
	Camera    CameraConfig

	// Logger receives structured logs. Nil uses slog.Default().
	Logger *slog.Logger `json:"-"`
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		Seed: 2024,
		Tree: TreeConfig{Height: 14, Radius: 5},
		Foliage: PopulationConfig{
			Count:  2500,
			Spread: 25,
			Rate:   2.5,
			Scale:  Range{0.1, 0.4},
		},
		Ornaments: PopulationConfig{
			Count:  400,
			Spread: 30,
			Rate:   2.0,
			Scale:  Range{0.2, 0.6},
		},
		StarRate: 1.25,
		Rotation: RotationConfig{
			Friction:    0.96,
			Sensitivity: 0.005,
			IdleSpin:    0.001,
		},
		Dust: DustConfig{
			Count:              1500,
			HalfExtent:         15,
			FallSpeed:          Range{0.005, 0.025},
			Wobble:             0.01,
			Floor:              -15,
			Ceiling:            15,
			AttractionRadius:   4,
			AttractionStrength: 0.15,
		},
		Photo: PhotoConfig{
			MaxTextureSize:  1024,
			ChaosHalfExtent: 20,
			TreeBand:        Range{0.1, 0.8},
			TreeOffset:      0.5,
			ScaleBase:       3.5,
			ScaleJitter:     0.1,
			Rate:            2.5,
			Spiral: SpiralConfig{
				Bottom:       -6,
				Top:          8,
				InnerRadius:  7,
				OuterRadius:  10,
				TurnsDivisor: 5,
			},
			DecodeWorkers: 4,
		},
		Camera: CameraConfig{
			FOV:          45,
			Target:       Vec3{X: 0, Y: 1, Z: 0},
			TreeEye:      Vec3{X: 0, Y: 4, Z: 22},
			ChaosEye:     Vec3{X: 0, Y: 4, Z: 28},
			GalleryEye:   Vec3{X: 0, Y: 5, Z: 30},
			DollySeconds: 1.5,
		},
	}
}

// LoadConfig decodes JSON over DefaultConfig, so omitted fields keep their
// defaults, and validates the result.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.Tree.Height <= 0 || c.Tree.Radius <= 0:
		return fmt.Errorf("%w: tree height and radius must be positive", ErrInvalidConfig)
	case c.Foliage.Count < 0 || c.Ornaments.Count < 0 || c.Dust.Count < 0:
		return fmt.Errorf("%w: population counts must not be negative", ErrInvalidConfig)
	case c.Foliage.Rate <= 0 || c.Ornaments.Rate <= 0 || c.StarRate <= 0 || c.Photo.Rate <= 0:
		return fmt.Errorf("%w: smoothing rates must be positive", ErrInvalidConfig)
	case c.Rotation.Friction <= 0 || c.Rotation.Friction >= 1:
		return fmt.Errorf("%w: friction %v not in (0, 1)", ErrInvalidConfig, c.Rotation.Friction)
	case c.Rotation.IdleSpin <= 0:
		return fmt.Errorf("%w: idle spin must be positive", ErrInvalidConfig)
	case c.Dust.Floor >= c.Dust.Ceiling:
		return fmt.Errorf("%w: dust floor %v must be below ceiling %v", ErrInvalidConfig, c.Dust.Floor, c.Dust.Ceiling)
	case c.Photo.MaxTextureSize <= 0:
		return fmt.Errorf("%w: max texture size must be positive", ErrInvalidConfig)
	case c.Photo.Spiral.TurnsDivisor <= 0:
		return fmt.Errorf("%w: spiral turns divisor must be positive", ErrInvalidConfig)
	case c.Photo.TreeBand.Min < 0 || c.Photo.TreeBand.Max > 1 || c.Photo.TreeBand.Min > c.Photo.TreeBand.Max:
		return fmt.Errorf("%w: photo tree band must lie within [0, 1]", ErrInvalidConfig)
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
