package evergreen

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyImage is returned for images with a zero-sized side.
var ErrEmptyImage = errors.New("image has no pixels")

// Blob is one raw uploaded file.
type Blob struct {
	Name string
	Data []byte
}

// DecodeError reports a file that was skipped from a batch.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode photo %q: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// PhotoOrnament is one user photo in its frame, with a placement for every
// mode. Spiral is owned by the PhotoSet and rewritten whenever the set grows.
type PhotoOrnament struct {
	ID          string
	Name        string
	Texture     *Texture
	AspectRatio float64
	Chaos       Vec3
	Tree        Vec3
	Spiral      Vec3
	Scale       float64
	// Phase offsets the idle sway.
	Phase float64
}

// Destination returns the position this photo animates toward in mode m.
func (p *PhotoOrnament) Destination(m Mode) Vec3 {
	switch m {
	case ModeChaos:
		return p.Chaos
	case ModeGallery:
		return p.Spiral
	default:
		return p.Tree
	}
}

// FrameSize returns the photo panel width and height in world units.
func (p *PhotoOrnament) FrameSize() (w, h float64) {
	if p.AspectRatio <= 0 {
		return p.Scale, p.Scale
	}
	return p.Scale, p.Scale / p.AspectRatio
}

// Pipeline turns raw uploads into photo ornaments.
type Pipeline struct {
	cfg  PhotoConfig
	tree TreeConfig
	rng  *rand.Rand
	log  *slog.Logger
}

// NewPipeline creates a pipeline. rng supplies the cosmetic placement
// jitter and must not be shared with another goroutine.
func NewPipeline(cfg PhotoConfig, tree TreeConfig, rng *rand.Rand, logger *slog.Logger) *Pipeline {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, tree: tree, rng: rng, log: logger}
}

// Ingest decodes blobs concurrently and returns the photos that decoded,
// in input order, plus one *DecodeError per skipped file. A failing file
// never stops the rest of the batch. Spiral positions are left zero; the
// PhotoSet assigns them on Append.
//
// Ingest blocks until the whole batch is decoded; callers on the frame
// loop go through Controller.SubmitPhotos instead.
func (p *Pipeline) Ingest(blobs []Blob) ([]PhotoOrnament, []error) {
	if len(blobs) == 0 {
		return nil, nil
	}
	textures := make([]*Texture, len(blobs))
	errs := make([]error, len(blobs))

	var g errgroup.Group
	if p.cfg.DecodeWorkers > 0 {
		g.SetLimit(p.cfg.DecodeWorkers)
	}
	for i := range blobs {
		g.Go(func() error {
			textures[i], errs[i] = p.decode(blobs[i])
			return nil
		})
	}
	_ = g.Wait()

	var photos []PhotoOrnament
	var failed []error
	for i, b := range blobs {
		if errs[i] != nil {
			derr := &DecodeError{Name: b.Name, Err: errs[i]}
			p.log.Warn("photo skipped", "name", b.Name, "error", errs[i])
			failed = append(failed, derr)
			continue
		}
		photos = append(photos, p.place(b.Name, textures[i]))
	}
	return photos, failed
}

func (p *Pipeline) decode(b Blob) (*Texture, error) {
	if len(b.Data) == 0 {
		return nil, ErrEmptyImage
	}
	img, format, err := image.Decode(bytes.NewReader(b.Data))
	if err != nil {
		return nil, err
	}
	tex, err := NewTexture(img, p.cfg.MaxTextureSize)
	if err != nil {
		return nil, err
	}
	src := img.Bounds()
	p.log.Debug("photo decoded",
		"name", b.Name,
		"format", format,
		"size", humanize.Bytes(uint64(len(b.Data))),
		"source", fmt.Sprintf("%dx%d", src.Dx(), src.Dy()),
		"texture", fmt.Sprintf("%dx%d", tex.Width(), tex.Height()),
		"mips", len(tex.Levels),
	)
	return tex, nil
}

// place assigns the chaos and tree placements, scale and phase.
func (p *Pipeline) place(name string, tex *Texture) PhotoOrnament {
	half := p.cfg.ChaosHalfExtent
	chaos := Vec3{
		X: (p.rng.Float64()*2 - 1) * half,
		Y: (p.rng.Float64()*2 - 1) * half,
		Z: (p.rng.Float64()*2 - 1) * half,
	}

	y := p.cfg.TreeBand.Random(p.rng)*p.tree.Height - p.tree.Height/2
	r := ConeRadius(p.tree, y) + p.cfg.TreeOffset
	a := p.rng.Float64() * 2 * math.Pi
	tree := Vec3{X: math.Cos(a) * r, Y: y, Z: math.Sin(a) * r}

	scale := p.cfg.ScaleBase * (1 + (p.rng.Float64()*2-1)*p.cfg.ScaleJitter)

	return PhotoOrnament{
		ID:          uuid.NewString(),
		Name:        name,
		Texture:     tex,
		AspectRatio: tex.AspectRatio(),
		Chaos:       chaos,
		Tree:        tree,
		Scale:       scale,
		Phase:       p.rng.Float64() * 2 * math.Pi,
	}
}

// SpiralPosition returns the gallery position of the photo at rank out of
// total. Height and radius are linear in rank/(total-1), so the first photo
// sits at the bottom inner edge and the last at the top outer edge; the
// angle advances one AngularStep per rank.
func SpiralPosition(rank, total int, c SpiralConfig) Vec3 {
	progress := 0.0
	if total > 1 {
		progress = float64(rank) / float64(total-1)
	}
	y := lerp(c.Bottom, c.Top, progress)
	r := lerp(c.InnerRadius, c.OuterRadius, progress)
	a := float64(rank) * c.AngularStep()
	return Vec3{X: math.Cos(a) * r, Y: y, Z: math.Sin(a) * r}
}

// RelayoutSpiral rewrites Spiral for every photo by its rank in photos.
// O(len(photos)); fine for the tens of photos a session collects.
func RelayoutSpiral(photos []PhotoOrnament, c SpiralConfig) {
	for i := range photos {
		photos[i].Spiral = SpiralPosition(i, len(photos), c)
	}
}
