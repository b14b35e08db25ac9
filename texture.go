package evergreen

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
)

// ColorSpace tags how texture pixel values are encoded.
type ColorSpace uint8

const (
	ColorSpaceSRGB   ColorSpace = iota // gamma-encoded, as decoded from photos
	ColorSpaceLinear                   // linear light
)

// Texture is a display-ready photo: straight-alpha pixels plus a full mip
// chain. It is exclusively owned by one PhotoOrnament.
type Texture struct {
	// Levels[0] is the full-resolution image; each following level halves
	// both sides down to 1x1.
	Levels     []*image.NRGBA
	ColorSpace ColorSpace

	gpu *ebiten.Image
}

// NewTexture scales src down (never up) so neither side exceeds maxSize,
// keeping its aspect ratio, and builds the mip chain.
func NewTexture(src image.Image, maxSize int) (*Texture, error) {
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyImage
	}
	w, h := FitSize(b.Dx(), b.Dy(), maxSize)
	base := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(base, base.Bounds(), src, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(base, base.Bounds(), src, b, draw.Src, nil)
	}
	return &Texture{
		Levels:     buildMips(base),
		ColorSpace: ColorSpaceSRGB,
	}, nil
}

// FitSize returns w x h scaled by min(max/w, max/h) when either side
// exceeds max; otherwise w x h unchanged. Sides never drop below 1.
func FitSize(w, h, max int) (int, int) {
	if max <= 0 || (w <= max && h <= max) {
		return w, h
	}
	ratio := math.Min(float64(max)/float64(w), float64(max)/float64(h))
	nw := int(math.Round(float64(w) * ratio))
	nh := int(math.Round(float64(h) * ratio))
	return max1(nw), max1(nh)
}

func max1(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

// buildMips halves base repeatedly with a bilinear filter until 1x1.
func buildMips(base *image.NRGBA) []*image.NRGBA {
	levels := []*image.NRGBA{base}
	cur := base
	for cur.Bounds().Dx() > 1 || cur.Bounds().Dy() > 1 {
		w := max1(cur.Bounds().Dx() / 2)
		h := max1(cur.Bounds().Dy() / 2)
		next := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.BiLinear.Scale(next, next.Bounds(), cur, cur.Bounds(), draw.Src, nil)
		levels = append(levels, next)
		cur = next
	}
	return levels
}

// Width returns the full-resolution width.
func (t *Texture) Width() int {
	return t.Levels[0].Bounds().Dx()
}

// Height returns the full-resolution height.
func (t *Texture) Height() int {
	return t.Levels[0].Bounds().Dy()
}

// AspectRatio returns width / height.
func (t *Texture) AspectRatio() float64 {
	return float64(t.Width()) / float64(t.Height())
}

// Mipmapped reports whether the chain reaches 1x1.
func (t *Texture) Mipmapped() bool {
	last := t.Levels[len(t.Levels)-1].Bounds()
	return last.Dx() == 1 && last.Dy() == 1
}

// Level returns the smallest mip level that still covers size pixels on
// its longer side. Renderers drawing small frames use it to avoid
// shimmering.
func (t *Texture) Level(size float64) *image.NRGBA {
	for i := len(t.Levels) - 1; i >= 0; i-- {
		b := t.Levels[i].Bounds()
		if float64(max(b.Dx(), b.Dy())) >= size {
			return t.Levels[i]
		}
	}
	return t.Levels[0]
}

// EbitenImage uploads the full-resolution level on first use and returns
// the cached GPU image. Call only from the render goroutine.
func (t *Texture) EbitenImage() *ebiten.Image {
	if t.gpu == nil {
		t.gpu = ebiten.NewImageFromImage(t.Levels[0])
	}
	return t.gpu
}
