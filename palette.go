package evergreen

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

var paletteHex = [...]string{
	PaletteEmerald:   "#004225",
	PaletteGold:      "#FFD700",
	PaletteSilver:    "#C0C0C0",
	PaletteRuby:      "#800020",
	PaletteChampagne: "#F7E7CE",
}

var paletteColors [len(paletteHex)]Color

func init() {
	for i, h := range paletteHex {
		c, err := ParseHexColor(h)
		if err != nil {
			panic(err)
		}
		paletteColors[i] = c
	}
}

// Color returns the RGBA value of the palette entry.
func (p Palette) Color() Color {
	if int(p) >= len(paletteColors) {
		return ColorWhite
	}
	return paletteColors[p]
}

// String returns the palette entry name.
func (p Palette) String() string {
	switch p {
	case PaletteEmerald:
		return "emerald"
	case PaletteGold:
		return "gold"
	case PaletteSilver:
		return "silver"
	case PaletteRuby:
		return "ruby"
	case PaletteChampagne:
		return "champagne"
	default:
		return "unknown"
	}
}

// ParseHexColor parses "#rrggbb" into an opaque Color.
func ParseHexColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// BlendColors mixes a toward b by t in CIE-L*a*b* space, which keeps gold
// from going muddy when fogged toward the background. Alpha is linear.
func BlendColors(a, b Color, t float64) Color {
	t = clamp01(t)
	ca := colorful.Color{R: a.R, G: a.G, B: a.B}
	cb := colorful.Color{R: b.R, G: b.G, B: b.B}
	m := ca.BlendLab(cb, t).Clamped()
	return Color{R: m.R, G: m.G, B: m.B, A: lerp(a.A, b.A, t)}
}
