package evergreen

import (
	"math"
	"testing"
)

const layoutEps = 1e-9

func testTree() TreeConfig {
	return TreeConfig{Height: 14, Radius: 5}
}

func horizontal(p Vec3) float64 {
	return math.Hypot(p.X, p.Z)
}

func TestConeTargetEnds(t *testing.T) {
	tree := testTree()
	p := ConeTarget(0, 100, tree, 0.5, 0)
	if p.Y != -7 {
		t.Errorf("first Y = %f, want -7", p.Y)
	}
	if math.Abs(horizontal(p)-5) > layoutEps {
		t.Errorf("first radius = %f, want 5", horizontal(p))
	}
	last := ConeTarget(99, 100, tree, 0.5, 0)
	if last.Y >= 7 || last.Y < 6.8 {
		t.Errorf("last Y = %f, want just under 7", last.Y)
	}
	if horizontal(last) > 0.06 {
		t.Errorf("last radius = %f, want near apex", horizontal(last))
	}
}

func TestConeTargetEmpty(t *testing.T) {
	if p := ConeTarget(0, 0, testTree(), 0.5, 0); p != (Vec3{}) {
		t.Errorf("ConeTarget with n=0 = %v, want zero", p)
	}
}

func TestConeRadius(t *testing.T) {
	tree := testTree()
	tests := []struct {
		y, want float64
	}{
		{-7, 5},
		{0, 2.5},
		{7, 0},
		{-20, 5},
		{20, 0},
	}
	for _, tt := range tests {
		if got := ConeRadius(tree, tt.y); math.Abs(got-tt.want) > layoutEps {
			t.Errorf("ConeRadius(%f) = %f, want %f", tt.y, got, tt.want)
		}
	}
}

func TestSphereChaosInsideRadius(t *testing.T) {
	const n = 500
	for i := 0; i < n; i++ {
		u := float64(i) / n
		p := SphereChaos(i, n, 25, u)
		if p.Norm() > 25+layoutEps {
			t.Fatalf("SphereChaos(%d) norm = %f, want <= 25", i, p.Norm())
		}
	}
	if p := SphereChaos(3, 10, 25, 1); math.Abs(p.Norm()-25) > 1e-6 {
		t.Errorf("u=1 norm = %f, want 25", p.Norm())
	}
}

func TestFoliageDistribution(t *testing.T) {
	tree := testTree()
	cfg := DefaultConfig().Foliage
	units := NewGenerator(1).Foliage(cfg, tree)
	if len(units) != cfg.Count {
		t.Fatalf("len = %d, want %d", len(units), cfg.Count)
	}
	gold := 0
	for i, u := range units {
		if u.Target.Y < -7 || u.Target.Y > 7 {
			t.Fatalf("unit %d Y = %f outside the tree", i, u.Target.Y)
		}
		if horizontal(u.Target) > ConeRadius(tree, u.Target.Y)+1e-6 {
			t.Fatalf("unit %d radius %f outside cone %f", i, horizontal(u.Target), ConeRadius(tree, u.Target.Y))
		}
		if u.Chaos.Norm() > cfg.Spread+layoutEps {
			t.Fatalf("unit %d chaos norm = %f", i, u.Chaos.Norm())
		}
		if !cfg.Scale.Contains(u.Scale) {
			t.Fatalf("unit %d scale = %f outside %v", i, u.Scale, cfg.Scale)
		}
		switch u.Color {
		case PaletteGold:
			gold++
		case PaletteEmerald:
		default:
			t.Fatalf("unit %d color = %s", i, u.Color)
		}
	}
	frac := float64(gold) / float64(len(units))
	if frac < 0.15 || frac > 0.25 {
		t.Errorf("gold fraction = %f, want about 0.2", frac)
	}
}

func TestOrnamentsOutsideFoliage(t *testing.T) {
	tree := testTree()
	cfg := DefaultConfig().Ornaments
	units := NewGenerator(1).Ornaments(cfg, tree)
	if len(units) != cfg.Count {
		t.Fatalf("len = %d, want %d", len(units), cfg.Count)
	}
	for i, u := range units {
		want := ConeRadius(tree, u.Target.Y) + ornamentOffset
		if math.Abs(horizontal(u.Target)-want) > 1e-6 {
			t.Fatalf("unit %d radius = %f, want %f", i, horizontal(u.Target), want)
		}
		if u.Color != PaletteRuby && u.Color != PaletteGold && u.Color != PaletteSilver {
			t.Fatalf("unit %d color = %s", i, u.Color)
		}
	}
}

func TestOrnamentTargetsRepeatForSeed(t *testing.T) {
	tree := testTree()
	cfg := DefaultConfig().Ornaments
	a := NewGenerator(42).Ornaments(cfg, tree)
	b := NewGenerator(42).Ornaments(cfg, tree)
	for i := range a {
		if a[i].Target != b[i].Target {
			t.Fatalf("unit %d target differs: %v vs %v", i, a[i].Target, b[i].Target)
		}
	}
}

func TestEmptyPopulations(t *testing.T) {
	g := NewGenerator(1)
	cfg := PopulationConfig{Count: 0, Spread: 25, Rate: 2}
	if units := g.Foliage(cfg, testTree()); len(units) != 0 {
		t.Errorf("foliage len = %d, want 0", len(units))
	}
	if units := g.Ornaments(cfg, testTree()); len(units) != 0 {
		t.Errorf("ornament len = %d, want 0", len(units))
	}
}

func TestUnitDestination(t *testing.T) {
	u := Unit{Chaos: Vec3{X: 1}, Target: Vec3{Y: 2}}
	if got := u.Destination(ModeTree); got != u.Target {
		t.Errorf("tree = %v", got)
	}
	if got := u.Destination(ModeGallery); got != u.Target {
		t.Errorf("gallery = %v, want tree target", got)
	}
	if got := u.Destination(ModeChaos); got != u.Chaos {
		t.Errorf("chaos = %v", got)
	}
}
