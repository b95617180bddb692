package tile_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/wiless/mosaic/tile"
)

func TestCompactReturnsExactCount(t *testing.T) {
	p := tile.NewPacker()
	for _, n := range []int{1, 2, 7, 19, 37, 400} {
		coordinates, radius, err := p.Compact(n, 0.1, 0.1, 0, tile.DefaultPrecision)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if coordinates.Size() != n {
			t.Errorf("n=%d: packed %d beams", n, coordinates.Size())
		}
		if radius <= 0 {
			t.Errorf("n=%d: radius %v", n, radius)
		}
		for i, c := range coordinates {
			if cmplx.Abs(c) > radius {
				t.Errorf("n=%d: beam %d at %v outside radius %v", n, i, c, radius)
			}
		}
	}
}

func TestCompactCenterFirst(t *testing.T) {
	coordinates, _, err := tile.NewPacker().Compact(7, 0.1, 0.05, 30, 1)
	if err != nil {
		t.Fatal(err)
	}
	if cmplx.Abs(coordinates[0]) > 1e-12 {
		t.Errorf("first beam at %v, want the pattern center", coordinates[0])
	}
}

func TestCompactCircularSpacing(t *testing.T) {
	// circular beams of half-width w sit two radii apart on the lattice
	const w = 0.1
	coordinates, _, err := tile.NewPacker().Compact(7, w, w, 0, tile.DefaultPrecision)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < coordinates.Size(); i++ {
		d := cmplx.Abs(coordinates[i] - coordinates[0])
		if math.Abs(d-2*w) > 1e-9 {
			t.Errorf("beam %d at distance %v from center, want %v", i, d, 2*w)
		}
	}
}

func TestCompactShrinksWithWidth(t *testing.T) {
	p := tile.NewPacker()
	_, wide, err := p.Compact(19, 0.2, 0.1, 0, 5)
	if err != nil {
		t.Fatal(err)
	}
	_, narrow, err := p.Compact(19, 0.1, 0.05, 0, 5)
	if err != nil {
		t.Fatal(err)
	}
	if narrow >= wide {
		t.Errorf("radius %v for halved widths, want less than %v", narrow, wide)
	}
}

func TestCompactValidation(t *testing.T) {
	p := tile.NewPacker()
	if _, _, err := p.Compact(0, 0.1, 0.1, 0, 10); err == nil {
		t.Error("zero beams accepted")
	}
	if _, _, err := p.Compact(5, -0.1, 0.1, 0, 10); err == nil {
		t.Error("negative width accepted")
	}
}

func TestGridFitsRadius(t *testing.T) {
	coordinates, err := tile.NewPacker().Grid(1.0, 0.1, 0.05, 20)
	if err != nil {
		t.Fatal(err)
	}
	if coordinates.Size() < 7 {
		t.Fatalf("only %d beams inside a radius ten widths across", coordinates.Size())
	}
	for i, c := range coordinates {
		if cmplx.Abs(c) > 1.0 {
			t.Errorf("beam %d at %v outside the radius", i, c)
		}
	}
}

func TestGridKeepsOutermostRing(t *testing.T) {
	// a pattern ~50 widths across: the outermost fitting ring lies beyond
	// a naive radius/(2*width) ring estimate
	const w = 0.02
	coordinates, err := tile.NewPacker().Grid(1.0, w, w, 0)
	if err != nil {
		t.Fatal(err)
	}
	// mid-edge site of ring 28, |c| = sqrt(3)*28*w = 0.9699, inside the radius
	want := complex(14*math.Sqrt(3)*w, 42*w)
	found := false
	for _, c := range coordinates {
		if cmplx.Abs(c-want) < 1e-6 {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("boundary site %v missing from the %d returned sites", want, coordinates.Size())
	}
	// hexagonal density over the disc: pi*R^2/(2*sqrt(3)*w^2) ~ 2267 sites
	if n := coordinates.Size(); n < 2200 {
		t.Errorf("%d sites inside the radius, boundary rings dropped", n)
	}
}

func TestGridDensityScalesWithWidth(t *testing.T) {
	p := tile.NewPacker()
	coarse, err := p.Grid(1.0, 0.2, 0.2, 0)
	if err != nil {
		t.Fatal(err)
	}
	fine, err := p.Grid(1.0, 0.1, 0.1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if fine.Size() <= coarse.Size() {
		t.Errorf("%d beams at half width, want more than %d", fine.Size(), coarse.Size())
	}
}

func TestGridValidation(t *testing.T) {
	if _, err := tile.NewPacker().Grid(0, 0.1, 0.1, 0); err == nil {
		t.Error("zero radius accepted")
	}
	if _, err := tile.NewPacker().Grid(1.0, 0.1, 0, 0); err == nil {
		t.Error("zero width accepted")
	}
}
