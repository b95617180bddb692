package export_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wiless/mosaic"
	"github.com/wiless/mosaic/export"
	"github.com/wiless/vlib"
	"gonum.org/v1/gonum/mat"
)

func testBeamShape() *mosaic.BeamShape {
	image := mat.NewDense(4, 4, nil)
	image.Set(2, 2, 1.0)
	antennas := make([]vlib.Location3D, 3)
	antennas[0].SetXYZ(-30.711, 21.443, 1035)
	antennas[1].SetXYZ(-30.712, 21.444, 1036)
	antennas[2].SetXYZ(-30.713, 21.445, 1037)
	return &mosaic.BeamShape{
		AxisH:            0.2,
		AxisV:            0.1,
		Angle:            20,
		Psf:              mosaic.PointSpreadFunction{Image: image, BoreSight: [2]float64{21.44, -30.71}, Width: 2.0},
		Antennas:         antennas,
		BoreSight:        [2]float64{21.44, -30.71},
		ReferenceAntenna: mosaic.ReferenceAntenna,
		Horizon:          [2]float64{120, 55},
	}
}

func capture(t *testing.T, run func() error) string {
	t.Helper()
	buf := &bytes.Buffer{}
	export.Writer = buf
	defer func() { export.Writer = nil }()
	if err := run(); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestPSFExport(t *testing.T) {
	shape := testBeamShape()
	script := capture(t, func() error { return export.PSF(shape, "", true) })
	for _, name := range []string{"psfdata", "psfrows", "psfcols", "boresight", "width", "axisH", "axisV", "imagesc"} {
		if !strings.Contains(script, name) {
			t.Errorf("script lacks %q", name)
		}
	}
	if !strings.Contains(script, "plot(ex,ey,'r-');") {
		t.Error("shape overlay missing")
	}

	script = capture(t, func() error { return export.PSF(shape, "", false) })
	if strings.Contains(script, "axisH") {
		t.Error("overlay exported without the shapeOverlay flag")
	}
}

func TestPackedBeamExport(t *testing.T) {
	tiling := &mosaic.Tiling{
		Coordinates:  vlib.VectorC{0, complex(0.2, 0.1)},
		BeamShape:    testBeamShape(),
		TilingRadius: 0.5,
		Overlap:      0.5,
	}
	script := capture(t, func() error { return export.PackedBeam(tiling, "") })
	for _, name := range []string{"centers", "widthH", "widthV", "radius", "axis equal"} {
		if !strings.Contains(script, name) {
			t.Errorf("script lacks %q", name)
		}
	}
}

func TestPackedBeamExportRejectsBadOverlap(t *testing.T) {
	tiling := &mosaic.Tiling{
		Coordinates: vlib.VectorC{0},
		BeamShape:   testBeamShape(),
		Overlap:     1.5,
	}
	export.Writer = &bytes.Buffer{}
	defer func() { export.Writer = nil }()
	if err := export.PackedBeam(tiling, ""); err == nil {
		t.Fatal("overlap outside (0, 1) accepted")
	}
}

func TestOverlapMapExport(t *testing.T) {
	overlap := &mosaic.Overlap{Metrics: mat.NewDense(3, 3, nil), Mode: mosaic.Counter}
	script := capture(t, func() error { return export.OverlapMap(overlap, "") })
	for _, name := range []string{"overlapdata", "overlaprows", "overlapcols", "counter", "colorbar"} {
		if !strings.Contains(script, name) {
			t.Errorf("script lacks %q", name)
		}
	}
}

func TestInterferometryExport(t *testing.T) {
	script := capture(t, func() error { return export.Interferometry(testBeamShape(), "") })
	for _, name := range []string{"antlat", "antlon", "antalt", "reference", "horizon"} {
		if !strings.Contains(script, name) {
			t.Errorf("script lacks %q", name)
		}
	}
}
