package mosaic_test

import (
	"math"
	"testing"

	"github.com/wiless/mosaic"
	"github.com/wiless/vlib"
	"gonum.org/v1/gonum/mat"
)

// fakeObservation is a canned observation engine recording the call
// sequence.
type fakeObservation struct {
	axisH, axisV, angle float64
	az, el              float64

	boreSight [2]float64
	epoch     float64
	contoured bool
}

func (f *fakeObservation) SetBoreSight(ra, dec float64) { f.boreSight = [2]float64{ra, dec} }
func (f *fakeObservation) SetObserveTime(epoch float64) { f.epoch = epoch }
func (f *fakeObservation) CreateContour(antennas []vlib.Location3D) error {
	f.contoured = true
	return nil
}
func (f *fakeObservation) GetBeamAxis() (float64, float64, float64) {
	return f.axisH, f.axisV, f.angle
}
func (f *fakeObservation) GetHorizontal() (float64, float64) { return f.az, f.el }
func (f *fakeObservation) GetPointSpreadFunction() mosaic.PointSpreadFunction {
	return mosaic.PointSpreadFunction{Image: mat.NewDense(2, 2, nil), Width: 1}
}

func fakeFactory(engine *fakeObservation) mosaic.ObservationEngineFactory {
	return func(reference vlib.Location3D, waveLengths vlib.VectorF) mosaic.ObservationEngine {
		return engine
	}
}

func antennaList(n int) [][3]float64 {
	antennas := make([][3]float64, n)
	for i := range antennas {
		antennas[i] = [3]float64{-30.71 + float64(i)*0.001, 21.44, 1035}
	}
	return antennas
}

func TestGetBeamShapeTooFewAntennas(t *testing.T) {
	engine := &fakeObservation{}
	sim, err := mosaic.NewPsfSim(fakeFactory(engine), antennaList(2), vlib.VectorF{1.4e9})
	if err != nil {
		t.Fatal(err)
	}
	_, err = sim.GetBeamShape([2]float64{21, -30}, 1547644800.0)
	if err == nil {
		t.Fatal("expected an error for 2 antennas")
	}
	insufficient, ok := err.(*mosaic.InsufficientAntennasError)
	if !ok {
		t.Fatalf("expected InsufficientAntennasError, got %T: %v", err, err)
	}
	if insufficient.Count != 2 {
		t.Errorf("reported count = %d, want 2", insufficient.Count)
	}
	if engine.contoured {
		t.Error("engine was driven despite the failed validation")
	}
}

func TestGetBeamShapeThreeAntennas(t *testing.T) {
	engine := &fakeObservation{axisH: 0.2, axisV: 0.1, angle: 30, az: 1.0, el: 0.5}
	sim, err := mosaic.NewPsfSim(fakeFactory(engine), antennaList(3), vlib.VectorF{1.4e9})
	if err != nil {
		t.Fatal(err)
	}
	beamShape, err := sim.GetBeamShape([2]float64{21.44, -30.71}, 1547644800.0)
	if err != nil {
		t.Fatal(err)
	}
	if !engine.contoured {
		t.Fatal("engine contour was never requested")
	}
	if engine.boreSight != [2]float64{21.44, -30.71} {
		t.Errorf("engine bore sight = %v", engine.boreSight)
	}
	if engine.epoch != 1547644800.0 {
		t.Errorf("engine epoch = %v", engine.epoch)
	}
	if !(beamShape.AxisH >= beamShape.AxisV && beamShape.AxisV >= 0) {
		t.Errorf("axis invariant violated: %v, %v", beamShape.AxisH, beamShape.AxisV)
	}
	wantAz := 1.0 * 180.0 / math.Pi
	if math.Abs(beamShape.Horizon[0]-wantAz) > 1e-12 {
		t.Errorf("horizon azimuth = %v deg, want %v", beamShape.Horizon[0], wantAz)
	}
}

func TestWidthAtOverlapRejectsClosedInterval(t *testing.T) {
	beamShape := &mosaic.BeamShape{AxisH: 0.2, AxisV: 0.1}
	for _, overlap := range []float64{0, 1, -0.3, 1.5} {
		_, _, err := beamShape.WidthAtOverlap(overlap)
		if _, ok := err.(*mosaic.InvalidOverlapError); !ok {
			t.Errorf("overlap %v: expected InvalidOverlapError, got %v", overlap, err)
		}
	}
}

func TestWidthAtOverlapMonotonic(t *testing.T) {
	beamShape := &mosaic.BeamShape{AxisH: 0.2, AxisV: 0.1}
	lastH, lastV := math.Inf(1), math.Inf(1)
	for _, overlap := range []float64{0.05, 0.2, 0.5, 0.8, 0.95} {
		widthH, widthV, err := beamShape.WidthAtOverlap(overlap)
		if err != nil {
			t.Fatal(err)
		}
		if widthH <= 0 || widthV <= 0 {
			t.Errorf("overlap %v: non-positive widths %v, %v", overlap, widthH, widthV)
		}
		if widthH >= lastH || widthV >= lastV {
			t.Errorf("overlap %v: widths not decreasing", overlap)
		}
		lastH, lastV = widthH, widthV
	}
}

func TestWidthAtOverlapIdempotent(t *testing.T) {
	beamShape := &mosaic.BeamShape{AxisH: 0.2, AxisV: 0.1}
	h1, v1, err := beamShape.WidthAtOverlap(0.5)
	if err != nil {
		t.Fatal(err)
	}
	h2, v2, err := beamShape.WidthAtOverlap(0.5)
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 || v1 != v2 {
		t.Errorf("repeated calls differ: (%v,%v) vs (%v,%v)", h1, v1, h2, v2)
	}
}

func TestWidthAtOverlapHalfMaximum(t *testing.T) {
	// at overlap 0.5 the half width equals the semi axis, since the axes
	// are understood as full width at half maximum
	beamShape := &mosaic.BeamShape{AxisH: 0.2, AxisV: 0.1}
	widthH, widthV, err := beamShape.WidthAtOverlap(0.5)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(widthH-0.2) > 1e-12 || math.Abs(widthV-0.1) > 1e-12 {
		t.Errorf("widths at half maximum = %v, %v, want the axes", widthH, widthV)
	}
}
