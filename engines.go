package mosaic

import (
	"github.com/wiless/mosaic/coord"
	"github.com/wiless/vlib"
	"gonum.org/v1/gonum/mat"
)

// PointSpreadFunction is the synthesized beam response raster produced by an
// observation engine. BoreSight holds the pointing RA and Dec in degree and
// Width the angular extent of the raster in degree.
type PointSpreadFunction struct {
	Image     *mat.Dense
	BoreSight [2]float64
	Width     float64
}

// ObservationEngine computes the synthesized beam of an array for one
// bore sight and observation time. An engine holds the bore sight and time
// as internal state, so a SetBoreSight/SetObserveTime/CreateContour call
// sequence must not be interleaved with unrelated mutations; treat every
// engine instance as exclusive to one computation.
type ObservationEngine interface {
	SetBoreSight(raDeg, decDeg float64)
	SetObserveTime(epoch float64)
	CreateContour(antennas []vlib.Location3D) error
	GetBeamAxis() (axisH, axisV, angle float64)
	// GetHorizontal reports the bore-sight direction as azimuth and
	// elevation in radians.
	GetHorizontal() (az, el float64)
	GetPointSpreadFunction() PointSpreadFunction
}

// ObservationEngineFactory creates an engine for an array reference point
// and the observing wavelengths in meters.
type ObservationEngineFactory func(reference vlib.Location3D, waveLengths vlib.VectorF) ObservationEngine

// PackingEngine searches concrete beam-center arrangements for a given
// ellipse half-width and orientation.
type PackingEngine interface {
	// Compact returns the most compact arrangement of beamNum ellipses
	// together with the circumscribing radius of the pattern. Precision is
	// the angular step of the packing search in degree; coarser precision
	// trades packing optimality for speed.
	Compact(beamNum int, widthH, widthV, angle, precision float64) (coordinates vlib.VectorC, radius float64, err error)
	// Grid returns all centers of a regular elliptical grid that fit
	// inside the given radius. The number of centers is an output of the
	// packing, not a parameter.
	Grid(radius, widthH, widthV, angle float64) (coordinates vlib.VectorC, err error)
}

// DelayRate is one delay polynomial sample: a delay in seconds and its rate
// in seconds per second.
type DelayRate struct {
	Delay float64
	Rate  float64
}

// AntennaCorrection carries the delay-correction samples of one antenna,
// one slice of polynomial samples per polarization.
type AntennaCorrection struct {
	Polarizations [][]DelayRate
}

// DelayOracle computes delay corrections for one target over a time window.
// The returned slice is positionally aligned with the antennas argument;
// this ordering is the contract consumed by any beamformer applying the
// delays to per-antenna signal paths.
type DelayOracle interface {
	Corrections(antennas []vlib.Location3D, reference vlib.Location3D, freqHz float64, target coord.Target, t0, t1 float64) ([]AntennaCorrection, error)
}
