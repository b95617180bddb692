// Package mosaic models the synthesized beam of a phased antenna array and
// derives multi-beam tiling patterns, overlap statistics and per-antenna
// steering delays from it. The aperture synthesis, the packing search and
// the delay-correction computation are consumed through engine interfaces;
// see the observation, tile and correction packages for reference
// implementations.
package mosaic

import (
	"fmt"
	"math"

	"github.com/wiless/mosaic/coord"
	"github.com/wiless/vlib"
)

// SpeedOfLight in m/s.
const SpeedOfLight = 299792458.0

// fwhmFactor relates the full width at half maximum of a Gaussian to one
// standard deviation, 2*sqrt(2*ln(2)).
const fwhmFactor = 2.3548200450309493

// ReferenceAntenna is the default array reference position, latitude(deg),
// longitude(deg), altitude(m).
var ReferenceAntenna = vlib.Location3D{X: -30.71106, Y: 21.44389, Z: 1035}

// PsfSim drives an observation engine to model the beam shape of an array.
type PsfSim struct {
	observation ObservationEngine
	antennas    []vlib.Location3D
	reference   vlib.Location3D
}

// NewPsfSim prepares a beam-shape simulation for an antenna list and the
// central observing frequencies in Hz. Antennas are accepted in any form
// coord.ResolveAntennas recognizes; wavelengths are derived from the
// frequencies and handed to the engine factory together with the array
// reference position.
func NewPsfSim(factory ObservationEngineFactory, antennas interface{}, frequencies vlib.VectorF) (*PsfSim, error) {
	ants, err := coord.ResolveAntennas(antennas)
	if err != nil {
		return nil, err
	}
	waveLengths := vlib.NewVectorF(frequencies.Size())
	for i, f := range frequencies {
		waveLengths[i] = SpeedOfLight / f
	}
	return &PsfSim{
		observation: factory(ReferenceAntenna, waveLengths),
		antennas:    ants,
		reference:   ReferenceAntenna,
	}, nil
}

// Antennas returns the antenna geometry of the simulation.
func (s *PsfSim) Antennas() []vlib.Location3D {
	return s.antennas
}

// GetBeamShape computes the beam shape for a bore sight and an observation
// time, assuming the main lobe is roughly an ellipse. The source is accepted
// as a coordinate literal or an ephemeris handle, the time as epoch seconds
// or a time.Time.
func (s *PsfSim) GetBeamShape(source, observeTime interface{}) (*BeamShape, error) {
	if len(s.antennas) < 3 {
		return nil, &InsufficientAntennasError{Count: len(s.antennas)}
	}
	boreSight, err := coord.ResolveTarget(source)
	if err != nil {
		return nil, err
	}
	epoch, err := coord.ResolveTime(observeTime)
	if err != nil {
		return nil, err
	}

	s.observation.SetBoreSight(boreSight.RA, boreSight.Dec)
	s.observation.SetObserveTime(epoch)
	if err := s.observation.CreateContour(s.antennas); err != nil {
		return nil, fmt.Errorf("mosaic: contour computation: %w", err)
	}

	axisH, axisV, angle := s.observation.GetBeamAxis()
	az, el := s.observation.GetHorizontal()

	antennas := make([]vlib.Location3D, len(s.antennas))
	copy(antennas, s.antennas)

	return &BeamShape{
		AxisH:            axisH,
		AxisV:            axisV,
		Angle:            angle,
		Psf:              s.observation.GetPointSpreadFunction(),
		Antennas:         antennas,
		BoreSight:        [2]float64{boreSight.RA, boreSight.Dec},
		ReferenceAntenna: s.reference,
		Horizon:          [2]float64{az * 180.0 / math.Pi, el * 180.0 / math.Pi},
	}, nil
}

// BeamShape is the elliptical approximation of the main lobe for one
// (array, target, time) triple. It is never mutated after construction;
// concurrent reads from multiple tilings are safe.
type BeamShape struct {
	// AxisH and AxisV are the semi-major and semi-minor axis in degree,
	// AxisH >= AxisV >= 0. Angle is the orientation in degree.
	AxisH float64
	AxisV float64
	Angle float64

	Psf              PointSpreadFunction
	Antennas         []vlib.Location3D
	BoreSight        [2]float64
	ReferenceAntenna vlib.Location3D
	// Horizon is the bore-sight direction as azimuth and elevation in
	// degree.
	Horizon [2]float64
}

// WidthAtOverlap returns the half widths of the beam in the major and minor
// axis direction at which the response has dropped to the given fraction of
// peak. The axes are understood as full width at half maximum, so two
// adjacent beams placed one width apart meet exactly at the overlap level.
func (b *BeamShape) WidthAtOverlap(overlap float64) (widthH, widthV float64, err error) {
	if overlap <= 0 || overlap >= 1 {
		return 0, 0, &InvalidOverlapError{Overlap: overlap}
	}
	sigmaH := b.AxisH * (2.0 / fwhmFactor)
	sigmaV := b.AxisV * (2.0 / fwhmFactor)
	drop := math.Sqrt(-2.0 * math.Log(overlap))
	return sigmaH * drop, sigmaV * drop, nil
}
