// Package correction computes geometric delay corrections for an antenna
// array. It implements the delay oracle consumed by mosaic.DelayPolynomial:
// per antenna, the time of arrival difference of a plane wave from the
// target direction, relative to the reference antenna.
package correction

import (
	"fmt"
	"math"

	"github.com/wiless/mosaic"
	"github.com/wiless/mosaic/coord"
	"github.com/wiless/vlib"
)

// GeometricOracle models the delay of each antenna as the projection of its
// baseline onto the target direction, -(b.s)/c, and the rate as the finite
// difference over the requested window. The model is non-dispersive; the
// frequency argument only keys the correction set.
type GeometricOracle struct {
	// Polarizations is the number of polarizations reported per antenna.
	// The geometric delay is polarization independent, so the entries are
	// identical; the count exists to honor the oracle convention consumed
	// by the polarization policy.
	Polarizations int
}

func NewGeometricOracle() *GeometricOracle {
	return &GeometricOracle{Polarizations: 2}
}

// Corrections returns one AntennaCorrection per antenna, positionally
// aligned with the antennas argument, with two polynomial samples per
// polarization: one at each end of the window.
func (g *GeometricOracle) Corrections(antennas []vlib.Location3D, reference vlib.Location3D, freqHz float64, target coord.Target, t0, t1 float64) ([]mosaic.AntennaCorrection, error) {
	if len(antennas) == 0 {
		return nil, fmt.Errorf("correction: no antennas")
	}
	if t1 <= t0 {
		return nil, fmt.Errorf("correction: empty time window [%v, %v]", t0, t1)
	}

	result := make([]mosaic.AntennaCorrection, len(antennas))
	for i, ant := range antennas {
		baseline := coord.ENU(reference, ant)
		delay0 := planeWaveDelay(baseline, reference, target, t0)
		delay1 := planeWaveDelay(baseline, reference, target, t1)
		rate := (delay1 - delay0) / (t1 - t0)

		samples := []mosaic.DelayRate{
			{Delay: delay0, Rate: rate},
			{Delay: delay1, Rate: rate},
		}
		pols := make([][]mosaic.DelayRate, g.Polarizations)
		for p := range pols {
			pols[p] = samples
		}
		result[i] = mosaic.AntennaCorrection{Polarizations: pols}
	}
	return result, nil
}

// planeWaveDelay projects an east-north-up baseline in meters onto the unit
// vector toward the target at the given epoch.
func planeWaveDelay(baseline, reference vlib.Location3D, target coord.Target, epoch float64) float64 {
	az, el := coord.Horizontal(epoch, reference.X, reference.Y, target.RA, target.Dec)
	sinAz, cosAz := math.Sincos(az)
	sinEl, cosEl := math.Sincos(el)

	sE := sinAz * cosEl
	sN := cosAz * cosEl
	sU := sinEl

	return -(baseline.X*sE + baseline.Y*sN + baseline.Z*sU) / mosaic.SpeedOfLight
}
