package mosaic

import (
	"fmt"

	"github.com/wiless/mosaic/coord"
	"github.com/wiless/vlib"
)

// DefaultReferenceFrequency is the fixed reference frequency of the
// delay-rate model in Hz.
const DefaultReferenceFrequency = 1.4e9

// PolarizationPolicy names the fixed index policy applied to the oracle
// output: how many polarizations the oracle reports per antenna, which one
// the delay engine selects, and which polynomial sample carries the rate.
// The selection is deterministic, never data dependent.
type PolarizationPolicy struct {
	NumPolarizations int
	PolIndex         int
	RateSample       int
}

// DefaultPolarizationPolicy takes the first of two polarizations and the
// first rate sample.
var DefaultPolarizationPolicy = PolarizationPolicy{
	NumPolarizations: 2,
	PolIndex:         0,
	RateSample:       0,
}

// DelayPolynomial computes steering delay corrections for a set of target
// directions, relative to a reference antenna and the bore-sight target.
type DelayPolynomial struct {
	Antennas  []vlib.Location3D
	Targets   []coord.Target
	Reference vlib.Location3D
	Frequency float64
	Policy    PolarizationPolicy

	oracle DelayOracle
}

// NewDelayPolynomial prepares a delay computation. Targets must be ordered
// with the bore sight first; every reported delay is relative to it.
// Antennas, targets and the reference accept any form the coord resolvers
// recognize.
func NewDelayPolynomial(oracle DelayOracle, antennas interface{}, targets []interface{}, reference interface{}) (*DelayPolynomial, error) {
	ants, err := coord.ResolveAntennas(antennas)
	if err != nil {
		return nil, err
	}
	tgts, err := coord.ResolveTargets(targets...)
	if err != nil {
		return nil, err
	}
	ref, err := coord.ResolveAntenna(reference)
	if err != nil {
		return nil, err
	}
	return &DelayPolynomial{
		Antennas:  ants,
		Targets:   tgts,
		Reference: ref,
		Frequency: DefaultReferenceFrequency,
		Policy:    DefaultPolarizationPolicy,
		oracle:    oracle,
	}, nil
}

// GetDelayPolynomials queries the oracle for every target over the window
// [epoch, epoch+duration] and returns one DelayRate per target per antenna,
// indexed [target][antenna]. The bore-sight row (target index 0) is
// subtracted from every row, so all reported values are offsets relative to
// the pointing center and row 0 is identically zero. The antenna order of
// every row matches the input antenna order. The epoch is accepted as epoch
// seconds or a time.Time; duration is in seconds.
func (d *DelayPolynomial) GetDelayPolynomials(epoch interface{}, duration float64) ([][]DelayRate, error) {
	timestamp, err := coord.ResolveTime(epoch)
	if err != nil {
		return nil, err
	}
	t0, t1 := timestamp, timestamp+duration

	result := make([][]DelayRate, len(d.Targets))
	for ti, target := range d.Targets {
		corrections, err := d.oracle.Corrections(d.Antennas, d.Reference, d.Frequency, target, t0, t1)
		if err != nil {
			return nil, fmt.Errorf("mosaic: delay corrections for %v: %w", target, err)
		}
		if len(corrections) != len(d.Antennas) {
			return nil, fmt.Errorf("mosaic: oracle returned %d corrections for %d antennas", len(corrections), len(d.Antennas))
		}
		row := make([]DelayRate, len(corrections))
		for ai, c := range corrections {
			if len(c.Polarizations) != d.Policy.NumPolarizations {
				return nil, fmt.Errorf("mosaic: oracle reported %d polarizations, policy expects %d", len(c.Polarizations), d.Policy.NumPolarizations)
			}
			if d.Policy.PolIndex < 0 || d.Policy.PolIndex >= len(c.Polarizations) {
				return nil, fmt.Errorf("mosaic: policy selects polarization %d of %d", d.Policy.PolIndex, len(c.Polarizations))
			}
			samples := c.Polarizations[d.Policy.PolIndex]
			if d.Policy.RateSample < 0 || d.Policy.RateSample >= len(samples) {
				return nil, fmt.Errorf("mosaic: oracle reported %d samples, policy selects sample %d", len(samples), d.Policy.RateSample)
			}
			row[ai] = samples[d.Policy.RateSample]
		}
		result[ti] = row
	}

	if len(result) == 0 {
		return result, nil
	}
	boreSight := make([]DelayRate, len(result[0]))
	copy(boreSight, result[0])
	for ti := range result {
		for ai := range result[ti] {
			result[ti][ai].Delay -= boreSight[ai].Delay
			result[ti][ai].Rate -= boreSight[ai].Rate
		}
	}
	return result, nil
}
