// Package coord normalizes antenna, target and time inputs at the boundary of
// the pipeline, so the numeric core always operates on one representation.
package coord

import (
	"fmt"
	"math"

	"github.com/wiless/vlib"
)

// Target is a pointing direction in the equatorial frame, in degree.
type Target struct {
	Name string
	RA   float64
	Dec  float64
}

func NewTarget(raDeg, decDeg float64) Target {
	return Target{RA: raDeg, Dec: decDeg}
}

func (t Target) String() string {
	return fmt.Sprintf("radec,%s,%s", AngleToHour(t.RA), AngleToDEC(t.Dec))
}

// EphemerisHandle is a target object owned by an external ephemeris library.
// Radec reports the direction in the engine's internal representation, radians.
type EphemerisHandle interface {
	Radec() (ra, dec float64)
}

// ResolveTarget accepts either a plain coordinate literal or an external
// ephemeris handle and returns the normalized Target. Recognized forms:
// Target, *Target, [2]float64, []float64, vlib.VectorF and EphemerisHandle.
func ResolveTarget(source interface{}) (Target, error) {
	switch s := source.(type) {
	case Target:
		return s, nil
	case *Target:
		return *s, nil
	case [2]float64:
		return Target{RA: s[0], Dec: s[1]}, nil
	case []float64:
		if len(s) < 2 {
			return Target{}, &InvalidInputTypeError{Argument: "source", Value: source}
		}
		return Target{RA: s[0], Dec: s[1]}, nil
	case vlib.VectorF:
		if s.Size() < 2 {
			return Target{}, &InvalidInputTypeError{Argument: "source", Value: source}
		}
		return Target{RA: s[0], Dec: s[1]}, nil
	case EphemerisHandle:
		ra, dec := s.Radec()
		return Target{RA: ra * 180.0 / math.Pi, Dec: dec * 180.0 / math.Pi}, nil
	default:
		return Target{}, &InvalidInputTypeError{Argument: "source", Value: source}
	}
}

// ResolveTargets normalizes a list of targets in one pass.
func ResolveTargets(sources ...interface{}) ([]Target, error) {
	targets := make([]Target, len(sources))
	for i, s := range sources {
		t, err := ResolveTarget(s)
		if err != nil {
			return nil, err
		}
		targets[i] = t
	}
	return targets, nil
}

// splitSexagesimal rounds at the displayed precision first, so the carry
// into minutes and units happens before formatting and the seconds field
// never reads 60.
func splitSexagesimal(units float64) (u, m int, s float64) {
	s = math.Round(units*3600.0*1e4) / 1e4
	u = int(s / 3600.0)
	s -= float64(u) * 3600.0
	m = int(s / 60.0)
	s -= float64(m) * 60.0
	return u, m, s
}

// AngleToHour formats an angle in degree as a sexagesimal hour string.
func AngleToHour(deg float64) string {
	hours := math.Mod(math.Mod(deg, 360.0)+360.0, 360.0) / 15.0
	h, m, s := splitSexagesimal(hours)
	h %= 24
	return fmt.Sprintf("%02d:%02d:%07.4f", h, m, s)
}

// AngleToDEC formats an angle in degree as a signed sexagesimal string.
func AngleToDEC(deg float64) string {
	sign := "+"
	if deg < 0 {
		sign = "-"
		deg = -deg
	}
	d, m, s := splitSexagesimal(deg)
	return fmt.Sprintf("%s%02d:%02d:%07.4f", sign, d, m, s)
}
