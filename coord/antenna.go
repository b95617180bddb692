package coord

import (
	"math"

	ms "github.com/mitchellh/mapstructure"
	"github.com/wiless/vlib"
)

// AntennaHandle is an antenna object owned by an external ephemeris library.
// Observer reports the site in the library's internal representation:
// latitude and longitude in radians, altitude in meters.
type AntennaHandle interface {
	Observer() (lat, lon, alt float64)
}

// ResolveAntennas normalizes an antenna list to geographic coordinates, each
// element a vlib.Location3D holding latitude(deg), longitude(deg) and
// altitude(m) in X, Y and Z. Recognized forms: []vlib.Location3D,
// [][3]float64, [][]float64 and []AntennaHandle.
func ResolveAntennas(antennas interface{}) ([]vlib.Location3D, error) {
	switch a := antennas.(type) {
	case []vlib.Location3D:
		result := make([]vlib.Location3D, len(a))
		copy(result, a)
		return result, nil
	case [][3]float64:
		result := make([]vlib.Location3D, len(a))
		for i, v := range a {
			result[i].SetXYZ(v[0], v[1], v[2])
		}
		return result, nil
	case [][]float64:
		result := make([]vlib.Location3D, len(a))
		for i, v := range a {
			if len(v) < 3 {
				return nil, &InvalidInputTypeError{Argument: "antennas", Value: antennas}
			}
			result[i].SetXYZ(v[0], v[1], v[2])
		}
		return result, nil
	case []AntennaHandle:
		result := make([]vlib.Location3D, len(a))
		for i, h := range a {
			lat, lon, alt := h.Observer()
			result[i].SetXYZ(lat*180.0/math.Pi, lon*180.0/math.Pi, alt)
		}
		return result, nil
	default:
		return nil, &InvalidInputTypeError{Argument: "antennas", Value: antennas}
	}
}

// ResolveAntenna normalizes a single antenna position. Recognized forms:
// vlib.Location3D, [3]float64, []float64 and AntennaHandle.
func ResolveAntenna(antenna interface{}) (vlib.Location3D, error) {
	switch a := antenna.(type) {
	case vlib.Location3D:
		return a, nil
	case [3]float64:
		var loc vlib.Location3D
		loc.SetXYZ(a[0], a[1], a[2])
		return loc, nil
	case []float64:
		if len(a) < 3 {
			return vlib.Location3D{}, &InvalidInputTypeError{Argument: "antenna", Value: antenna}
		}
		var loc vlib.Location3D
		loc.SetXYZ(a[0], a[1], a[2])
		return loc, nil
	case AntennaHandle:
		lat, lon, alt := a.Observer()
		var loc vlib.Location3D
		loc.SetXYZ(lat*180.0/math.Pi, lon*180.0/math.Pi, alt)
		return loc, nil
	default:
		return vlib.Location3D{}, &InvalidInputTypeError{Argument: "antenna", Value: antenna}
	}
}

type antennaRecord struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
}

// DecodeAntennas decodes antenna records arriving as generic maps, e.g. from
// a decoded JSON or YAML document, into geographic coordinates.
func DecodeAntennas(records interface{}) ([]vlib.Location3D, error) {
	var decoded []antennaRecord
	if err := ms.Decode(records, &decoded); err != nil {
		return nil, err
	}
	result := make([]vlib.Location3D, len(decoded))
	for i, r := range decoded {
		result[i].SetXYZ(r.Latitude, r.Longitude, r.Altitude)
	}
	return result, nil
}
