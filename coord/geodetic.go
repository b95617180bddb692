package coord

import (
	"math"

	"github.com/wiless/vlib"
)

// WGS-84 ellipsoid.
const (
	wgs84A  = 6378137.0
	wgs84F  = 1.0 / 298.257223563
	wgs84E2 = wgs84F * (2 - wgs84F)
)

// j2000 is the Julian Date of the J2000.0 epoch.
const j2000 = 2451545.0

func geodeticToECEF(latDeg, lonDeg, altM float64) (x, y, z float64) {
	lat := latDeg * math.Pi / 180.0
	lon := lonDeg * math.Pi / 180.0
	sinLat, cosLat := math.Sincos(lat)
	sinLon, cosLon := math.Sincos(lon)

	// radius of curvature in the prime vertical
	n := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)
	x = (n + altM) * cosLat * cosLon
	y = (n + altM) * cosLat * sinLon
	z = (n*(1-wgs84E2) + altM) * sinLat
	return x, y, z
}

// ENU returns the position of ant relative to reference in the local
// east-north-up frame at reference, in meters. Both arguments hold
// latitude(deg), longitude(deg), altitude(m) in X, Y, Z.
func ENU(reference, ant vlib.Location3D) vlib.Location3D {
	rx, ry, rz := geodeticToECEF(reference.X, reference.Y, reference.Z)
	ax, ay, az := geodeticToECEF(ant.X, ant.Y, ant.Z)
	dx, dy, dz := ax-rx, ay-ry, az-rz

	lat := reference.X * math.Pi / 180.0
	lon := reference.Y * math.Pi / 180.0
	sinLat, cosLat := math.Sincos(lat)
	sinLon, cosLon := math.Sincos(lon)

	var enu vlib.Location3D
	enu.SetXYZ(
		-sinLon*dx+cosLon*dy,
		-sinLat*cosLon*dx-sinLat*sinLon*dy+cosLat*dz,
		cosLat*cosLon*dx+cosLat*sinLon*dy+sinLat*dz)
	return enu
}

// JulianDate converts epoch seconds to Julian Date.
func JulianDate(epoch float64) float64 {
	return epoch/86400.0 + 2440587.5
}

// GMST returns the Greenwich Mean Sidereal Time in degree for the given
// epoch seconds, using the IAU-82 model.
func GMST(epoch float64) float64 {
	tUT1 := (JulianDate(epoch) - j2000) / 36525.0
	gmstSec := 67310.54841 +
		(3155760000.0+8640184.812866)*tUT1 +
		0.093104*tUT1*tUT1 -
		6.2e-6*tUT1*tUT1*tUT1
	gmstSec = math.Mod(gmstSec, 86400.0)
	if gmstSec < 0 {
		gmstSec += 86400.0
	}
	return gmstSec / 86400.0 * 360.0
}

// LocalHourAngle returns the hour angle of a right ascension at the given
// longitude and epoch, normalized to (-180, 180] degree.
func LocalHourAngle(epoch, lonDeg, raDeg float64) float64 {
	h := GMST(epoch) + lonDeg - raDeg
	h = math.Mod(h, 360.0)
	if h > 180.0 {
		h -= 360.0
	} else if h <= -180.0 {
		h += 360.0
	}
	return h
}

// Horizontal returns the azimuth and elevation, in radians, of an equatorial
// direction seen from the given site at the given epoch. Azimuth is measured
// from north through east.
func Horizontal(epoch, latDeg, lonDeg, raDeg, decDeg float64) (az, el float64) {
	hRad := LocalHourAngle(epoch, lonDeg, raDeg) * math.Pi / 180.0
	lat := latDeg * math.Pi / 180.0
	dec := decDeg * math.Pi / 180.0

	sinEl := math.Sin(lat)*math.Sin(dec) + math.Cos(lat)*math.Cos(dec)*math.Cos(hRad)
	el = math.Asin(sinEl)
	az = math.Atan2(-math.Cos(dec)*math.Sin(hRad),
		math.Sin(dec)*math.Cos(lat)-math.Sin(lat)*math.Cos(dec)*math.Cos(hRad))
	if az < 0 {
		az += 2 * math.Pi
	}
	return az, el
}
