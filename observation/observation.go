// Package observation synthesizes the point spread function of an antenna
// array for one bore sight and observation time. It implements the
// observation engine consumed by mosaic.PsfSim: the array positions are
// projected onto the aperture plane for the observing hour angle and the
// beam raster is the squared magnitude of the summed element phasors.
package observation

import (
	"encoding/json"
	"fmt"
	"math"
	"math/cmplx"

	log "github.com/sirupsen/logrus"
	"github.com/wiless/mosaic"
	"github.com/wiless/mosaic/coord"
	"github.com/wiless/vlib"
	"gonum.org/v1/gonum/mat"
)

// halfPower marks the contour the ellipse is fitted on.
const halfPower = 0.5

type Setting struct {
	// GridSize is the number of raster samples per side.
	GridSize int
	// WidthScale is the raster extent as a multiple of the array's
	// resolution element.
	WidthScale float64
}

func (s *Setting) SetDefault() {
	s.GridSize = 256
	s.WidthScale = 10.0
}

func NewSetting() *Setting {
	result := new(Setting)
	result.SetDefault()
	return result
}

func (s *Setting) Set(str string) {
	err := json.Unmarshal([]byte(str), s)
	if err != nil {
		log.Print("Error ", err)
	}
}

// Observation holds the state of one synthesis: bore sight and time are set
// first, CreateContour computes the raster and the lobe ellipse. An
// Observation is exclusive to one call sequence; interleaving unrelated
// mutations between the set calls and the result reads is not safe.
type Observation struct {
	reference   vlib.Location3D
	waveLengths vlib.VectorF
	setting     Setting

	boreSight [2]float64
	epoch     float64

	axisH, axisV, angle float64
	horizon             [2]float64
	psf                 mosaic.PointSpreadFunction
}

// New creates an engine for an array reference position and the observing
// wavelengths in meters.
func New(reference vlib.Location3D, waveLengths vlib.VectorF) *Observation {
	result := &Observation{reference: reference, waveLengths: waveLengths}
	result.setting.SetDefault()
	return result
}

// NewWithSetting creates an engine with an explicit raster setting.
func NewWithSetting(reference vlib.Location3D, waveLengths vlib.VectorF, setting Setting) *Observation {
	result := New(reference, waveLengths)
	result.setting = setting
	return result
}

// Factory adapts New to the engine factory signature consumed by
// mosaic.NewPsfSim.
func Factory(reference vlib.Location3D, waveLengths vlib.VectorF) mosaic.ObservationEngine {
	return New(reference, waveLengths)
}

func (o *Observation) SetBoreSight(raDeg, decDeg float64) {
	o.boreSight[0], o.boreSight[1] = raDeg, decDeg
}

func (o *Observation) SetObserveTime(epoch float64) {
	o.epoch = epoch
}

// CreateContour projects the antennas onto the aperture plane for the
// current bore sight and time, rasters the synthesized beam and fits the
// half-power ellipse of the main lobe.
func (o *Observation) CreateContour(antennas []vlib.Location3D) error {
	if len(antennas) < 3 {
		return fmt.Errorf("observation: %d antennas, contour needs at least 3", len(antennas))
	}
	if o.waveLengths.Size() == 0 || o.waveLengths[0] <= 0 {
		return fmt.Errorf("observation: no positive wavelength configured")
	}
	lamda := o.waveLengths[0]

	u, v := o.apertureProjection(antennas, lamda)

	// resolution element of the projected aperture, in radians
	maxUV := 0.0
	for i := range u {
		if d := math.Hypot(u[i], v[i]); d > maxUV {
			maxUV = d
		}
	}
	if maxUV == 0 {
		return fmt.Errorf("observation: degenerate aperture, all antennas project to one point")
	}
	widthDeg := o.setting.WidthScale / (2.0 * maxUV) * 180.0 / math.Pi

	image := o.raster(u, v, widthDeg)
	axisH, axisV, angle, err := fitEllipse(image, widthDeg)
	if err != nil {
		return err
	}
	o.axisH, o.axisV, o.angle = axisH, axisV, angle

	az, el := coord.Horizontal(o.epoch, o.reference.X, o.reference.Y, o.boreSight[0], o.boreSight[1])
	o.horizon[0], o.horizon[1] = az, el

	o.psf = mosaic.PointSpreadFunction{
		Image:     image,
		BoreSight: o.boreSight,
		Width:     widthDeg,
	}
	log.Debugf("observation: contour over %d antennas, raster width %v deg", len(antennas), widthDeg)
	return nil
}

// apertureProjection rotates the antenna baselines, in wavelengths, into
// the plane perpendicular to the bore sight at the observing hour angle.
func (o *Observation) apertureProjection(antennas []vlib.Location3D, lamda float64) (u, v vlib.VectorF) {
	hRad := coord.LocalHourAngle(o.epoch, o.reference.Y, o.boreSight[0]) * math.Pi / 180.0
	decRad := o.boreSight[1] * math.Pi / 180.0
	latRad := o.reference.X * math.Pi / 180.0

	sinH, cosH := math.Sincos(hRad)
	sinDec, cosDec := math.Sincos(decRad)
	sinLat, cosLat := math.Sincos(latRad)

	u = vlib.NewVectorF(len(antennas))
	v = vlib.NewVectorF(len(antennas))
	for i, ant := range antennas {
		enu := coord.ENU(o.reference, ant)
		// local east-north-up to equatorial axes
		x := -sinLat*enu.Y + cosLat*enu.Z
		y := enu.X
		z := cosLat*enu.Y + sinLat*enu.Z

		u[i] = (sinH*x + cosH*y) / lamda
		v[i] = (-sinDec*cosH*x + sinDec*sinH*y + cosDec*z) / lamda
	}

	// recenter on the array mean; the beam magnitude is shift invariant
	uMean := vlib.Sum(u) / float64(len(antennas))
	vMean := vlib.Sum(v) / float64(len(antennas))
	for i := range u {
		u[i] -= uMean
		v[i] -= vMean
	}
	return u, v
}

// raster evaluates the normalized array factor |sum exp(j2pi(u*l+v*m))|^2/N^2
// over an l,m grid of the given angular width in degree.
func (o *Observation) raster(u, v vlib.VectorF, widthDeg float64) *mat.Dense {
	size := o.setting.GridSize
	image := mat.NewDense(size, size, nil)
	step := widthDeg / float64(size-1) * math.Pi / 180.0
	half := float64(size-1) / 2.0
	n := float64(u.Size())

	for i := 0; i < size; i++ {
		m := (float64(i) - half) * step
		for j := 0; j < size; j++ {
			l := (float64(j) - half) * step
			var sum complex128
			for k := range u {
				phase := 2.0 * math.Pi * (u[k]*l + v[k]*m)
				sum += cmplx.Exp(complex(0, phase))
			}
			gain := cmplx.Abs(sum)
			image.Set(i, j, gain*gain/(n*n))
		}
	}
	return image
}

// fitEllipse measures the second moments of the main lobe above the
// half-power level and converts them to semi-axes and orientation. Only the
// region connected to the raster center counts, so sidelobes do not bias
// the fit.
func fitEllipse(image *mat.Dense, widthDeg float64) (axisH, axisV, angle float64, err error) {
	size, _ := image.Dims()
	step := widthDeg / float64(size-1)
	center := size / 2

	covered := floodAboveLevel(image, center, center, halfPower)
	if len(covered) == 0 {
		return 0, 0, 0, fmt.Errorf("observation: no main lobe above the half-power level")
	}

	var sxx, syy, sxy float64
	for _, px := range covered {
		x := (float64(px[1]) - float64(center)) * step
		y := (float64(px[0]) - float64(center)) * step
		sxx += x * x
		syy += y * y
		sxy += x * y
	}
	np := float64(len(covered))
	sxx, syy, sxy = sxx/np, syy/np, sxy/np

	// eigenvalues of the 2x2 moment matrix; for a filled ellipse the
	// major semi-axis is twice the rms along the major direction
	mean := (sxx + syy) / 2.0
	diff := math.Hypot((sxx-syy)/2.0, sxy)
	major := 2.0 * math.Sqrt(mean+diff)
	minor := 2.0 * math.Sqrt(math.Max(mean-diff, 0))
	orientation := 0.5 * math.Atan2(2.0*sxy, sxx-syy) * 180.0 / math.Pi

	return major, minor, orientation, nil
}

// floodAboveLevel collects the pixels above level connected to (row, col).
func floodAboveLevel(image *mat.Dense, row, col int, level float64) [][2]int {
	size, _ := image.Dims()
	peak := image.At(row, col)
	if peak < level {
		return nil
	}
	threshold := level * peak

	visited := make(map[[2]int]bool)
	queue := [][2]int{{row, col}}
	visited[[2]int{row, col}] = true
	var covered [][2]int
	for len(queue) > 0 {
		px := queue[0]
		queue = queue[1:]
		covered = append(covered, px)
		for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			next := [2]int{px[0] + d[0], px[1] + d[1]}
			if next[0] < 0 || next[0] >= size || next[1] < 0 || next[1] >= size {
				continue
			}
			if visited[next] || image.At(next[0], next[1]) < threshold {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return covered
}

// GetBeamAxis returns the semi-major axis, semi-minor axis and orientation
// of the fitted main lobe, all in degree.
func (o *Observation) GetBeamAxis() (axisH, axisV, angle float64) {
	return o.axisH, o.axisV, o.angle
}

// GetHorizontal returns the bore-sight azimuth and elevation in radians.
func (o *Observation) GetHorizontal() (az, el float64) {
	return o.horizon[0], o.horizon[1]
}

func (o *Observation) GetPointSpreadFunction() mosaic.PointSpreadFunction {
	return o.psf
}
