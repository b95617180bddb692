package mosaic

import (
	"fmt"
	"math"

	"github.com/wiless/vlib"
	"gonum.org/v1/gonum/mat"
)

type OverlapMode int

var OverlapModes = [...]string{
	"counter",
	"heater",
}

func (m OverlapMode) String() string {
	if int(m) >= len(OverlapModes) || m < 0 {
		return "Unknown-OverlapMode"
	}
	return OverlapModes[m]
}

const (
	// Counter stores the integer count of covering beams per grid point.
	Counter OverlapMode = iota
	// Heater stores the summed continuous Gaussian response per grid point.
	Heater
)

// DefaultGridResolution is the number of samples per grid side used by
// Tiling.CalculateOverlap.
const DefaultGridResolution = 400

// Overlap is the sampled coverage of a tiling pattern. It is a pure derived
// artifact with no back reference to the tiling.
type Overlap struct {
	Metrics *mat.Dense
	Mode    OverlapMode
}

// CalculateFractions partitions the grid points by coverage count and
// returns each class as a fraction of all sampled points. It is defined
// only for counter-mode results.
func (o *Overlap) CalculateFractions() (overlapped, nonOverlapped, empty float64, err error) {
	if o.Mode != Counter {
		return 0, 0, 0, &UnsupportedModeError{Mode: o.Mode, Operation: "fraction calculation"}
	}
	rows, cols := o.Metrics.Dims()
	var overlapGrid, nonOverlapGrid, emptyGrid int
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			switch n := int(o.Metrics.At(i, j) + 0.5); {
			case n > 1:
				overlapGrid++
			case n == 1:
				nonOverlapGrid++
			default:
				emptyGrid++
			}
		}
	}
	pointNum := float64(overlapGrid + nonOverlapGrid + emptyGrid)
	return float64(overlapGrid) / pointNum, float64(nonOverlapGrid) / pointNum,
		float64(emptyGrid) / pointNum, nil
}

// CalculateBeamOverlaps samples a square grid over the tiled region and
// aggregates the elliptical Gaussian footprint of every beam per grid
// point. In counter mode a beam covers a point when its normalized response
// there is at least the overlap fraction, so the counted footprint is
// exactly the ellipse the tiling was spaced with; in heater mode the
// continuous responses are summed. Both aggregations are associative and
// order independent.
func CalculateBeamOverlaps(coordinates vlib.VectorC, radius, axisH, axisV, angle, overlap float64, mode OverlapMode, resolution int) (*mat.Dense, error) {
	if overlap <= 0 || overlap >= 1 {
		return nil, &InvalidOverlapError{Overlap: overlap}
	}
	if mode != Counter && mode != Heater {
		return nil, fmt.Errorf("mosaic: unknown overlap mode %v", mode)
	}
	if resolution <= 1 {
		resolution = DefaultGridResolution
	}

	sigmaH := axisH * (2.0 / fwhmFactor)
	sigmaV := axisV * (2.0 / fwhmFactor)
	// sample out to where even an edge beam has dropped well below the
	// counting threshold
	extent := radius + 3.0*math.Max(sigmaH, sigmaV)
	step := 2.0 * extent / float64(resolution-1)

	// rotates a sky offset into the beam frame
	rot := vlib.GetEJtheta(angle)

	metrics := mat.NewDense(resolution, resolution, nil)
	for i := 0; i < resolution; i++ {
		y := -extent + float64(i)*step
		for j := 0; j < resolution; j++ {
			x := -extent + float64(j)*step
			point := complex(x, y)
			var value float64
			for _, center := range coordinates {
				d := (point - center) * rot
				dh := real(d) / sigmaH
				dv := imag(d) / sigmaV
				response := math.Exp(-0.5 * (dh*dh + dv*dv))
				switch mode {
				case Counter:
					if response >= overlap {
						value++
					}
				case Heater:
					value += response
				}
			}
			metrics.Set(i, j, value)
		}
	}
	return metrics, nil
}
