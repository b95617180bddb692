package coord

import (
	"fmt"
	"math"

	"github.com/wiless/vlib"
)

// ConvertPixelToEquatorial converts tangent-plane offsets from a bore sight,
// in degree, to equatorial coordinates. It returns the converted coordinates
// (real part RA, imaginary part Dec) and the angular radius of the pattern.
// The RA scaling degenerates at the celestial poles, so a bore sight at
// declination +-90 degree is rejected.
func ConvertPixelToEquatorial(coordinates vlib.VectorC, boreSight [2]float64) (vlib.VectorC, float64, error) {
	cosDec := math.Cos(boreSight[1] * math.Pi / 180.0)
	if math.Abs(cosDec) < 1e-9 {
		return nil, 0, fmt.Errorf("coord: bore sight declination %v deg lies on a celestial pole", boreSight[1])
	}
	result := vlib.NewVectorC(coordinates.Size())
	radius := 0.0
	for i, c := range coordinates {
		x, y := real(c), imag(c)
		result[i] = complex(boreSight[0]+x/cosDec, boreSight[1]+y)
		if r := math.Hypot(x, y); r > radius {
			radius = r
		}
	}
	return result, radius, nil
}
