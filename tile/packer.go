// Package tile packs elliptical beams on a hexagonal lattice. It provides
// the packing engine consumed by the mosaic tiling generators: a compact
// arrangement of a fixed beam count, and a bounded regular grid.
package tile

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/wiless/vlib"
)

// DefaultPrecision is the angular step of the compact search in degree.
const DefaultPrecision = 10.0

// Packer arranges unit beams on a hexagonal lattice, then shears the
// lattice by the beam half-widths and rotates it to the beam orientation.
type Packer struct{}

func NewPacker() *Packer {
	return &Packer{}
}

// cube coordinate steps around a hexagonal ring
var directions = [6][3]float64{
	{1, -1, 0}, {1, 0, -1}, {0, 1, -1}, {-1, 1, 0}, {-1, 0, 1}, {0, -1, 1},
}

func shift(cube, d [3]float64) [3]float64 {
	return [3]float64{cube[0] + d[0], cube[1] + d[1], cube[2] + d[2]}
}

func scale(d [3]float64, f float64) [3]float64 {
	return [3]float64{d[0] * f, d[1] * f, d[2] * f}
}

func cube2XY(cube [3]float64, hexsize float64) complex128 {
	x := hexsize * 1.7320508 * (cube[0] + cube[2]*0.5) // sqrt(3)=1.7320508
	y := hexsize * 1.5 * cube[2]
	return complex(y, x)
}

// unitHexSize spaces neighboring unit beams exactly two radii apart.
var unitHexSize = 2.0 / math.Sqrt(3.0)

// lattice walks the hexagonal lattice ring by ring, center first, and
// returns the site positions in unit space. The walk order is deterministic
// and becomes the canonical beam index.
func lattice(rings int) []complex128 {
	sites := make([]complex128, 0, 1+3*rings*(rings+1))
	sites = append(sites, 0)
	for r := 1; r <= rings; r++ {
		cube := scale(directions[4], float64(r))
		for i := 0; i < 6; i++ {
			for j := 0; j < r; j++ {
				sites = append(sites, cube2XY(cube, unitHexSize))
				cube = shift(cube, directions[i])
			}
		}
	}
	return sites
}

// transform shears a unit-space site by the beam half-widths and rotates it
// to the beam orientation in degree.
func transform(site complex128, widthH, widthV, angle float64) complex128 {
	sheared := complex(real(site)*widthH, imag(site)*widthV)
	return sheared * vlib.GetEJtheta(-angle)
}

func ringsFor(beamNum int) int {
	r := 0
	for 1+3*r*(r+1) < beamNum {
		r++
	}
	return r
}

// Compact packs beamNum ellipses of the given half-widths and orientation
// as compactly as a hexagonal lattice allows. The beamNum innermost lattice
// sites are kept and the lattice rotation is searched at the given angular
// precision for the smallest circumscribing radius. It returns exactly
// beamNum coordinates and that radius.
func (p *Packer) Compact(beamNum int, widthH, widthV, angle, precision float64) (vlib.VectorC, float64, error) {
	if beamNum < 1 {
		return nil, 0, fmt.Errorf("tile: beam count %d, need at least 1", beamNum)
	}
	if widthH <= 0 || widthV <= 0 {
		return nil, 0, fmt.Errorf("tile: non-positive beam widths %v, %v", widthH, widthV)
	}
	if precision <= 0 {
		precision = DefaultPrecision
	}

	sites := lattice(ringsFor(beamNum))
	sort.SliceStable(sites, func(i, j int) bool {
		return cmplx.Abs(sites[i]) < cmplx.Abs(sites[j])
	})
	sites = sites[:beamNum]

	// the lattice repeats every 60 degree; search one sector
	bestRotation, bestRadius := 0.0, math.Inf(1)
	for phi := 0.0; phi < 60.0; phi += precision {
		radius := 0.0
		for _, s := range sites {
			d := cmplx.Abs(transform(s*vlib.GetEJtheta(-phi), widthH, widthV, angle))
			if d > radius {
				radius = d
			}
		}
		if radius < bestRadius {
			bestRadius = radius
			bestRotation = phi
		}
	}

	coordinates := vlib.NewVectorC(beamNum)
	for i, s := range sites {
		coordinates[i] = transform(s*vlib.GetEJtheta(-bestRotation), widthH, widthV, angle)
	}
	radius := bestRadius + (widthH+widthV)/2.0
	log.Debugf("tile: packed %d beams, rotation %v deg, radius %v deg", beamNum, bestRotation, radius)
	return coordinates, radius, nil
}

// Grid returns every lattice site whose sheared position fits inside the
// given radius. The site count is an output of the packing.
func (p *Packer) Grid(radius, widthH, widthV, angle float64) (vlib.VectorC, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("tile: non-positive tiling radius %v", radius)
	}
	if widthH <= 0 || widthV <= 0 {
		return nil, fmt.Errorf("tile: non-positive beam widths %v, %v", widthH, widthV)
	}

	// ring k's nearest sites are its mid-edge sites, sqrt(3)*k widths out
	rings := int(radius/(math.Sqrt(3.0)*math.Min(widthH, widthV))) + 2
	var coordinates vlib.VectorC
	for _, s := range lattice(rings) {
		c := transform(s, widthH, widthV, angle)
		if cmplx.Abs(c) <= radius {
			coordinates = append(coordinates, c)
		}
	}
	log.Debugf("tile: grid of %d beams inside radius %v deg", coordinates.Size(), radius)
	return coordinates, nil
}

