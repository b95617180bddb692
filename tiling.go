package mosaic

import (
	"fmt"

	"github.com/wiless/mosaic/coord"
	"github.com/wiless/vlib"
)

// DefaultPackingPrecision is the angular step, in degree, of the compact
// packing search when the caller has no preference.
const DefaultPackingPrecision = 10.0

// Tiling is an ordered set of beam centers covering a sky region. The
// Coordinates order is the canonical beam index and is preserved by all
// downstream consumers; the owning BeamShape is shared, not copied.
type Tiling struct {
	// Coordinates holds tangent-plane offsets from the bore sight in
	// degree, real part x, imaginary part y.
	Coordinates  vlib.VectorC
	BeamShape    *BeamShape
	TilingRadius float64
	Overlap      float64
}

// BeamNum is the number of beams in the tiling, always derived from the
// coordinate list.
func (t *Tiling) BeamNum() int {
	return t.Coordinates.Size()
}

// EquatorialCoordinates converts the tangent-plane beam centers to
// equatorial coordinates around the bore sight, preserving the beam order.
func (t *Tiling) EquatorialCoordinates() (vlib.VectorC, error) {
	coordinates, _, err := coord.ConvertPixelToEquatorial(t.Coordinates, t.BeamShape.BoreSight)
	return coordinates, err
}

// CalculateOverlap computes the coverage of the tiling pattern over a
// sampled grid. When newBeamShape is nil the tiling's own beam shape is
// used; passing a different shape evaluates the same pattern under an
// alternate beam.
func (t *Tiling) CalculateOverlap(mode OverlapMode, newBeamShape *BeamShape) (*Overlap, error) {
	beamShape := t.BeamShape
	if newBeamShape != nil {
		beamShape = newBeamShape
	}
	metrics, err := CalculateBeamOverlaps(t.Coordinates, t.TilingRadius,
		beamShape.AxisH, beamShape.AxisV, beamShape.Angle, t.Overlap, mode,
		DefaultGridResolution)
	if err != nil {
		return nil, err
	}
	return &Overlap{Metrics: metrics, Mode: mode}, nil
}

// SkyPattern computes the continuous summed response of the tiling, the
// heater-mode overlap of its own beam shape.
func (t *Tiling) SkyPattern() (*Overlap, error) {
	return t.CalculateOverlap(Heater, nil)
}

// GenerateNBeamsTiling packs the given number of beams as compactly as the
// packing engine manages at the given search precision. The overlap fraction
// sets the beam spacing through BeamShape.WidthAtOverlap.
func GenerateNBeamsTiling(packer PackingEngine, beamShape *BeamShape, beamNum int, overlap, precision float64) (*Tiling, error) {
	widthH, widthV, err := beamShape.WidthAtOverlap(overlap)
	if err != nil {
		return nil, err
	}
	coordinates, radius, err := packer.Compact(beamNum, widthH, widthV, beamShape.Angle, precision)
	if err != nil {
		return nil, fmt.Errorf("mosaic: compact packing: %w", err)
	}
	return &Tiling{
		Coordinates:  coordinates,
		BeamShape:    beamShape,
		TilingRadius: radius,
		Overlap:      overlap,
	}, nil
}

// GenerateRadiusTiling tiles a region of the given angular radius with a
// regular elliptical grid. The resulting beam count is an output of the
// packing, not a parameter.
func GenerateRadiusTiling(packer PackingEngine, beamShape *BeamShape, tilingRadius, overlap float64) (*Tiling, error) {
	widthH, widthV, err := beamShape.WidthAtOverlap(overlap)
	if err != nil {
		return nil, err
	}
	coordinates, err := packer.Grid(tilingRadius, widthH, widthV, beamShape.Angle)
	if err != nil {
		return nil, fmt.Errorf("mosaic: grid packing: %w", err)
	}
	return &Tiling{
		Coordinates:  coordinates,
		BeamShape:    beamShape,
		TilingRadius: tilingRadius,
		Overlap:      overlap,
	}, nil
}
