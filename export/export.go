// Package export writes the pipeline's products as matlab scripts for the
// plotting collaborator: the PSF raster with an optional shape overlay, the
// packed tiling pattern, the overlap grid and the array overview.
package export

import (
	"io"

	"github.com/wiless/mosaic"
	"github.com/wiless/vlib"
	"gonum.org/v1/gonum/mat"
)

// Writer redirects every export to a writer instead of a file when set.
var Writer io.Writer

func newMatlab(fileName string) *vlib.Matlab {
	var matlab vlib.Matlab
	matlab.SetDefaults()
	if Writer != nil {
		matlab.SetWriter(Writer)
	} else {
		matlab.SetFile(fileName)
	}
	matlab.Silent = true
	return &matlab
}

func flatten(m *mat.Dense) (vlib.VectorF, int, int) {
	rows, cols := m.Dims()
	data := vlib.NewVectorF(rows * cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data[i*cols+j] = m.At(i, j)
		}
	}
	return data, rows, cols
}

// PSF exports the point spread function raster; with shapeOverlay the
// fitted ellipse parameters and an overlay command are added.
func PSF(beamShape *mosaic.BeamShape, fileName string, shapeOverlay bool) error {
	matlab := newMatlab(fileName)
	defer matlab.Close()

	data, rows, cols := flatten(beamShape.Psf.Image)
	matlab.Export("psfdata", data)
	matlab.Export("psfrows", rows)
	matlab.Export("psfcols", cols)
	matlab.Export("boresight", vlib.VectorF{beamShape.Psf.BoreSight[0], beamShape.Psf.BoreSight[1]})
	matlab.Export("width", beamShape.Psf.Width)
	matlab.Command("psf=reshape(psfdata,psfcols,psfrows)';")
	matlab.Command("figure;")
	matlab.Command("imagesc(psf);")
	matlab.Command("axis image;")
	if shapeOverlay {
		matlab.Export("axisH", beamShape.AxisH)
		matlab.Export("axisV", beamShape.AxisV)
		matlab.Export("angle", beamShape.Angle)
		matlab.Command("hold on;")
		matlab.Command("t=0:0.01:2*pi;")
		matlab.Command("step=width/psfrows;")
		matlab.Command("ex=(axisH*cos(t)*cosd(angle)-axisV*sin(t)*sind(angle))/step+psfcols/2;")
		matlab.Command("ey=(axisH*cos(t)*sind(angle)+axisV*sin(t)*cosd(angle))/step+psfrows/2;")
		matlab.Command("plot(ex,ey,'r-');")
	}
	return nil
}

// PackedBeam exports the tiling pattern together with the ellipse
// parameters of each beam at the tiling's overlap level.
func PackedBeam(tiling *mosaic.Tiling, fileName string) error {
	widthH, widthV, err := tiling.BeamShape.WidthAtOverlap(tiling.Overlap)
	if err != nil {
		return err
	}
	matlab := newMatlab(fileName)
	defer matlab.Close()

	matlab.Export("centers", tiling.Coordinates)
	matlab.Export("widthH", widthH)
	matlab.Export("widthV", widthV)
	matlab.Export("angle", tiling.BeamShape.Angle)
	matlab.Export("radius", tiling.TilingRadius)
	matlab.Command("figure;")
	matlab.Command("plot(real(centers),imag(centers),'k.');")
	matlab.Command("hold on;")
	matlab.Command("t=0:0.05:2*pi;")
	matlab.Command("for k=1:length(centers)")
	matlab.Command("ex=widthH*cos(t)*cosd(angle)-widthV*sin(t)*sind(angle)+real(centers(k));")
	matlab.Command("ey=widthH*cos(t)*sind(angle)+widthV*sin(t)*cosd(angle)+imag(centers(k));")
	matlab.Command("plot(ex,ey,'b-');")
	matlab.Command("end")
	matlab.Command("plot(radius*cos(t),radius*sin(t),'r--');")
	matlab.Command("axis equal;")
	return nil
}

// OverlapMap exports the sampled overlap grid and its mode tag.
func OverlapMap(overlap *mosaic.Overlap, fileName string) error {
	matlab := newMatlab(fileName)
	defer matlab.Close()

	data, rows, cols := flatten(overlap.Metrics)
	matlab.Export("overlapdata", data)
	matlab.Export("overlaprows", rows)
	matlab.Export("overlapcols", cols)
	matlab.Command("% mode: " + overlap.Mode.String())
	matlab.Command("overlapmap=reshape(overlapdata,overlapcols,overlaprows)';")
	matlab.Command("figure;")
	matlab.Command("imagesc(overlapmap);")
	matlab.Command("colorbar;")
	matlab.Command("axis image;")
	return nil
}

// Interferometry exports the antenna layout, the reference antenna and the
// bore-sight horizon direction for an array overview plot.
func Interferometry(beamShape *mosaic.BeamShape, fileName string) error {
	matlab := newMatlab(fileName)
	defer matlab.Close()

	n := len(beamShape.Antennas)
	lat := vlib.NewVectorF(n)
	lon := vlib.NewVectorF(n)
	alt := vlib.NewVectorF(n)
	for i, ant := range beamShape.Antennas {
		lat[i], lon[i], alt[i] = ant.X, ant.Y, ant.Z
	}
	matlab.Export("antlat", lat)
	matlab.Export("antlon", lon)
	matlab.Export("antalt", alt)
	matlab.Export("reference", vlib.VectorF{beamShape.ReferenceAntenna.X, beamShape.ReferenceAntenna.Y, beamShape.ReferenceAntenna.Z})
	matlab.Export("horizon", vlib.VectorF{beamShape.Horizon[0], beamShape.Horizon[1]})
	matlab.Command("figure;")
	matlab.Command("plot(antlon,antlat,'k^');")
	matlab.Command("hold on;")
	matlab.Command("plot(reference(2),reference(1),'rs');")
	matlab.Command("grid on;")
	return nil
}
