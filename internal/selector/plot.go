package selector

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/GIGAluckman/blsdata/internal/bls"
)

// RenderSpectrum draws the summed spectrum with the band markers and writes
// it to path. The image format follows the file extension.
func RenderSpectrum(path string, axis, intensity []float64, band bls.Band, ymax float64) error {
	if len(axis) != len(intensity) {
		return fmt.Errorf("axis has %d points, intensity %d", len(axis), len(intensity))
	}

	p := plot.New()
	p.Title.Text = "Adjust frequency range"
	p.X.Label.Text = "Frequency (GHz)"
	p.Y.Label.Text = "Spectrum (counts)"

	pts := make(plotter.XYs, len(axis))
	for i := range axis {
		pts[i].X = axis[i]
		pts[i].Y = intensity[i]
	}
	spectrum, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("failed to build spectrum line: %w", err)
	}
	spectrum.LineStyle.Width = vg.Points(1)
	p.Add(plotter.NewGrid(), spectrum)

	for _, x := range []float64{band.Low, band.High} {
		marker, err := plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: ymax}})
		if err != nil {
			return fmt.Errorf("failed to build band marker: %w", err)
		}
		marker.LineStyle = draw.LineStyle{
			Color:  color.Black,
			Width:  vg.Points(1.5),
			Dashes: []vg.Length{vg.Points(4), vg.Points(2)},
		}
		p.Add(marker)
	}

	// Display ceiling only; it does not affect the selection.
	p.Y.Min = 0
	p.Y.Max = ymax

	if err := p.Save(10*vg.Inch, 9*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save spectrum plot: %w", err)
	}
	return nil
}
