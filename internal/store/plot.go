package store

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// EnergyPlot writes an energy-vs-conformer line plot to path. The image
// format follows the file extension (png, svg, pdf).
func EnergyPlot(path string, energies []float64) error {
	p := plot.New()
	p.Title.Text = "conformer energies"
	p.X.Label.Text = "conformer"
	p.Y.Label.Text = "energy"

	pts := make(plotter.XYs, len(energies))
	for i, e := range energies {
		pts[i].X = float64(i)
		pts[i].Y = e
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line, plotter.NewGrid())

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
