package export

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/lmpdump/internal/dump"
	"github.com/san-kum/lmpdump/internal/histo"
)

const (
	PlotWidth  = 6 * vg.Inch
	PlotHeight = 4 * vg.Inch
)

// EnergyPlot draws total energy per accepted file. The x axis is the
// timestep when every file carried one and the load index otherwise.
func EnergyPlot(agg *dump.Aggregate) (*plot.Plot, error) {
	if agg.Len() == 0 {
		return nil, histo.ErrNoData
	}

	xs, xlabel := energyAxis(agg)
	pts := make(plotter.XYs, agg.Len())
	for i, e := range agg.Energies {
		pts[i].X = xs[i]
		pts[i].Y = e.Total
	}

	p := plot.New()
	p.Title.Text = "Total energy"
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "Energy"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = color.RGBA{R: 0, G: 200, B: 255, A: 255}
	p.Add(line)
	return p, nil
}

func energyAxis(agg *dump.Aggregate) ([]float64, string) {
	xs := make([]float64, agg.Len())
	for i, e := range agg.Energies {
		if e.Timestep == nil {
			for j := range xs {
				xs[j] = float64(j)
			}
			return xs, "File"
		}
		xs[i] = float64(*e.Timestep)
	}
	return xs, "Timestep"
}

// heatGrid exposes a histogram matrix as a plotter.GridXYZ: columns are
// bins, rows are selected frames.
type heatGrid struct {
	m *histo.Matrix
	x []float64
}

func (g heatGrid) Dims() (int, int) {
	rows, cols := g.m.Dims()
	return cols, rows
}

func (g heatGrid) Z(c, r int) float64 { return g.m.At(r, c) }
func (g heatGrid) X(c int) float64    { return g.x[c] }
func (g heatGrid) Y(r int) float64    { return float64(g.m.Frames[r]) }

// HistogramPlot draws m as a heat map of counts over value and frame.
func HistogramPlot(m *histo.Matrix, component string) (*plot.Plot, error) {
	rows, _ := m.Dims()
	if rows == 0 {
		return nil, histo.ErrNoData
	}

	grid := heatGrid{m: m, x: m.Centers()}
	h := plotter.NewHeatMap(grid, palette.Heat(16, 1))
	if h.Max == h.Min {
		h.Max = h.Min + 1
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s distribution", component)
	p.X.Label.Text = component
	p.Y.Label.Text = "Frame"
	p.Add(h)
	return p, nil
}

// SavePlot writes p to path; the extension picks the format (png, svg,
// pdf, eps).
func SavePlot(p *plot.Plot, path string) error {
	return p.Save(PlotWidth, PlotHeight, path)
}
