package report

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/mrrlab/brickgen/codon"
)

// UsagePlot creates a bar chart of the codon rank histogram.
func UsagePlot(u codon.Usage, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Codon rank"
	p.Y.Label.Text = "Codons"

	values := make(plotter.Values, len(u.Ranks))
	names := make([]string, len(u.Ranks))
	for i, n := range u.Ranks {
		values[i] = float64(n)
		names[i] = Ordinal(i + 1)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, err
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = color.RGBA{R: 50, G: 100, B: 200, A: 255}
	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

// SaveUsagePlot saves the codon rank histogram to a file. The
// format is chosen from the extension (png, svg, pdf, ...).
func SaveUsagePlot(u codon.Usage, title, fn string) error {
	p, err := UsagePlot(u, title)
	if err != nil {
		return err
	}
	return p.Save(4*vg.Inch, 4*vg.Inch, fn)
}
