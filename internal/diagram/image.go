package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	colorOK     = color.RGBA{R: 46, G: 139, B: 87, A: 255}
	colorFail   = color.RGBA{R: 205, G: 55, B: 55, A: 255}
	colorLimit  = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	colorSweep  = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	colorMarker = color.RGBA{R: 255, G: 165, B: 0, A: 255}
)

// ExportUtilizationChart exports a bar chart of the family utilizations to
// an image file and returns the path written. Failed families are drawn as
// empty slots.
func ExportUtilizationChart(data UtilizationData, filename string) (string, error) {
	if len(data.Bars) == 0 {
		return "", fmt.Errorf("no families to plot")
	}

	p := plot.New()
	p.Title.Text = data.Title
	if p.Title.Text == "" {
		p.Title.Text = "Connection Utilization"
	}
	p.Y.Label.Text = "Utilization (%)"
	p.Y.Min = 0

	names := make([]string, len(data.Bars))
	top := 100.0
	w := vg.Points(40)

	for i, b := range data.Bars {
		names[i] = b.Label
		if b.Failed {
			names[i] = b.Label + " (n/a)"
			continue
		}
		top = max(top, b.Utilization)

		// One chart per bar so that each can carry its own colour
		values := make(plotter.Values, len(data.Bars))
		values[i] = b.Utilization
		bars, err := plotter.NewBarChart(values, w)
		if err != nil {
			return "", err
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = colorOK
		if !b.Compliant {
			bars.Color = colorFail
		}
		p.Add(bars)
	}
	p.NominalX(names...)
	p.Y.Max = top * 1.1

	// 100 % limit line
	limit, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: 100},
		{X: float64(len(data.Bars)) - 0.5, Y: 100},
	})
	if err != nil {
		return "", err
	}
	limit.LineStyle.Width = vg.Points(1.5)
	limit.LineStyle.Color = colorLimit
	limit.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(limit)
	p.Legend.Add("100 % limit", limit)

	return save(p, 8*vg.Inch, 5*vg.Inch, filename)
}

// ExportSweepChart exports a capacity-versus-diameter curve. The point at
// highlight (mm), if inside the sweep, is marked. It returns the path written.
func ExportSweepChart(data SweepData, highlight float64, filename string) (string, error) {
	if len(data.Values) == 0 || len(data.Values) != len(data.Diameters) {
		return "", fmt.Errorf("sweep has %d diameters and %d values", len(data.Diameters), len(data.Values))
	}

	p := plot.New()
	p.Title.Text = data.Caption
	p.X.Label.Text = "Diameter (mm)"
	p.Y.Label.Text = "Design resistance (N)"

	pts := make(plotter.XYs, len(data.Values))
	for i := range data.Values {
		pts[i] = plotter.XY{X: data.Diameters[i], Y: data.Values[i]}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return "", err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = colorSweep
	p.Add(line)

	for i, d := range data.Diameters {
		if d != highlight {
			continue
		}
		mark, err := plotter.NewScatter(plotter.XYs{pts[i]})
		if err != nil {
			return "", err
		}
		mark.GlyphStyle.Color = colorMarker
		mark.GlyphStyle.Radius = vg.Points(5)
		p.Add(mark)

		lbl, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{pts[i]},
			Labels: []string{fmt.Sprintf("  d=%gmm: %.0f N", d, data.Values[i])},
		})
		if err != nil {
			return "", err
		}
		p.Add(lbl)
	}

	return save(p, 8*vg.Inch, 5*vg.Inch, filename)
}

// save writes the plot in the format given by the file extension, falling
// back to PNG for unknown extensions, and returns the path written
func save(p *plot.Plot, width, height vg.Length, filename string) (string, error) {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg", ".eps", ".tif", ".tiff":
	default:
		filename += ".png"
	}
	return filename, p.Save(width, height, filename)
}
