package report

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"channel-stats/internal/models"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Chart size; the document embeds the image at the same size.
const (
	chartWidthInches  = 6.0
	chartHeightInches = 3.0
)

var lineColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}

// viewsSeries returns (publish time, views) points in time order, skipping
// rows with no timestamp or a non-numeric view count.
func viewsSeries(table *models.VideoTable) plotter.XYs {
	pts := make(plotter.XYs, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		if table.PublishedAt[i].IsZero() || math.IsNaN(table.Views[i]) || math.IsInf(table.Views[i], 0) {
			continue
		}
		pts = append(pts, plotter.XY{
			X: float64(table.PublishedAt[i].Unix()),
			Y: table.Views[i],
		})
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].X < pts[j].X })
	return pts
}

// RenderViewsChart draws the views column against publish time and saves it
// as an image; the format follows the file extension.
func RenderViewsChart(table *models.VideoTable, path string) error {
	p := plot.New()
	p.Title.Text = "Views Over Time"
	p.X.Label.Text = "Published"
	p.Y.Label.Text = "Views"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Add(plotter.NewGrid())

	pts := viewsSeries(table)
	if len(pts) > 0 {
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("failed to build views line: %w", err)
		}
		line.Color = lineColor
		line.Width = vg.Points(1.5)
		p.Add(line)
	}

	if err := p.Save(chartWidthInches*vg.Inch, chartHeightInches*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save chart %s: %w", path, err)
	}
	return nil
}
