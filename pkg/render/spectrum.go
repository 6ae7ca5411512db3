// Package render builds the HTML charts: per-record gamma spectra and the
// 3D globe of indexed sample locations.
package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// spectrumFloor replaces non-positive counts; a log axis cannot render zero.
const spectrumFloor = 0.5

// SpectrumChart builds a log-scale line chart of counts per channel.
func SpectrumChart(title, subtitle string, counts []float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Channel"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Counts", Type: "log"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	channels := make([]int, len(counts))
	data := make([]opts.LineData, len(counts))
	for i, v := range counts {
		channels[i] = i
		if v <= 0 {
			v = spectrumFloor
		}
		data[i] = opts.LineData{Value: v}
	}

	line.SetXAxis(channels).
		AddSeries("counts", data,
			charts.WithLineChartOpts(opts.LineChart{Symbol: "none"}))
	return line
}

// RenderSpectrum writes the spectrum chart as a standalone HTML page.
func RenderSpectrum(w io.Writer, title, subtitle string, counts []float64) error {
	if len(counts) == 0 {
		return fmt.Errorf("no spectrum data to render")
	}
	return SpectrumChart(title, subtitle, counts).Render(w)
}

// SpectrumItem is one chart on a multi-spectrum page.
type SpectrumItem struct {
	Title    string
	Subtitle string
	Counts   []float64
}

// RenderSpectrumPage writes one HTML page holding a chart per item.
func RenderSpectrumPage(w io.Writer, items []SpectrumItem) error {
	if len(items) == 0 {
		return fmt.Errorf("no spectrum data to render")
	}
	page := components.NewPage()
	page.PageTitle = "gammaspec spectra"
	for _, it := range items {
		page.AddCharts(SpectrumChart(it.Title, it.Subtitle, it.Counts))
	}
	return page.Render(w)
}
