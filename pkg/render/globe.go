package render

import (
	"fmt"
	"io"
	"math"
	"net/url"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/domain"
)

// sampleSeries is the clickable series name; the click handler ignores the
// body mesh.
const sampleSeries = "samples"

// Project maps a lat/lon pair in degrees onto a sphere of the given radius.
func Project(lat, lon, radius float64) (x, y, z float64) {
	phi := lat * math.Pi / 180
	lam := lon * math.Pi / 180
	x = radius * math.Cos(phi) * math.Cos(lam)
	y = radius * math.Cos(phi) * math.Sin(lam)
	z = radius * math.Sin(phi)
	return
}

// PointQuery encodes the spectrum lookup for one index row. The value rides
// along as the point name so the click handler can navigate to it.
func PointQuery(row domain.SpatialRow) string {
	q := url.Values{}
	q.Set("file", row.Filename)
	q.Set("index", fmt.Sprintf("%d", row.RecordIndex))
	return q.Encode()
}

// missionRadius resolves the body radius for an index row's mission code.
// Unknown codes draw on a unit sphere rather than being dropped.
func missionRadius(code string) float64 {
	for _, m := range domain.Missions() {
		if m.Code == code {
			return m.RadiusKm
		}
	}
	return 1
}

// GlobeChart builds a 3D scatter of the region's index rows over a wireframe
// of the planetary body. Clicking a sample navigates to its spectrum page.
func GlobeChart(region domain.Region, rows []domain.SpatialRow) *charts.Scatter3D {
	sc := charts.NewScatter3D()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    region.Name,
			Subtitle: region.Description,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithGrid3DOpts(opts.Grid3D{
			ViewControl: &opts.ViewControl{AutoRotate: opts.Bool(true), AutoRotateSpeed: 5},
		}),
	)

	radius := 1.0
	points := make([]opts.Chart3DData, 0, len(rows))
	for _, row := range rows {
		r := missionRadius(row.Mission)
		radius = r
		x, y, z := Project(row.Lat, row.Lon, r*1.002)
		points = append(points, opts.Chart3DData{
			Name:  PointQuery(row),
			Value: []interface{}{x, y, z},
		})
	}

	sc.AddSeries(sampleSeries, points,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#00e5ff"}))
	sc.AddSeries("body", bodyMesh(radius, region.MeshRes),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#555", Opacity: opts.Float(0.25)}))

	sc.AddJSFuncs(fmt.Sprintf(
		`goecharts_%s.on('click', function(p) {
			if (p.seriesName === %q && p.name) {
				window.location.href = '/spectrum?' + p.name;
			}
		});`, sc.ChartID, sampleSeries))

	return sc
}

// bodyMesh samples a sphere at the region's mesh resolution, giving the
// scatter a visual reference for the body surface.
func bodyMesh(radius float64, res int) []opts.Chart3DData {
	if res <= 0 {
		res = 48
	}
	mesh := make([]opts.Chart3DData, 0, res*res/2)
	for i := 0; i <= res/2; i++ {
		lat := -90 + 180*float64(i)/float64(res/2)
		for j := 0; j < res; j++ {
			lon := -180 + 360*float64(j)/float64(res)
			x, y, z := Project(lat, lon, radius)
			mesh = append(mesh, opts.Chart3DData{Value: []interface{}{x, y, z}})
		}
	}
	return mesh
}

// RenderGlobe writes the globe chart as a standalone HTML page.
func RenderGlobe(w io.Writer, region domain.Region, rows []domain.SpatialRow) error {
	return GlobeChart(region, rows).Render(w)
}
