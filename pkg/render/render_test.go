package render

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestProject(t *testing.T) {
	tests := []struct {
		name          string
		lat, lon, r   float64
		wantX, wantY  float64
		wantZ         float64
	}{
		{"equator prime meridian", 0, 0, 1, 1, 0, 0},
		{"north pole", 90, 0, 1, 0, 0, 1},
		{"south pole", -90, 45, 1, 0, 0, -1},
		{"equator east", 0, 90, 2, 0, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, z := Project(tt.lat, tt.lon, tt.r)
			if !almostEqual(x, tt.wantX) || !almostEqual(y, tt.wantY) || !almostEqual(z, tt.wantZ) {
				t.Errorf("Project(%v, %v, %v) = (%v, %v, %v), want (%v, %v, %v)",
					tt.lat, tt.lon, tt.r, x, y, z, tt.wantX, tt.wantY, tt.wantZ)
			}
		})
	}
}

func TestProjectPreservesRadius(t *testing.T) {
	x, y, z := Project(-37.5, 215.0, 1737.4)
	r := math.Sqrt(x*x + y*y + z*z)
	if !almostEqual(r, 1737.4) {
		t.Errorf("projected point at radius %v, want 1737.4", r)
	}
}

func TestPointQueryEscapesFilename(t *testing.T) {
	row := domain.SpatialRow{Filename: "dawn 150312-150401.xml", RecordIndex: 7}
	q := PointQuery(row)
	if !strings.Contains(q, "index=7") {
		t.Errorf("query %q missing record index", q)
	}
	if strings.Contains(q, " ") {
		t.Errorf("query %q not URL-encoded", q)
	}
}

func TestRenderSpectrumProducesHTML(t *testing.T) {
	var buf bytes.Buffer
	err := RenderSpectrum(&buf, "1998_016_grs.xml", "record 0", []float64{10, 0, 3.5})
	if err != nil {
		t.Fatalf("RenderSpectrum() error = %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, "echarts") {
		t.Error("rendered page does not embed echarts")
	}
	if !strings.Contains(html, "1998_016_grs.xml") {
		t.Error("rendered page missing title")
	}
}

func TestRenderSpectrumRejectsEmptyData(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSpectrum(&buf, "t", "", nil); err == nil {
		t.Error("RenderSpectrum() expected error for empty spectrum")
	}
}

func TestRenderGlobeEmbedsClickNavigation(t *testing.T) {
	region, ok := domain.RegionByName(domain.BuiltinRegions(), "Lunar South Pole")
	if !ok {
		t.Fatal("missing builtin region")
	}
	rows := []domain.SpatialRow{
		{Mission: "LP", Filename: "1998_016_grs.xml", RecordIndex: 0, Lat: -88.1, Lon: 10.0},
	}

	var buf bytes.Buffer
	if err := RenderGlobe(&buf, region, rows); err != nil {
		t.Fatalf("RenderGlobe() error = %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, "/spectrum?") {
		t.Error("globe page missing spectrum navigation handler")
	}
	if !strings.Contains(html, "Lunar South Pole") {
		t.Error("globe page missing region title")
	}
}
