package services

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/domain"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/pkg/archive"
)

// fakeParser serves canned products keyed by label basename.
type fakeParser struct {
	products map[string]*domain.Product
}

func (f *fakeParser) Parse(labelPath string) (*domain.Product, error) {
	p, ok := f.products[filepath.Base(labelPath)]
	if !ok {
		return nil, errors.New("unreadable label")
	}
	return p, nil
}

type fakeStore struct {
	begun    bool
	finished bool
	total    int
	rows     []domain.SpatialRow
}

func (f *fakeStore) BeginRun(ctx context.Context) (string, error) {
	f.begun = true
	return "run-1", nil
}

func (f *fakeStore) AppendRows(ctx context.Context, runID string, rows []domain.SpatialRow) error {
	f.rows = append(f.rows, rows...)
	return nil
}

func (f *fakeStore) FinishRun(ctx context.Context, runID string, total int) error {
	f.finished = true
	f.total = total
	return nil
}

func (f *fakeStore) Close() error { return nil }

func geoProduct(lats, lons []float64) *domain.Product {
	return &domain.Product{
		Columns: []domain.TableColumn{
			{Name: "LATITUDE", Values: lats},
			{Name: "LONGITUDE", Values: lons},
		},
	}
}

// touchLabel drops an empty label file so the directory walk finds it; the
// fake parser supplies the content.
func touchLabel(t *testing.T, a *archive.Archive, folder, name string) {
	t.Helper()
	m, ok := domain.MissionByFolder(folder)
	if !ok {
		t.Fatalf("unknown mission folder %q", folder)
	}
	dir := a.MissionDataPath(m)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestBuildIndexRoundsAndRoundTrips(t *testing.T) {
	a := testArchive(t)
	touchLabel(t, a, "Moon", "1998_016_grs.xml")

	parser := &fakeParser{products: map[string]*domain.Product{
		"1998_016_grs.xml": geoProduct(
			[]float64{12.34567, -89.99999},
			[]float64{45.00001, 359.12345},
		),
	}}
	svc := NewIndexService(parser, a, nil, zerolog.Nop())

	resp, err := svc.Execute(context.Background(), BuildIndexRequest{})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if resp.Rows != 2 {
		t.Fatalf("Rows = %d, want 2", resp.Rows)
	}

	rows, err := LoadIndex(a.IndexPath())
	if err != nil {
		t.Fatalf("LoadIndex() error = %v", err)
	}
	want := []domain.SpatialRow{
		{Mission: "LP", Filename: "1998_016_grs.xml", RecordIndex: 0, Lat: 12.3457, Lon: 45.0},
		{Mission: "LP", Filename: "1998_016_grs.xml", RecordIndex: 1, Lat: -90.0, Lon: 359.1234},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestBuildIndexDropsNaNSamplesSilently(t *testing.T) {
	a := testArchive(t)
	touchLabel(t, a, "Moon", "1998_016_grs.xml")

	parser := &fakeParser{products: map[string]*domain.Product{
		"1998_016_grs.xml": geoProduct(
			[]float64{1.0, math.NaN(), 3.0},
			[]float64{10.0, 20.0, math.NaN()},
		),
	}}
	svc := NewIndexService(parser, a, nil, zerolog.Nop())

	resp, err := svc.Execute(context.Background(), BuildIndexRequest{})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if resp.Rows != 1 {
		t.Errorf("Rows = %d, want 1", resp.Rows)
	}
	if resp.DroppedSamples != 2 {
		t.Errorf("DroppedSamples = %d, want 2", resp.DroppedSamples)
	}
	if resp.SkippedFiles != 0 {
		t.Errorf("SkippedFiles = %d, want 0", resp.SkippedFiles)
	}
}

func TestBuildIndexSkipsFilesWithoutUsableCoordinates(t *testing.T) {
	a := testArchive(t)
	touchLabel(t, a, "Moon", "nogeo.xml")
	touchLabel(t, a, "Moon", "empty.xml")
	touchLabel(t, a, "Moon", "mismatch.xml")
	touchLabel(t, a, "Moon", "broken.xml")
	touchLabel(t, a, "Moon", "good.xml")

	parser := &fakeParser{products: map[string]*domain.Product{
		"nogeo.xml": {Columns: []domain.TableColumn{
			{Name: "COUNTS", Values: []float64{1, 2}},
		}},
		"empty.xml":    geoProduct([]float64{}, []float64{}),
		"mismatch.xml": geoProduct([]float64{1, 2, 3}, []float64{10, 20}),
		"good.xml":     geoProduct([]float64{5}, []float64{6}),
		// broken.xml absent from the map: the parser errors on it.
	}}
	svc := NewIndexService(parser, a, nil, zerolog.Nop())

	resp, err := svc.Execute(context.Background(), BuildIndexRequest{})
	if err != nil {
		t.Fatalf("Execute() error = %v, bad files must not abort the rebuild", err)
	}
	if resp.Files != 5 {
		t.Errorf("Files = %d, want 5", resp.Files)
	}
	if resp.SkippedFiles != 4 {
		t.Errorf("SkippedFiles = %d, want 4", resp.SkippedFiles)
	}
	if resp.Rows != 1 {
		t.Errorf("Rows = %d, want 1", resp.Rows)
	}
}

func TestBuildIndexDropsOutOfRangeCoordinates(t *testing.T) {
	a := testArchive(t)
	touchLabel(t, a, "Moon", "1998_020_grs.xml")

	parser := &fakeParser{products: map[string]*domain.Product{
		"1998_020_grs.xml": geoProduct(
			[]float64{10.0, 95.0, -90.5, 20.0},
			[]float64{30.0, 40.0, 50.0, 400.0},
		),
	}}
	svc := NewIndexService(parser, a, nil, zerolog.Nop())

	resp, err := svc.Execute(context.Background(), BuildIndexRequest{})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if resp.Rows != 1 {
		t.Errorf("Rows = %d, want 1", resp.Rows)
	}
	if resp.DroppedSamples != 3 {
		t.Errorf("DroppedSamples = %d, want 3", resp.DroppedSamples)
	}
	if resp.SkippedFiles != 0 {
		t.Errorf("SkippedFiles = %d, want 0", resp.SkippedFiles)
	}
}

func TestBuildIndexMirrorsToStore(t *testing.T) {
	a := testArchive(t)
	touchLabel(t, a, "Ceres", "dawn_150312-150401.xml")

	parser := &fakeParser{products: map[string]*domain.Product{
		"dawn_150312-150401.xml": geoProduct([]float64{1, 2}, []float64{3, 4}),
	}}
	store := &fakeStore{}
	svc := NewIndexService(parser, a, store, zerolog.Nop())

	if _, err := svc.Execute(context.Background(), BuildIndexRequest{}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !store.begun || !store.finished {
		t.Error("store run lifecycle not completed")
	}
	if store.total != 2 || len(store.rows) != 2 {
		t.Errorf("store rows = %d (total %d), want 2", len(store.rows), store.total)
	}
	if store.rows[0].Mission != "DAWN" {
		t.Errorf("Mission = %q, want DAWN", store.rows[0].Mission)
	}
}

func TestBuildIndexReplacesPreviousIndex(t *testing.T) {
	a := testArchive(t)
	if err := os.MkdirAll(a.RootPath, 0755); err != nil {
		t.Fatal(err)
	}
	stale := []domain.SpatialRow{{Mission: "MSL", Filename: "old.xml", Lat: 1, Lon: 2}}
	if err := SaveIndex(a.IndexPath(), stale); err != nil {
		t.Fatal(err)
	}

	// No data directories at all: the rebuild produces an empty index.
	svc := NewIndexService(&fakeParser{}, a, nil, zerolog.Nop())
	resp, err := svc.Execute(context.Background(), BuildIndexRequest{})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if resp.Rows != 0 {
		t.Errorf("Rows = %d, want 0", resp.Rows)
	}

	rows, err := LoadIndex(a.IndexPath())
	if err != nil {
		t.Fatalf("LoadIndex() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("stale rows survived the rebuild: %+v", rows)
	}
}
