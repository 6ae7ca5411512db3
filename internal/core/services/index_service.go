package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/domain"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/ports"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/pkg/archive"
)

// IndexService rebuilds the spatial index from the downloaded products
type IndexService struct {
	parser  ports.ProductParser
	archive *archive.Archive
	store   ports.IndexStore
	log     zerolog.Logger
}

// NewIndexService creates a new index service. store may be nil; the CSV on
// disk is always the authoritative copy.
func NewIndexService(parser ports.ProductParser, arc *archive.Archive, store ports.IndexStore, log zerolog.Logger) *IndexService {
	return &IndexService{
		parser:  parser,
		archive: arc,
		store:   store,
		log:     log,
	}
}

// BuildIndexRequest represents a request to rebuild the spatial index
type BuildIndexRequest struct {
	// Reserved for future options (e.g., incremental rebuild)
}

// BuildIndexResponse represents the outcome of an index rebuild
type BuildIndexResponse struct {
	Files          int
	SkippedFiles   int
	Rows           int
	DroppedSamples int
	Duration       string
}

// Execute walks every mission's data directory and rebuilds the index from
// scratch. Files without usable geolocation are skipped with a diagnostic;
// individual NaN or physically out-of-range coordinate pairs are dropped
// silently.
func (s *IndexService) Execute(ctx context.Context, req BuildIndexRequest) (*BuildIndexResponse, error) {
	started := time.Now()
	resp := &BuildIndexResponse{}

	var rows []domain.SpatialRow
	for _, m := range domain.Missions() {
		labels, err := listLabels(s.archive.MissionDataPath(m))
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s data: %w", m.Label, err)
		}

		for _, labelPath := range labels {
			resp.Files++
			fileRows, dropped, err := s.indexFile(m, labelPath)
			if err != nil {
				s.log.Warn().Err(err).Str("file", filepath.Base(labelPath)).Msg("skipping file")
				resp.SkippedFiles++
				continue
			}
			resp.DroppedSamples += dropped
			rows = append(rows, fileRows...)
		}
	}

	if err := SaveIndex(s.archive.IndexPath(), rows); err != nil {
		return nil, err
	}

	if s.store != nil {
		if err := s.mirrorToStore(ctx, rows); err != nil {
			return nil, err
		}
	}

	resp.Rows = len(rows)
	resp.Duration = time.Since(started).Round(time.Millisecond).String()
	return resp, nil
}

// indexFile extracts the geolocated samples of one product. A missing, empty,
// or length-mismatched coordinate column disqualifies the whole file.
func (s *IndexService) indexFile(m domain.Mission, labelPath string) ([]domain.SpatialRow, int, error) {
	product, err := s.parser.Parse(labelPath)
	if err != nil {
		return nil, 0, err
	}

	lats := product.Latitudes()
	lons := product.Longitudes()
	if len(lats) == 0 || len(lons) == 0 {
		return nil, 0, fmt.Errorf("no geolocation columns in %s", filepath.Base(labelPath))
	}
	if len(lats) != len(lons) {
		return nil, 0, fmt.Errorf("coordinate columns disagree in %s: %d lat vs %d lon",
			filepath.Base(labelPath), len(lats), len(lons))
	}

	filename := filepath.Base(labelPath)
	var rows []domain.SpatialRow
	dropped := 0
	for i := range lats {
		if math.IsNaN(lats[i]) || math.IsNaN(lons[i]) {
			dropped++
			continue
		}
		row := domain.SpatialRow{
			Mission:     m.Code,
			Filename:    filename,
			RecordIndex: i,
			Lat:         domain.RoundCoord(lats[i]),
			Lon:         domain.RoundCoord(lons[i]),
		}
		if !row.Valid() {
			dropped++
			continue
		}
		rows = append(rows, row)
	}
	return rows, dropped, nil
}

func (s *IndexService) mirrorToStore(ctx context.Context, rows []domain.SpatialRow) error {
	runID, err := s.store.BeginRun(ctx)
	if err != nil {
		return err
	}
	if err := s.store.AppendRows(ctx, runID, rows); err != nil {
		return err
	}
	return s.store.FinishRun(ctx, runID, len(rows))
}

// listLabels returns the sorted label files under a mission data directory.
// A directory that does not exist yet yields an empty list, not an error.
func listLabels(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var labels []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".xml") {
			labels = append(labels, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(labels)
	return labels, nil
}

// SaveIndex writes the spatial index CSV, header first. The previous index is
// replaced whole; rebuilds are not incremental.
func SaveIndex(path string, rows []domain.SpatialRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create index file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(domain.IndexHeader); err != nil {
		return fmt.Errorf("failed to write index header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Mission,
			r.Filename,
			strconv.Itoa(r.RecordIndex),
			strconv.FormatFloat(r.Lat, 'f', -1, 64),
			strconv.FormatFloat(r.Lon, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write index row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// LoadIndex reads the spatial index CSV written by SaveIndex.
func LoadIndex(path string) ([]domain.SpatialRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse index file: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var rows []domain.SpatialRow
	for _, rec := range records[1:] {
		if len(rec) != len(domain.IndexHeader) {
			return nil, fmt.Errorf("malformed index row: %v", rec)
		}
		idx, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, fmt.Errorf("bad record index %q: %w", rec[2], err)
		}
		lat, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("bad latitude %q: %w", rec[3], err)
		}
		lon, err := strconv.ParseFloat(rec[4], 64)
		if err != nil {
			return nil, fmt.Errorf("bad longitude %q: %w", rec[4], err)
		}
		rows = append(rows, domain.SpatialRow{
			Mission:     rec[0],
			Filename:    rec[1],
			RecordIndex: idx,
			Lat:         lat,
			Lon:         lon,
		})
	}
	return rows, nil
}

// IndexAge reports how long ago the index was last rebuilt. The second return
// is false when no index exists.
func IndexAge(path string) (time.Duration, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, false
	}
	return time.Since(info.ModTime()), true
}
