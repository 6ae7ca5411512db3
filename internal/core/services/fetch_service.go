package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/domain"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/ports"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/pkg/archive"
)

// FetchService handles retrieval of mission products from the remote archive
type FetchService struct {
	lister     ports.Lister
	downloader ports.Downloader
	archive    *archive.Archive
	log        zerolog.Logger
}

// NewFetchService creates a new fetch service
func NewFetchService(lister ports.Lister, downloader ports.Downloader, arc *archive.Archive, log zerolog.Logger) *FetchService {
	return &FetchService{
		lister:     lister,
		downloader: downloader,
		archive:    arc,
		log:        log,
	}
}

// FetchRequest represents a request to mirror one mission's products
type FetchRequest struct {
	Mission domain.Mission
	// Start and End bound the observation window; zero values leave that
	// side unconstrained.
	Start time.Time
	End   time.Time
}

// FetchResponse represents the outcome of a fetch run
type FetchResponse struct {
	Listed     int
	Matched    int
	Downloaded int
	Failed     int
	Duration   string
}

// Execute lists the mission's archive directory, matches label/data pairs,
// applies the date window, and downloads each pair. A failed file is logged
// and the record's remaining files are still attempted, so a partial record
// can be completed by a later re-run; one bad product never aborts the run.
func (s *FetchService) Execute(ctx context.Context, req FetchRequest) (*FetchResponse, error) {
	started := time.Now()

	hrefs, err := s.lister.List(ctx, req.Mission.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list archive for %s: %w", req.Mission.Label, err)
	}

	records := req.Mission.MatchRecords(hrefs)
	records = domain.FilterByDate(records, req.Start, req.End)

	destDir := s.archive.MissionDataPath(req.Mission)
	resp := &FetchResponse{
		Listed:  len(hrefs),
		Matched: len(records),
	}

	for i, rec := range records {
		s.log.Info().
			Str("mission", req.Mission.Code).
			Str("record", rec.Key).
			Msgf("[%d/%d] fetching", i+1, len(records))

		failed := false
		for _, remote := range rec.Files {
			dest := filepath.Join(destDir, filepath.Base(remote))
			if err := s.downloader.Download(ctx, req.Mission.BaseURL, remote, dest); err != nil {
				s.log.Warn().Err(err).Str("file", remote).Msg("download failed")
				failed = true
			}
		}
		if failed {
			resp.Failed++
			continue
		}
		resp.Downloaded++
	}

	resp.Duration = time.Since(started).Round(time.Millisecond).String()
	return resp, nil
}
