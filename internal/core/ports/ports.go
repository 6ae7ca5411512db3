package ports

import (
	"context"

	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/domain"
)

// Lister defines the port for reading a remote archive directory listing.
type Lister interface {
	// List fetches the listing page and returns hyperlink targets, with
	// self/parent references already removed. Connectivity errors propagate.
	List(ctx context.Context, baseURL string) ([]string, error)
}

// Downloader defines the port for retrieving one remote file to disk.
type Downloader interface {
	// Download streams the file at baseURL+remotePath to destPath.
	Download(ctx context.Context, baseURL, remotePath, destPath string) error
}

// ProductParser defines the port for opening a label/data pair.
type ProductParser interface {
	// Parse reads the label at labelPath and its sibling data file, and
	// returns the product's columns and spectra.
	Parse(labelPath string) (*domain.Product, error)
}

// IndexStore defines the port for the optional database-backed copy of the
// spatial index.
type IndexStore interface {
	// BeginRun records the start of an index build and returns its run ID.
	BeginRun(ctx context.Context) (string, error)

	// AppendRows adds index rows under the given run.
	AppendRows(ctx context.Context, runID string, rows []domain.SpatialRow) error

	// FinishRun marks the run complete with its final row count.
	FinishRun(ctx context.Context, runID string, total int) error

	// Close releases the underlying database handle.
	Close() error
}
