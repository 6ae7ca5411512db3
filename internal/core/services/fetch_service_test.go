package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/domain"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/pkg/archive"
)

type fakeLister struct {
	hrefs []string
	err   error
}

func (f *fakeLister) List(ctx context.Context, baseURL string) ([]string, error) {
	return f.hrefs, f.err
}

type fakeDownloader struct {
	downloaded []string
	failPaths  map[string]bool
}

func (f *fakeDownloader) Download(ctx context.Context, baseURL, remotePath, destPath string) error {
	if f.failPaths[remotePath] {
		return errors.New("transfer failed")
	}
	f.downloaded = append(f.downloaded, remotePath)
	return nil
}

func testArchive(t *testing.T) *archive.Archive {
	t.Helper()
	a, err := archive.New(filepath.Join(t.TempDir(), "archive"))
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func lunarProspector(t *testing.T) domain.Mission {
	t.Helper()
	m, ok := domain.MissionByFolder("Moon")
	if !ok {
		t.Fatal("missing Lunar Prospector mission")
	}
	return m
}

func TestFetchDownloadsMatchedPairs(t *testing.T) {
	lister := &fakeLister{hrefs: []string{
		"1998_016_grs.xml",
		"1998_016_grs.dat",
		"1998_017_grs.xml",
		"1998_017_grs.dat",
		"readme.txt",
	}}
	dl := &fakeDownloader{}
	svc := NewFetchService(lister, dl, testArchive(t), zerolog.Nop())

	resp, err := svc.Execute(context.Background(), FetchRequest{Mission: lunarProspector(t)})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if resp.Matched != 2 {
		t.Errorf("Matched = %d, want 2", resp.Matched)
	}
	if resp.Downloaded != 2 {
		t.Errorf("Downloaded = %d, want 2", resp.Downloaded)
	}
	if len(dl.downloaded) != 4 {
		t.Errorf("downloaded %d files, want 4 (label + data per record)", len(dl.downloaded))
	}
	// Label always comes before its data file.
	if dl.downloaded[0] != "1998_016_grs.xml" || dl.downloaded[1] != "1998_016_grs.dat" {
		t.Errorf("download order = %v", dl.downloaded[:2])
	}
}

func TestFetchAppliesDateWindow(t *testing.T) {
	lister := &fakeLister{hrefs: []string{
		"1998_016_grs.xml", "1998_016_grs.dat",
		"1999_100_grs.xml", "1999_100_grs.dat",
	}}
	dl := &fakeDownloader{}
	svc := NewFetchService(lister, dl, testArchive(t), zerolog.Nop())

	resp, err := svc.Execute(context.Background(), FetchRequest{
		Mission: lunarProspector(t),
		Start:   time.Date(1998, 1, 1, 0, 0, 0, 0, time.UTC),
		End:     time.Date(1998, 12, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if resp.Matched != 1 {
		t.Errorf("Matched = %d, want 1 after date filter", resp.Matched)
	}
	if resp.Downloaded != 1 {
		t.Errorf("Downloaded = %d, want 1", resp.Downloaded)
	}
}

func TestFetchSkipsFailedRecordAndContinues(t *testing.T) {
	lister := &fakeLister{hrefs: []string{
		"1998_016_grs.xml", "1998_016_grs.dat",
		"1998_017_grs.xml", "1998_017_grs.dat",
	}}
	dl := &fakeDownloader{failPaths: map[string]bool{"1998_016_grs.xml": true}}
	svc := NewFetchService(lister, dl, testArchive(t), zerolog.Nop())

	resp, err := svc.Execute(context.Background(), FetchRequest{Mission: lunarProspector(t)})
	if err != nil {
		t.Fatalf("Execute() error = %v, one bad record must not abort the run", err)
	}

	if resp.Failed != 1 {
		t.Errorf("Failed = %d, want 1", resp.Failed)
	}
	if resp.Downloaded != 1 {
		t.Errorf("Downloaded = %d, want 1", resp.Downloaded)
	}

	// The failed label must not abandon its partner: the data file is still
	// fetched, so a re-run only has the label left to retry.
	got := map[string]bool{}
	for _, f := range dl.downloaded {
		got[f] = true
	}
	if !got["1998_016_grs.dat"] {
		t.Errorf("partner file not attempted after label failure, downloaded = %v", dl.downloaded)
	}
	if len(dl.downloaded) != 3 {
		t.Errorf("downloaded %d files, want 3", len(dl.downloaded))
	}
}

func TestFetchPropagatesListingErrors(t *testing.T) {
	lister := &fakeLister{err: errors.New("connection refused")}
	svc := NewFetchService(lister, &fakeDownloader{}, testArchive(t), zerolog.Nop())

	if _, err := svc.Execute(context.Background(), FetchRequest{Mission: lunarProspector(t)}); err == nil {
		t.Error("Execute() expected error when listing fails")
	}
}
