package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/domain"
)

func TestArchive_MissionDataPath(t *testing.T) {
	a := &Archive{RootPath: "/srv/gammaspec"}

	tests := []struct {
		name     string
		folder   string
		expected string
	}{
		{"lunar prospector", "moon", "/srv/gammaspec/moon/data"},
		{"dawn", "ceres", "/srv/gammaspec/ceres/data"},
		{"msl", "mars", "/srv/gammaspec/mars/data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := domain.Mission{Folder: tt.folder}
			if got := a.MissionDataPath(m); got != tt.expected {
				t.Errorf("MissionDataPath(%q) = %q, want %q", tt.folder, got, tt.expected)
			}
		})
	}
}

func TestArchive_IndexPath(t *testing.T) {
	tests := []struct {
		name      string
		indexFile string
		want      string
	}{
		{"default name", "", "/srv/gammaspec/spatial_library_full.csv"},
		{"config override", "moon_only.csv", "/srv/gammaspec/moon_only.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Archive{RootPath: "/srv/gammaspec", IndexFile: tt.indexFile}
			if got := a.IndexPath(); got != tt.want {
				t.Errorf("IndexPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArchive_InitializeCreatesMissionDirectories(t *testing.T) {
	root := filepath.Join(t.TempDir(), "archive")
	a, err := New(root)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if a.Exists() {
		t.Error("Exists() = true before Initialize")
	}
	if err := a.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if !a.Exists() {
		t.Error("Exists() = false after Initialize")
	}

	for _, m := range domain.Missions() {
		dir := a.MissionDataPath(m)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("mission directory %s missing after Initialize", dir)
		}
	}
}

func TestNew_DefaultRootFromXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	a, err := New("")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	want := filepath.Join("/xdg/data", "gammaspec")
	if a.RootPath != want {
		t.Errorf("RootPath = %q, want %q", a.RootPath, want)
	}
}
