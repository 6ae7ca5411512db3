// Package archive manages the local on-disk mirror of the mission archives:
// per-mission data directories, the spatial index CSV, and rendered plots.
package archive

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/domain"
)

// defaultIndexFile is the spatial index filename used when the config does
// not override it.
const defaultIndexFile = "spatial_library_full.csv"

// Archive represents the managed storage directory for gammaspec
type Archive struct {
	RootPath  string
	PlotsPath string
	// IndexFile overrides the spatial index filename; empty means the default.
	IndexFile string
}

// New creates a new Archive instance rooted at rootPath. An empty rootPath
// falls back to an XDG-compliant default.
func New(rootPath string) (*Archive, error) {
	if rootPath == "" {
		var err error
		rootPath, err = defaultRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to determine archive root: %w", err)
		}
	}
	return &Archive{
		RootPath:  rootPath,
		PlotsPath: filepath.Join(rootPath, "plots"),
	}, nil
}

// defaultRoot returns the archive root directory path
// Follows XDG Base Directory specification on Unix and uses AppData on Windows
func defaultRoot() (string, error) {
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, "gammaspec"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "gammaspec"), nil
	}

	return filepath.Join(homeDir, ".local", "share", "gammaspec"), nil
}

// DefaultConfigPath returns the config file location for the current user.
func DefaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "gammaspec", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "gammaspec-config", "config.yaml"), nil
	}

	return filepath.Join(homeDir, ".config", "gammaspec", "config.yaml"), nil
}

// Initialize creates the archive directory structure if it doesn't exist
func (a *Archive) Initialize() error {
	directories := []string{
		a.RootPath,
		a.PlotsPath,
	}
	for _, m := range domain.Missions() {
		directories = append(directories, a.MissionDataPath(m))
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// Exists checks if the archive has been initialized
func (a *Archive) Exists() bool {
	info, err := os.Stat(a.RootPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// MissionDataPath returns the directory holding a mission's downloaded
// label/data pairs.
func (a *Archive) MissionDataPath(m domain.Mission) string {
	return filepath.Join(a.RootPath, m.Folder, "data")
}

// IndexPath returns the path to the spatial index CSV.
func (a *Archive) IndexPath() string {
	name := a.IndexFile
	if name == "" {
		name = defaultIndexFile
	}
	return filepath.Join(a.RootPath, name)
}

// PlotPath returns the full path for a rendered plot file.
func (a *Archive) PlotPath(filename string) string {
	return filepath.Join(a.PlotsPath, filename)
}
