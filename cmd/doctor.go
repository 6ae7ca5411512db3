package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/domain"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/services"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/pkg/archive"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/pkg/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of your gammaspec setup",
	Long: `Diagnose issues with the local archive.

Checks for:
  - Archive directory integrity
  - Configuration file existence
  - Per-mission data presence
  - Spatial index presence and freshness`,
	Run: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) {
	fmt.Println(ui.FormatTitle("🩺 gammaspec doctor"))
	fmt.Println()

	checkStep("Archive Directory", func() error {
		if !appArchive.Exists() {
			return fmt.Errorf("not found at %s", appArchive.RootPath)
		}
		return nil
	})

	for _, m := range domain.Missions() {
		mission := m
		checkStep(mission.Label+" Data", func() error {
			dir := appArchive.MissionDataPath(mission)
			entries, err := os.ReadDir(dir)
			if err != nil {
				return fmt.Errorf("missing at %s", dir)
			}
			if len(entries) == 0 {
				return fmt.Errorf("empty (run 'gammaspec fetch --mission %s')", mission.Folder)
			}
			return nil
		})
	}

	checkStep("Configuration File", func() error {
		path, err := archive.DefaultConfigPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("missing at %s (defaults apply)", path)
		}
		return nil
	})

	checkStep("Spatial Index", func() error {
		age, ok := services.IndexAge(appArchive.IndexPath())
		if !ok {
			return fmt.Errorf("missing (run 'gammaspec index')")
		}
		maxAge := time.Duration(appConfig.IndexMaxAgeHours) * time.Hour
		if age > maxAge {
			return fmt.Errorf("stale: built %s ago (run 'gammaspec index')", age.Round(time.Hour))
		}
		return nil
	})
}

// checkStep runs a check function and prints the result nicely
func checkStep(name string, check func() error) {
	err := check()
	if err == nil {
		fmt.Printf("%s %s\n", ui.FormatSuccess("✔"), name)
	} else {
		fmt.Printf("%s %s\n", ui.FormatError("✘"), name)
		fmt.Printf("    %s\n", ui.StyleMuted.Render(err.Error()))
	}
}
