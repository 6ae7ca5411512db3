package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/domain"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/services"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/pkg/ui"
)

var (
	fetchMissionFlag string
	fetchStartFlag   string
	fetchEndFlag     string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Mirror spectrometer products from a PDS archive",
	Long: `Download label/data pairs for one mission into the local archive.

Without --mission the supported missions are listed for interactive
selection. Files already present locally are skipped, so re-running
fetch resumes an interrupted mirror.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchMissionFlag, "mission", "m", "", "mission: number (1-3) or folder name (Moon, Ceres, Mars)")
	fetchCmd.Flags().StringVar(&fetchStartFlag, "start", "", "earliest observation date (YYYY-MM-DD)")
	fetchCmd.Flags().StringVar(&fetchEndFlag, "end", "", "latest observation date (YYYY-MM-DD)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	mission, ok := resolveMission(fetchMissionFlag)
	if !ok {
		if fetchMissionFlag == "" {
			fmt.Println(ui.FormatError("No mission selected"))
		} else {
			fmt.Println(ui.FormatError("Unknown mission: " + fetchMissionFlag))
		}
		return nil
	}

	startValue, endValue := fetchStartFlag, fetchEndFlag
	if fetchMissionFlag == "" && startValue == "" && endValue == "" {
		startValue = promptDate("Start date (YYYY-MM-DD, empty for all): ")
		endValue = promptDate("End date   (YYYY-MM-DD, empty for all): ")
	}

	start, ok := parseDateFlag(startValue)
	if !ok {
		fmt.Println(ui.FormatError("Invalid start date, expected YYYY-MM-DD: " + startValue))
		return nil
	}
	end, ok := parseDateFlag(endValue)
	if !ok {
		fmt.Println(ui.FormatError("Invalid end date, expected YYYY-MM-DD: " + endValue))
		return nil
	}

	fmt.Println(ui.FormatSatellite("Fetching " + ui.StyleBold.Render(mission.Label)))
	fmt.Println(ui.FormatMuted("Archive: " + mission.BaseURL))
	fmt.Println()

	resp, err := fetchService.Execute(getContext(), services.FetchRequest{
		Mission: mission,
		Start:   start,
		End:     end,
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Fetched %d of %d matched records in %s",
		resp.Downloaded, resp.Matched, resp.Duration)))
	if resp.Failed > 0 {
		fmt.Println(ui.FormatWarning(fmt.Sprintf("%d records failed, re-run fetch to retry", resp.Failed)))
	}
	fmt.Println(ui.FormatInfo("Run 'gammaspec index' to rebuild the spatial index"))
	return nil
}

// resolveMission maps a flag value to a mission, prompting when empty.
func resolveMission(flag string) (domain.Mission, bool) {
	if flag == "" {
		return promptMission()
	}
	if m, ok := domain.MissionByChoice(flag); ok {
		return m, true
	}
	return domain.MissionByFolder(flag)
}

func promptMission() (domain.Mission, bool) {
	fmt.Println(ui.FormatTitle("Select a mission"))
	for i, m := range domain.Missions() {
		fmt.Printf("  %d. %s %s\n", i+1, m.Label, ui.FormatMuted("("+m.DateRange+")"))
	}
	fmt.Print(ui.StyleAccent.Render("Choice: "))

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return domain.Mission{}, false
	}
	return domain.MissionByChoice(strings.TrimSpace(line))
}

func promptDate(label string) string {
	fmt.Print(ui.StyleAccent.Render(label))
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

// parseDateFlag parses an optional YYYY-MM-DD flag; empty means unconstrained.
func parseDateFlag(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, true
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
