package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ColinKell02/SeniorDesign-GammaSpec/pkg/ui"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the dashboard regions",
	Long: `List the region presets the dashboard and API serve: the builtin
lunar regions plus any extra_regions from the config file.`,
	Run: runRegions,
}

func runRegions(cmd *cobra.Command, args []string) {
	table := ui.NewTable([]ui.TableColumn{
		{Header: "Name"},
		{Header: "Latitude", Align: "right"},
		{Header: "Longitude", Align: "right"},
		{Header: "Stride", Align: "right"},
		{Header: "Description"},
	})

	for _, r := range appConfig.Regions() {
		table.AddRow(
			r.Name,
			fmt.Sprintf("%.0f..%.0f", r.LatMin, r.LatMax),
			fmt.Sprintf("%.0f..%.0f", r.LonMin, r.LonMax),
			fmt.Sprintf("%d", r.Downsample),
			r.Description,
		)
	}

	fmt.Println(ui.FormatTitle(ui.IconGlobe + " Regions"))
	fmt.Println()
	fmt.Print(table.Render())
}
