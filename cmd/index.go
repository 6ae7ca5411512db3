package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/adapters/store"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/services"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/pkg/ui"
)

var indexDBFlag string

var indexCmd = &cobra.Command{
	Use:     "index",
	Aliases: []string{"reindex"},
	Short:   "Rebuild the spatial index from downloaded products",
	Long: `Walk every mission's local data directory and rebuild the spatial
index CSV from scratch. Each geolocated record becomes one index row;
files without usable coordinate columns are skipped with a diagnostic.

With --db the index is also mirrored into a SQLite database, one run
row per rebuild.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&indexDBFlag, "db", "", "also mirror the index into this SQLite database")
}

func runIndex(cmd *cobra.Command, args []string) error {
	svc := indexService
	if indexDBFlag != "" {
		db, err := store.Open(indexDBFlag)
		if err != nil {
			return err
		}
		defer db.Close()
		svc = services.NewIndexService(productParser, appArchive, db, logger)
	}

	fmt.Println(ui.FormatInfo("Rebuilding spatial index..."))

	resp, err := svc.Execute(getContext(), services.BuildIndexRequest{})
	if err != nil {
		return err
	}

	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Indexed %d samples from %d files in %s",
		resp.Rows, resp.Files, resp.Duration)))
	if resp.SkippedFiles > 0 {
		fmt.Println(ui.FormatWarning(fmt.Sprintf("%d files skipped (no usable geolocation)", resp.SkippedFiles)))
	}
	if resp.DroppedSamples > 0 {
		fmt.Println(ui.FormatMuted(fmt.Sprintf("%d samples dropped (missing coordinates)", resp.DroppedSamples)))
	}
	fmt.Println(ui.FormatMuted("Index: " + appArchive.IndexPath()))
	return nil
}
