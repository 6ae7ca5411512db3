package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/domain"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/pkg/render"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/pkg/selection"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/pkg/ui"
)

var (
	plotMissionFlag string
	plotFilesFlag   string
	plotOutFlag     string
	plotOpenFlag    bool
	plotListFlag    bool
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render spectrum charts from downloaded products",
	Long: `Render gamma spectra as HTML charts.

Files are numbered in sorted order (see --list). --files selects by
expression: a comma list with ranges ("1,3,5-7", 1-based); out-of-range
and malformed elements are dropped. Without --files a fuzzy finder
picks a single product. Multiple files render one page with a chart
per file.`,
	RunE: runPlot,
}

func init() {
	plotCmd.Flags().StringVarP(&plotMissionFlag, "mission", "m", "", "restrict to one mission (1-3 or folder name)")
	plotCmd.Flags().StringVarP(&plotFilesFlag, "files", "f", "", "file selection expression, e.g. \"1,3,5-7\"")
	plotCmd.Flags().BoolVarP(&plotListFlag, "list", "l", false, "list the numbered files and exit")
	plotCmd.Flags().StringVarP(&plotOutFlag, "out", "o", "", "output HTML path (default: archive plots directory)")
	plotCmd.Flags().BoolVar(&plotOpenFlag, "open", false, "open the chart in the default browser")
}

func runPlot(cmd *cobra.Command, args []string) error {
	labels, err := labelCandidates(plotMissionFlag)
	if err != nil {
		fmt.Println(ui.FormatError(err.Error()))
		return nil
	}
	if len(labels) == 0 {
		fmt.Println(ui.FormatWarning("No downloaded products found. Run 'gammaspec fetch' first."))
		return nil
	}

	if plotListFlag {
		printNumberedLabels(labels)
		return nil
	}

	chosen := chooseFiles(labels, plotFilesFlag)
	if chosen == nil {
		picked, ok := pickLabel(labels)
		if !ok {
			return nil
		}
		chosen = []string{picked}
	}

	var items []render.SpectrumItem
	for _, labelPath := range chosen {
		product, err := productParser.Parse(labelPath)
		if err != nil {
			fmt.Println(ui.FormatWarning("Skipping " + filepath.Base(labelPath) + ": " + err.Error()))
			continue
		}
		counts := product.TotalSpectrum()
		if counts == nil {
			fmt.Println(ui.FormatWarning("Skipping " + filepath.Base(labelPath) + ": no spectrum data"))
			continue
		}
		items = append(items, render.SpectrumItem{
			Title:    filepath.Base(labelPath),
			Subtitle: fmt.Sprintf("all %d records", product.Records()),
			Counts:   counts,
		})
	}
	if len(items) == 0 {
		fmt.Println(ui.FormatWarning("Nothing to plot."))
		return nil
	}

	outPath := plotOutFlag
	if outPath == "" {
		if len(items) == 1 {
			stem := strings.TrimSuffix(items[0].Title, filepath.Ext(items[0].Title))
			outPath = appArchive.PlotPath(stem + ".html")
		} else {
			outPath = appArchive.PlotPath("spectra.html")
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer f.Close()

	if err := render.RenderSpectrumPage(f, items); err != nil {
		return err
	}

	fmt.Println(ui.FormatSuccess(fmt.Sprintf("%d chart(s) written to %s", len(items), outPath)))
	if plotOpenFlag {
		if err := OpenFile(outPath); err != nil {
			fmt.Println(ui.FormatWarning(err.Error()))
		}
	}
	return nil
}

// chooseFiles applies a 1-based selection expression to the sorted label
// list. A nil return means no expression was given; an expression that
// selects nothing falls back to interactive choice as well.
func chooseFiles(labels []string, expr string) []string {
	if expr == "" {
		return nil
	}
	picked := selection.Parse(expr, len(labels))
	if len(picked) == 0 {
		return nil
	}
	out := make([]string, 0, len(picked))
	for _, i := range picked {
		out = append(out, labels[i])
	}
	return out
}

func printNumberedLabels(labels []string) {
	fmt.Println(ui.FormatTitle(fmt.Sprintf("Products (%d)", len(labels))))
	for i, l := range labels {
		fmt.Printf("  %3d. %s\n", i+1, filepath.Base(l))
	}
}

// labelCandidates lists downloaded labels, optionally for one mission.
func labelCandidates(missionFlag string) ([]string, error) {
	if missionFlag == "" {
		return allLabels(), nil
	}
	m, ok := resolveMissionFlag(missionFlag)
	if !ok {
		return nil, fmt.Errorf("unknown mission: %s", missionFlag)
	}
	return labelsIn(appArchive.MissionDataPath(m)), nil
}

func resolveMissionFlag(flag string) (domain.Mission, bool) {
	if m, ok := domain.MissionByChoice(flag); ok {
		return m, true
	}
	return domain.MissionByFolder(flag)
}

func pickLabel(labels []string) (string, bool) {
	idx, err := fuzzyfinder.Find(
		labels,
		func(i int) string { return filepath.Base(labels[i]) },
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return "Plot spectrum\n\nFile: " + filepath.Base(labels[i]) +
				"\nPath: " + labels[i]
		}),
	)
	if err != nil {
		return "", false
	}
	return labels[idx], true
}

// allLabels lists every downloaded label file across all missions, sorted.
func allLabels() []string {
	var labels []string
	for _, m := range domain.Missions() {
		labels = append(labels, labelsIn(appArchive.MissionDataPath(m))...)
	}
	sort.Strings(labels)
	return labels
}

func labelsIn(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var labels []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".xml") {
			labels = append(labels, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(labels)
	return labels
}
