package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/domain"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/services"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/pkg/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the index whenever downloaded data changes",
	Long: `Watch every mission's data directory and rebuild the spatial index
after changes settle. Useful alongside a long-running fetch: the
dashboard picks up new samples on its next restart.

Events are debounced so a burst of downloads triggers one rebuild.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	for _, m := range domain.Missions() {
		dir := appArchive.MissionDataPath(m)
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	debounce := time.Duration(appConfig.WatchDebounceMS) * time.Millisecond

	fmt.Println(ui.FormatSatellite("Watching mission data directories"))
	fmt.Println(ui.FormatMuted(fmt.Sprintf("Rebuilds run %s after changes settle", debounce)))
	fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
	fmt.Println()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// The timer stays parked until the first event, then re-arms on each
	// subsequent one. Firing means the directory has been quiet for the
	// debounce window.
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("change detected")
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watcher error")

		case <-timer.C:
			resp, err := indexService.Execute(getContext(), services.BuildIndexRequest{})
			if err != nil {
				fmt.Println(ui.FormatError("Rebuild failed: " + err.Error()))
				continue
			}
			fmt.Println(ui.FormatSuccess(fmt.Sprintf("Reindexed: %d samples from %d files in %s",
				resp.Rows, resp.Files, resp.Duration)))

		case <-stop:
			fmt.Println()
			fmt.Println(ui.FormatInfo("Watcher stopped"))
			return nil
		}
	}
}
