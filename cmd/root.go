package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/adapters/pds"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/adapters/pdsweb"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/services"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/pkg/archive"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/pkg/config"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/pkg/ui"
)

var (
	// Global application state
	appConfig  *config.Config
	appArchive *archive.Archive
	logger     zerolog.Logger

	// Adapters
	pdsClient     *pdsweb.Client
	productParser *pds.Parser

	// Services
	fetchService *services.FetchService
	indexService *services.IndexService

	verboseFlag bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gammaspec",
	Short: "Planetary gamma-ray spectrometer data toolkit",
	Long: ui.StyleTitle.Render("gammaspec") + " - Gamma Spectrometer Explorer\n\n" +
		"Fetch, index, and visualize gamma-ray spectrometer data from the\n" +
		"NASA Planetary Data System: Lunar Prospector, DAWN at Ceres, and\n" +
		"the Curiosity rover on Mars.",
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	level := zerolog.InfoLevel
	if verboseFlag {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	configPath, err := archive.DefaultConfigPath()
	if err != nil {
		return fmt.Errorf("failed to locate config: %w", err)
	}
	appConfig, err = config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	appArchive, err = archive.New(appConfig.DataRoot)
	if err != nil {
		return fmt.Errorf("failed to initialize archive: %w", err)
	}
	appArchive.IndexFile = appConfig.IndexFile
	if err := appArchive.Initialize(); err != nil {
		return fmt.Errorf("failed to prepare archive directories: %w", err)
	}

	clientCfg := pdsweb.ClientConfig{
		UserAgent:       appConfig.UserAgent,
		ListTimeout:     time.Duration(appConfig.ListTimeoutSec) * time.Second,
		DownloadTimeout: time.Duration(appConfig.DownloadTimeoutSec) * time.Second,
		MaxRetries:      uint64(appConfig.MaxRetries),
		InitialInterval: 500 * time.Millisecond,
	}
	pdsClient = pdsweb.NewClient(clientCfg)
	productParser = pds.NewParser()

	fetchService = services.NewFetchService(pdsClient, pdsClient, appArchive, logger)
	indexService = services.NewIndexService(productParser, appArchive, nil, logger)

	return nil
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}
