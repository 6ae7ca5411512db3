package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/services"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/web"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/pkg/ui"
)

var serveAddrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Launch the exploration dashboard",
	Long: `Serve the web dashboard: an interactive globe per region, backed by
the spatial index, with click-through to per-sample spectrum charts.

The dashboard needs an index; run 'gammaspec index' first.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddrFlag, "addr", "a", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	server, err := web.NewServer(web.ServerConfig{
		Archive: appArchive,
		Parser:  productParser,
		Regions: appConfig.Regions(),
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	if age, ok := services.IndexAge(appArchive.IndexPath()); ok {
		maxAge := time.Duration(appConfig.IndexMaxAgeHours) * time.Hour
		if maxAge > 0 && age > maxAge {
			fmt.Println(ui.FormatWarning(fmt.Sprintf(
				"Spatial index is %s old; run 'gammaspec index' to refresh it.",
				age.Round(time.Hour))))
		}
	}

	addr := serveAddrFlag
	if addr == "" {
		addr = appConfig.ServeAddr
	}

	fmt.Println(ui.FormatSatellite("Dashboard listening on " + ui.StyleBold.Render(addr)))
	fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))

	return http.ListenAndServe(addr, server.Router())
}
