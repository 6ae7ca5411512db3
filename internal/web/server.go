// Package web serves the exploration dashboard: region globes backed by the
// spatial index, with per-sample spectrum pages rendered on demand.
package web

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/domain"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/ports"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/services"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/pkg/archive"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/pkg/render"
)

// ServerConfig holds the dashboard's dependencies.
type ServerConfig struct {
	Archive *archive.Archive
	Parser  ports.ProductParser
	Regions []domain.Region
	Logger  zerolog.Logger
}

// Server answers dashboard requests against an in-memory copy of the spatial
// index. Spectra are re-parsed from disk per request, never cached.
type Server struct {
	archive *archive.Archive
	parser  ports.ProductParser
	regions []domain.Region
	rows    []domain.SpatialRow
	log     zerolog.Logger
}

// NewServer loads the spatial index and prepares the dashboard. A missing
// index is a startup error; the dashboard has nothing to show without one.
func NewServer(cfg ServerConfig) (*Server, error) {
	rows, err := services.LoadIndex(cfg.Archive.IndexPath())
	if err != nil {
		return nil, fmt.Errorf("dashboard needs a spatial index, run the index command first: %w", err)
	}
	return &Server{
		archive: cfg.Archive,
		parser:  cfg.Parser,
		regions: cfg.Regions,
		rows:    rows,
		log:     cfg.Logger,
	}, nil
}

// Router builds the dashboard's route table.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/", s.handleHome)
	r.Get("/globe", s.handleGlobe)
	r.Get("/spectrum", s.handleSpectrum)
	r.Get("/api/regions", s.handleRegions)
	r.Get("/api/points", s.handlePoints)

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(started)).
			Msg("request")
	})
}

var homeTemplate = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html>
<head><title>gammaspec</title></head>
<body>
<h1>Gamma Spectrometer Explorer</h1>
<p>{{.Rows}} indexed samples.</p>
<ul>
{{range .Regions}}
<li><a href="/globe?region={{.Name}}">{{.Name}}</a> &mdash; {{.Description}}</li>
{{end}}
</ul>
</body>
</html>
`))

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := homeTemplate.Execute(w, map[string]interface{}{
		"Regions": s.regions,
		"Rows":    len(s.rows),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to render home page")
	}
}

func (s *Server) handleGlobe(w http.ResponseWriter, r *http.Request) {
	region, ok := domain.RegionByName(s.regions, r.URL.Query().Get("region"))
	if !ok {
		http.Error(w, "unknown region", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.RenderGlobe(w, region, region.Filter(s.rows)); err != nil {
		s.log.Error().Err(err).Str("region", region.Name).Msg("failed to render globe")
	}
}

func (s *Server) handleSpectrum(w http.ResponseWriter, r *http.Request) {
	file := r.URL.Query().Get("file")
	if file == "" || file != filepath.Base(file) {
		http.Error(w, "bad file parameter", http.StatusBadRequest)
		return
	}
	index, err := strconv.Atoi(r.URL.Query().Get("index"))
	if err != nil || index < 0 {
		http.Error(w, "bad index parameter", http.StatusBadRequest)
		return
	}

	labelPath, ok := s.findLabel(file)
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	product, err := s.parser.Parse(labelPath)
	if err != nil {
		s.log.Error().Err(err).Str("file", file).Msg("failed to parse product")
		http.Error(w, "failed to parse product", http.StatusInternalServerError)
		return
	}

	counts := product.SpectrumAt(index)
	if counts == nil {
		http.Error(w, "no spectrum at that record", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	subtitle := fmt.Sprintf("record %d", index)
	if err := render.RenderSpectrum(w, file, subtitle, counts); err != nil {
		s.log.Error().Err(err).Str("file", file).Msg("failed to render spectrum")
	}
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.regions)
}

func (s *Server) handlePoints(w http.ResponseWriter, r *http.Request) {
	region, ok := domain.RegionByName(s.regions, r.URL.Query().Get("region"))
	if !ok {
		http.Error(w, "unknown region", http.StatusNotFound)
		return
	}
	rows := region.Filter(s.rows)
	if rows == nil {
		rows = []domain.SpatialRow{}
	}
	writeJSON(w, rows)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// findLabel locates an indexed label file in the mission data directories.
// Index rows store basenames only, so the mission is recovered by probing.
func (s *Server) findLabel(file string) (string, bool) {
	if strings.Contains(file, "..") {
		return "", false
	}
	for _, m := range domain.Missions() {
		p := filepath.Join(s.archive.MissionDataPath(m), file)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}
