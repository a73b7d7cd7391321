// Package explorer serves a small local HTTP API over the lookup file so a
// browser-based asset explorer can browse and search converted images.
package explorer

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"inlay/internal/logging"
	"inlay/internal/lookup"
)

// Server exposes the lookup over HTTP. The lookup is reloaded whenever its
// file changes on disk, so a converter re-run shows up without a restart.
type Server struct {
	lookupPath string
	staticDir  string
	logger     *slog.Logger

	echo *echo.Echo

	mu      sync.Mutex
	file    *lookup.File
	modTime time.Time
}

// New constructs a server for the given lookup file. staticDir may be empty
// to disable static file serving.
func New(lookupPath, staticDir string, logger *slog.Logger) *Server {
	s := &Server{
		lookupPath: lookupPath,
		staticDir:  staticDir,
		logger:     logging.NewComponentLogger(logger, "explorer"),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	e.GET("/healthz", s.handleHealth)
	api := e.Group("/api")
	api.GET("/summary", s.handleSummary)
	api.GET("/lookup", s.handleLookup)
	api.GET("/search", s.handleSearch)
	api.GET("/asset/:key", s.handleAsset)

	if staticDir != "" {
		e.Static("/", staticDir)
	}

	s.echo = e
	return s
}

// Handler returns the underlying HTTP handler, used directly by tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until Shutdown or a listener error.
func (s *Server) Start(bind string) error {
	s.logger.Info("explorer listening", logging.String("bind", bind))
	err := s.echo.Start(bind)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// current returns the lookup, reloading it when the file changed on disk.
func (s *Server) current() (*lookup.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Stat(s.lookupPath)
	if err != nil {
		return nil, err
	}
	if s.file != nil && info.ModTime().Equal(s.modTime) {
		return s.file, nil
	}

	file, err := lookup.Load(s.lookupPath)
	if err != nil {
		return nil, err
	}
	s.file = file
	s.modTime = info.ModTime()
	s.logger.Debug("lookup reloaded",
		logging.String("path", s.lookupPath),
		logging.Int("entries", len(file.Images)))
	return file, nil
}
