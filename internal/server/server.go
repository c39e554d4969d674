// Package server serves the comparison page and its JSON endpoints.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/inodb/vibe-dms/internal/dataset"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Defaults for Config.
const (
	DefaultHost = "0.0.0.0"
	DefaultPort = 8051
)

// Config holds listener settings.
type Config struct {
	Host string
	Port int
	// Debug mounts the runtime profiler and introspection routes under /debug.
	Debug bool
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Server serves one read-only catalog.
type Server struct {
	cfg       Config
	catalog   *dataset.Catalog
	router    *chi.Mux
	templates *template.Template
	logger    *zap.Logger
}

// New creates a server for catalog. A nil logger means no logging.
func New(cfg Config, catalog *dataset.Catalog, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	templates, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		cfg:       cfg,
		catalog:   catalog,
		router:    chi.NewRouter(),
		templates: templates,
		logger:    logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/api/datasets", s.handleDatasets)
	s.router.Get("/api/figures", s.handleFigures)

	if s.cfg.Debug {
		s.router.Mount("/debug", middleware.Profiler())
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.Bool("debug", s.cfg.Debug),
			zap.Int("datasets", s.catalog.Count()))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// logRequests logs one line per request with its status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		}()
		next.ServeHTTP(ww, r)
	})
}
