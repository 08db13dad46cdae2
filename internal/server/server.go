// Package server exposes the converter over HTTP with per-session uploads and outputs.
package server

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"contour-sketch/internal/config"
	"contour-sketch/internal/logger"
	"contour-sketch/internal/models"
	"contour-sketch/internal/pipeline"

	"golang.org/x/sync/errgroup"
)

//go:embed static/index.html
var indexPage []byte

type Server struct {
	cfg       config.ServerConfig
	defaults  models.ConversionParams
	converter *pipeline.Converter
	sessions  *SessionStore
	janitor   *Janitor
	logger    logger.Logger
	http      *http.Server
}

// New prepares the upload and output directories and wires the routes.
func New(cfg *config.Config, converter *pipeline.Converter, log logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.Nop()
	}
	for _, dir := range []string{cfg.Server.UploadDir, cfg.Server.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	sessions := NewSessionStore(cfg.Server.OutputDir)
	s := &Server{
		cfg:       cfg.Server,
		defaults:  cfg.Conversion,
		converter: converter,
		sessions:  sessions,
		janitor: NewJanitor(sessions, cfg.Server.FileTTL, cfg.Server.CleanupInterval, log,
			cfg.Server.UploadDir, cfg.Server.OutputDir),
		logger: log,
	}

	s.http = &http.Server{
		Addr:              net.JoinHostPort("", cfg.Server.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.indexHandler)
	mux.HandleFunc("POST /{$}", s.convertHandler)
	mux.HandleFunc("GET "+svgURL, s.svgHandler)
	mux.HandleFunc("GET /download_png", s.pngHandler)
	mux.HandleFunc("GET /health", s.healthHandler)

	return s.sessions.sessionMiddleware(mux)
}

func (s *Server) Janitor() *Janitor { return s.janitor }

// Run serves HTTP and runs the janitor until ctx is cancelled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)

	s.logger.Info("Server", "listening", map[string]interface{}{
		"addr":    ln.Addr().String(),
		"backend": s.converter.Backend(),
	})

	g.Go(func() error {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		s.janitor.Run(ctx)
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return s.Shutdown(context.Background())
	})

	return g.Wait()
}

// Shutdown stops accepting requests and waits for in-flight ones, bounded by
// the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	s.logger.Info("Server", "stopped", nil)
	return nil
}
