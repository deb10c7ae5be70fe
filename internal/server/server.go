// Package server exposes the ArqDB engine over a JSON HTTP API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arqdb/arqdb/pkg/engine"
)

// Server holds the HTTP interface and the underlying graph Engine.
type Server struct {
	Engine *engine.Engine

	cfg        Config
	httpServer *http.Server
}

// NewServer initializes the HTTP server using an existing Engine.
// The Engine must be opened before passing it here.
func NewServer(eng *engine.Engine, cfg Config) (*Server, error) {
	if eng == nil {
		return nil, fmt.Errorf("server: engine is nil")
	}

	s := &Server{
		Engine: eng,
		cfg:    cfg,
	}

	mux := http.NewServeMux()
	s.registerHTTPHandlers(mux)

	// Chain middlewares: Recovery -> Logging -> Auth -> Mux.
	// Order matters: Recovery must be outermost to catch everything.
	var handler http.Handler = mux
	handler = s.authMiddleware(handler)
	handler = s.LoggingMiddleware(handler)
	handler = s.RecoveryMiddleware(handler)

	// healthz and metrics stay outside the auth chain so probes and
	// scrapers work without a token
	rootMux := http.NewServeMux()
	rootMux.HandleFunc("GET /healthz", s.handleHealthz)
	rootMux.Handle("GET /metrics", promhttp.Handler())
	if cfg.PprofEnabled {
		rootMux.HandleFunc("/debug/pprof/", pprof.Index)
		rootMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		rootMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		rootMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		rootMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	rootMux.Handle("/", handler)

	s.httpServer = &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: rootMux,
	}

	return s, nil
}

// Handler returns the fully assembled HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	slog.Info("HTTP server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server startup failed: %w", err)
	}
	return nil
}

// Shutdown stops the HTTP server gracefully. It does NOT close the Engine;
// the caller owns that lifecycle.
func (s *Server) Shutdown() {
	slog.Info("Starting graceful shutdown of HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
