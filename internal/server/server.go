// Package server exposes the pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/KaramelBytes/cfbstats/internal/config"
	"github.com/KaramelBytes/cfbstats/internal/pipeline"
	"github.com/KaramelBytes/cfbstats/internal/telemetry"
)

// Server routes requests to the pipeline.
type Server struct {
	cfg     *config.Global
	pipe    *pipeline.Pipeline
	log     *zap.Logger
	metrics *telemetry.Metrics
	router  *mux.Router
}

// New builds the router. A nil metrics disables /metrics and request counting.
func New(cfg *config.Global, pipe *pipeline.Pipeline, log *zap.Logger, metrics *telemetry.Metrics) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		cfg:     cfg,
		pipe:    pipe,
		log:     log,
		metrics: metrics,
		router:  mux.NewRouter(),
	}
	s.router.Use(requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/api/pairs", s.handlePairs).Methods(http.MethodGet)
	s.router.HandleFunc("/api/stats", s.handleStats).Methods(http.MethodGet)
	s.router.HandleFunc("/api/fit/{selector}", s.handleFit).Methods(http.MethodGet)
	for _, p := range s.pipe.Pairs() {
		s.router.HandleFunc("/api/"+p.Route, s.legacyPlot(p.Selector)).Methods(http.MethodGet)
	}
	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NotFound", fmt.Sprintf("no route for %s", r.URL.Path))
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", fmt.Sprintf("%s not allowed on %s", r.Method, r.URL.Path))
	})
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on the configured address until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSec) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting server",
			zap.String("addr", s.cfg.Addr),
			zap.String("data_path", s.pipe.DataPath()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.ShutdownTimeoutSec)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}
