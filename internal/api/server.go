// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	apihandler "github.com/quantbr/fiiscan/internal/api/handler/api"
	"github.com/quantbr/fiiscan/internal/api/response"
	"github.com/quantbr/fiiscan/internal/app"
	"github.com/quantbr/fiiscan/internal/metrics"
	"go.uber.org/zap"
)

// Server is the read-only HTTP adapter over the screening pipeline.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
}

// Config holds server configuration.
type Config struct {
	Host        string
	Port        int
	MetricsPath string // empty disables the metrics endpoint
}

// NewServer creates a new HTTP server over the given app.
func NewServer(cfg Config, a *app.App, logger *zap.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      metrics.HTTPMiddleware(a.Metrics())(mux),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
		mux:    mux,
	}

	s.setupRoutes(cfg, a)
	return s
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes(cfg Config, a *app.App) {
	funds := apihandler.NewFundsHandler(a)
	segments := apihandler.NewSegmentsHandler(a)

	s.mux.HandleFunc("GET /api/v1/funds", funds.List)
	s.mux.HandleFunc("GET /api/v1/funds/bounds", funds.Bounds)
	s.mux.HandleFunc("GET /api/v1/funds/{ticker}/peers", funds.Peers)
	s.mux.HandleFunc("GET /api/v1/segments", segments.List)
	s.mux.HandleFunc("GET /api/v1/segments/{segment}", segments.Get)
	s.mux.HandleFunc("GET /api/v1/health", s.handleHealth)

	if cfg.MetricsPath != "" {
		s.mux.Handle("GET "+cfg.MetricsPath,
			promhttp.HandlerFor(a.Metrics(), promhttp.HandlerOpts{}))
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
