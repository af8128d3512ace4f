// Package server exposes the calculators and net worth snapshots over a JSON
// REST API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rpgo/finplan/internal/common"
	"github.com/rpgo/finplan/internal/config"
	"github.com/rpgo/finplan/internal/service"
)

// Server wraps the HTTP server and the calculator service it serves.
type Server struct {
	service *service.CalculatorService
	server  *http.Server
	logger  *common.Logger
	limiter *rateLimiter
}

// NewServer creates a new HTTP REST API server.
func NewServer(cfg *config.AppConfig, svc *service.CalculatorService, logger *common.Logger) *Server {
	s := &Server{
		service: svc,
		logger:  logger,
	}
	if rl := cfg.Server.RateLimit; rl.RequestsPerSecond > 0 {
		s.limiter = newRateLimiter(rl.RequestsPerSecond, rl.Burst)
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.server = &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      s.applyMiddleware(mux, cfg.Server.CORSOrigin),
		ReadTimeout:  cfg.Server.GetReadTimeout(),
		WriteTimeout: cfg.Server.GetWriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start starts the HTTP server (blocking).
func (s *Server) Start() error {
	if s.limiter != nil {
		go s.limiter.cleanupLoop()
	}
	s.logger.Info().
		Str("addr", s.server.Addr).
		Msg("Starting REST API server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.limiter != nil {
		s.limiter.Stop()
	}
	return s.server.Shutdown(ctx)
}
