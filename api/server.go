package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

type ServerConfig struct {
	Port         int
	CorsOrigins  []string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server represents the API server
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// NewRouter wires the routes and middleware around processor.
func NewRouter(processor Processor, corsOrigins []string, logger *zap.Logger) http.Handler {
	h := NewHandlers(processor, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("POST /process/{$}", h.Process)
	mux.HandleFunc("GET /health", h.Health)

	var handler http.Handler = mux
	handler = withAccessLog(logger, handler)
	handler = withRequestID(handler)
	handler = withCORS(corsOrigins, handler)
	return handler
}

func NewServer(cfg ServerConfig, processor Processor, logger *zap.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              net.JoinHostPort("", strconv.Itoa(cfg.Port)),
			Handler:           NewRouter(processor, cfg.CorsOrigins, logger),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       120 * time.Second,
		},
		logger: logger,
	}
}

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting API server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown waits for in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.httpServer.Shutdown(ctx)
}
