package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/4tenlab/prism-insight/pkg/logger"
)

// Server serves published signal reports over HTTP
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
}

// New wires the router into an HTTP server on the given port.
// 리포트는 수 KB 수준의 JSON이라 읽기/쓰기 타임아웃을 짧게 잡는다.
func New(port string, log *logger.Logger, router http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + port,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		logger: log,
	}
}

// Start blocks serving requests until Shutdown is called
func (s *Server) Start() error {
	s.logger.WithFields(map[string]interface{}{
		"addr": s.httpServer.Addr,
	}).Info("Starting signal API server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("signal API server failed: %w", err)
	}

	return nil
}

// Shutdown drains in-flight requests and stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down signal API server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown signal API server: %w", err)
	}

	return nil
}
