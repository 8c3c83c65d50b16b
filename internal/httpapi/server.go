package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/honeycarbs/jobmarket-tracker/pkg/logging"
)

// Server owns the HTTP listener for the REST API and MCP stream
type Server struct {
	logger *logging.Logger

	srv     *http.Server
	started atomic.Bool
}

// NewServer binds handler to host:port
func NewServer(log *logging.Logger, host, port string, handler http.Handler) *Server {
	return &Server{
		logger: log,
		srv: &http.Server{
			Addr:              net.JoinHostPort(host, port),
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Addr is the configured listen address
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Run starts the HTTP server and blocks until shutdown
func (s *Server) Run() error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	s.logger.Info("HTTP server listening", "addr", s.srv.Addr)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutdown requested for HTTP server")
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("HTTP server shutdown with error", "err", err)
		return err
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}
