package server

import (
	"context"
	"net/http"
	"time"

	"github.com/plateful/backend/config"
)

// Server wraps the HTTP server with graceful shutdown.
type Server struct {
	http *http.Server
}

// New creates a new server for the given handler.
func New(cfg *config.Config, handler http.Handler) *Server {
	return &Server{
		http: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start blocks serving requests until the server is shut down.
func (s *Server) Start() error {
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
