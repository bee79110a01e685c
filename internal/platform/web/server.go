package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fruit-rush/internal/logging"
)

// Server serves the WebSocket endpoint and a health check.
type Server struct {
	addr    string
	handler *Handler
	http    *http.Server
	logger  *log.Logger
}

// NewServer creates a server listening on addr.
func NewServer(addr string, handler *Handler, logger *log.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{addr: addr, handler: handler, logger: logger}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Routes returns the HTTP routes: /ws and /healthz.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handler.Handle)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// ListenAndServe blocks until the server is shut down. A clean shutdown returns nil.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting WebSocket server", "address", s.addr)

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and closes live connections.
func (s *Server) Shutdown(ctx context.Context) error {
	s.handler.CloseAll()
	return s.http.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}
