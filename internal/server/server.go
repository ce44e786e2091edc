package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/agbru/accbench/internal/logging"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server serves /metrics and /healthz.
type Server struct {
	metrics    http.Handler
	logger     logging.Logger
	security   SecurityConfig
	httpServer *http.Server
	scrapes    atomic.Int64
}

// New returns a server for metrics. It does not listen until Start.
func New(addr string, metrics http.Handler, logger logging.Logger) *Server {
	s := &Server{metrics: metrics, logger: logger, security: DefaultSecurityConfig()}
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", SecurityMiddleware(s.security, s.handleMetrics))
	mux.HandleFunc("/healthz", SecurityMiddleware(s.security, s.handleHealth))
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          logging.NewStdLogger(logger, "metrics-server"),
	}
	return s
}

// Start binds the listener and serves in the background. It returns the
// bound address, which differs from the configured one when the port is 0.
func (s *Server) Start() (string, error) {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return "", fmt.Errorf("metrics server: %w", err)
	}
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server stopped", err)
		}
	}()
	s.logger.Info("metrics server listening", logging.String("addr", ln.Addr().String()))
	return ln.Addr().String(), nil
}

// Shutdown stops the server, waiting at most a few seconds for in-flight
// scrapes.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	err := s.httpServer.Shutdown(ctx)
	s.logger.Debug("metrics server stopped", logging.Int("scrapes", int(s.scrapes.Load())))
	return err
}

// Scrapes returns how many metrics requests were served.
func (s *Server) Scrapes() int64 {
	return s.scrapes.Load()
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("rejected metrics request", logging.String("method", r.Method))
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.scrapes.Add(1)
	s.metrics.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}
