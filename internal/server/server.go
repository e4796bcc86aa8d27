// Package server exposes the observability endpoints of zcalc: the
// Prometheus /metrics endpoint and a liveness probe. The calculator
// itself stays local; only telemetry is served.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"zint/internal/logging"
)

// Server is the telemetry HTTP server.
type Server struct {
	addr     string
	metrics  *Metrics
	logger   logging.Logger
	security SecurityConfig
	httpSrv  *http.Server
}

// New creates a telemetry server on addr.
func New(addr string, metrics *Metrics, logger logging.Logger) *Server {
	s := &Server{
		addr:     addr,
		metrics:  metrics,
		logger:   logger,
		security: DefaultSecurityConfig(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleMetrics)))
	mux.HandleFunc("/healthz", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleHealth)))

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Metrics returns the server's metric set.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()
	s.logger.Info("telemetry server listening", logging.String("addr", s.addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("telemetry server shutdown", err)
			return err
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}

// metricsMiddleware tracks in-flight and total request counts around
// next.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		next(w, r)
	}
}

// handleMetrics serves the Prometheus endpoint; reads only.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("rejected metrics request", logging.String("method", r.Method))
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}
