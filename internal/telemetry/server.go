package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/msto63/chainlib/foundation/chain"
	cllog "github.com/msto63/chainlib/foundation/core/log"
	"github.com/msto63/chainlib/pkg/core/config"
	"github.com/msto63/chainlib/pkg/core/health"
)

// NewHandler serves engine metrics on /metrics and the health report on
// /healthz, using an isolated Prometheus registry
func NewHandler(metrics *chain.Metrics, checks *health.Registry) (http.Handler, error) {
	registry := prometheus.NewRegistry()
	if err := metrics.Register(registry); err != nil {
		return nil, fmt.Errorf("register engine metrics: %w", err)
	}
	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.Handle("GET /healthz", checks.Handler())
	return mux, nil
}

// Server is the running metrics endpoint
type Server struct {
	srv      *http.Server
	listener net.Listener
	logger   *cllog.Logger
}

// Start listens on cfg.Listen and serves in the background
func Start(cfg config.MetricsConfig, metrics *chain.Metrics, checks *health.Registry, logger *cllog.Logger) (*Server, error) {
	handler, err := NewHandler(metrics, checks)
	if err != nil {
		return nil, err
	}

	listener, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", cfg.Listen, err)
	}

	s := &Server{
		srv: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadTimeout.Duration,
		},
		listener: listener,
		logger:   logger.WithField("component", "telemetry"),
	}

	go func() {
		if err := s.srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.ErrorWithErr("metrics server stopped", err)
		}
	}()
	s.logger.Info("metrics server listening", cllog.Fields{"addr": s.Addr()})
	return s, nil
}

// Addr returns the bound listen address
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
