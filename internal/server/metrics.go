package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/instrumentation"
)

// DefaultMetricsAddr is the default listen address for the metrics server.
const DefaultMetricsAddr = ":9090"

// DefaultShutdownTimeout is how long graceful shutdown waits for in-flight
// requests before giving up.
const DefaultShutdownTimeout = 10 * time.Second

// MetricsServerConfig holds the configuration for the dedicated metrics server.
type MetricsServerConfig struct {
	// Addr is the listen address (default: ":9090").
	Addr string

	// Enabled controls whether the server should be started.
	Enabled bool

	// InstrumentationProvider supplies the Prometheus registry to expose.
	InstrumentationProvider *instrumentation.Provider
}

// MetricsServer serves the Prometheus /metrics endpoint on a dedicated
// listener, separate from the MCP transport for security.
type MetricsServer struct {
	config MetricsServerConfig
	server *http.Server
}

// NewMetricsServer creates a metrics server exposing the provider's
// Prometheus registry at /metrics.
func NewMetricsServer(config MetricsServerConfig) (*MetricsServer, error) {
	if config.InstrumentationProvider == nil {
		return nil, errors.New("instrumentation provider is required")
	}
	if config.Addr == "" {
		config.Addr = DefaultMetricsAddr
	}

	registry := config.InstrumentationProvider.Registry()
	if registry == nil {
		return nil, errors.New("instrumentation provider has no prometheus registry (is the prometheus exporter configured?)")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return &MetricsServer{
		config: config,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}, nil
}

// Addr returns the listen address the server is configured with.
func (ms *MetricsServer) Addr() string {
	return ms.config.Addr
}

// Start begins serving metrics. It blocks until the server stops and returns
// http.ErrServerClosed after a graceful shutdown.
func (ms *MetricsServer) Start() error {
	return ms.server.ListenAndServe()
}

// Shutdown gracefully shuts down the metrics server.
func (ms *MetricsServer) Shutdown(ctx context.Context) error {
	return ms.server.Shutdown(ctx)
}
