package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/graph"
	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/instrumentation"
	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/logging"
	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/server"
	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/tools/account"
	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/tools/request"
)

// Transport type constants for the MCP server.
const (
	transportStdio          = "stdio"
	transportStreamableHTTP = "streamable-http"
)

// newServeCmd creates the Cobra command for starting the MCP server.
func newServeCmd() *cobra.Command {
	var (
		readOnly  bool
		debugMode bool

		// Graph application options
		tenantID string
		clientID string
		baseURL  string
		timeout  time.Duration

		// Transport options
		transport    string
		httpAddr     string
		httpEndpoint string

		// Metrics options
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP Microsoft 365 server",
		Long: `Start the MCP Microsoft 365 server to provide tools for interacting
with the Microsoft Graph API via the Model Context Protocol.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport

Credentials are read from environment variables:
  - MS365_MCP_ACCESS_TOKEN:  bearer token for Graph requests
  - MS365_MCP_REFRESH_TOKEN: refresh token used on 401 responses
  - MS365_MCP_CLIENT_SECRET: application secret required for token refresh

Read-only mode (--read-only):
  When enabled, tools that perform mutating Graph operations (POST, PATCH,
  PUT, DELETE) are rejected before any request is sent.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := ServeConfig{
				Transport:    transport,
				HTTPAddr:     httpAddr,
				HTTPEndpoint: httpEndpoint,
				TenantID:     tenantID,
				ClientID:     clientID,
				BaseURL:      baseURL,
				Timeout:      timeout,
				ReadOnly:     readOnly,
				DebugMode:    debugMode,
				Metrics: MetricsServeConfig{
					Enabled: metricsEnabled,
					Addr:    metricsAddr,
				},
			}

			// Fill unset values from the environment. The client secret has
			// no flag: it is environment-only to keep it out of process
			// listings.
			loadEnvIfEmpty(&config.TenantID, envTenantID)
			loadEnvIfEmpty(&config.ClientID, envClientID)
			loadEnvIfEmpty(&config.ClientSecret, envClientSecret)

			if err := config.Validate(); err != nil {
				return err
			}
			return runServe(config)
		},
	}

	// Add flags for configuring the server
	cmd.Flags().BoolVar(&readOnly, "read-only", false, "Reject mutating Graph operations (default: false)")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging (default: false)")

	// Graph application flags
	cmd.Flags().StringVar(&tenantID, "tenant-id", graph.DefaultTenantID, "Microsoft Entra tenant ID (can also be set via MS365_MCP_TENANT_ID env var)")
	cmd.Flags().StringVar(&clientID, "client-id", graph.DefaultClientID, "OAuth application client ID (can also be set via MS365_MCP_CLIENT_ID env var)")
	cmd.Flags().StringVar(&baseURL, "graph-base-url", graph.DefaultBaseURL, "Microsoft Graph API base URL")
	cmd.Flags().DurationVar(&timeout, "timeout", graph.DefaultTimeout, "Timeout for each Graph API round trip")

	// Transport flags
	cmd.Flags().StringVar(&transport, "transport", transportStdio, "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")
	cmd.Flags().StringVar(&httpEndpoint, "http-endpoint", "/mcp", "HTTP endpoint path (for streamable-http transport)")

	// Metrics flags
	cmd.Flags().BoolVar(&metricsEnabled, "metrics", false, "Serve Prometheus metrics on a dedicated listener (requires INSTRUMENTATION_ENABLED=true)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address")

	return cmd
}

// runServe contains the main server logic with support for multiple transports.
func runServe(config ServeConfig) error {
	// Setup graceful shutdown - listen for both SIGINT and SIGTERM
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize OpenTelemetry instrumentation provider
	instrumentationConfig := instrumentation.DefaultConfig()
	instrumentationConfig.ServiceVersion = rootCmd.Version
	instrumentationProvider, err := instrumentation.NewProvider(shutdownCtx, instrumentationConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if shutdownErr := instrumentationProvider.Shutdown(context.Background()); shutdownErr != nil {
			if config.Transport != transportStdio {
				log.Printf("Error during instrumentation shutdown: %v", shutdownErr)
			}
		}
	}()

	if instrumentationProvider.Enabled() {
		log.Printf("OpenTelemetry instrumentation enabled (metrics: %s, tracing: %s)",
			instrumentationConfig.MetricsExporter, instrumentationConfig.TracingExporter)
	}

	logAdapter := logging.DefaultLogger(config.DebugMode)
	if config.DebugMode && config.Transport != transportStdio {
		fmt.Println("WARNING: Debug logging is enabled - this may log sensitive information")
		fmt.Println("         Recommended: Disable debug mode in production")
	}

	// Create the Microsoft Graph client
	graphConfig := &graph.Config{
		BaseURL:      config.BaseURL,
		TenantID:     config.TenantID,
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Timeout:      config.Timeout,
	}

	clientOpts := []graph.ClientOption{
		graph.WithTokenSource(&graph.EnvTokenSource{}),
		graph.WithLogger(logAdapter.Logger()),
	}
	if metrics := instrumentationProvider.Metrics(); metrics != nil {
		clientOpts = append(clientOpts, graph.WithRecorder(metrics))
	}

	graphClient, err := graph.NewClient(graphConfig, clientOpts...)
	if err != nil {
		return fmt.Errorf("failed to create graph client: %w", err)
	}

	// Create server context with the graph client and shutdown context
	serverContext, err := server.NewServerContext(shutdownCtx,
		server.WithGraphClient(graphClient),
		server.WithLogger(logAdapter),
		server.WithVersion(rootCmd.Version),
		server.WithReadOnly(config.ReadOnly),
		server.WithInstrumentationProvider(instrumentationProvider),
	)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			// Only log shutdown errors for non-stdio transports to avoid output interference
			if config.Transport != transportStdio {
				log.Printf("Error during server context shutdown: %v", err)
			}
		}
	}()

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("ms-365-mcp-server", rootCmd.Version,
		mcpserver.WithToolCapabilities(true),
	)

	// Register all tool categories
	if err := request.RegisterRequestTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register request tools: %w", err)
	}

	if err := account.RegisterAccountTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register account tools: %w", err)
	}

	// Start the appropriate server based on transport type
	switch config.Transport {
	case transportStdio:
		// Don't print startup message for stdio mode as it interferes with MCP communication
		return runStdioServer(mcpSrv)
	case transportStreamableHTTP:
		fmt.Printf("Starting MCP Microsoft 365 server with %s transport...\n", config.Transport)
		return runStreamableHTTPServer(mcpSrv, config, shutdownCtx, instrumentationProvider, serverContext)
	default:
		return fmt.Errorf("unsupported transport type: %s", config.Transport)
	}
}
