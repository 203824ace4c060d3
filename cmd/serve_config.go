package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Environment variable names for Graph application configuration.
// Flags take precedence; these fill in values the user did not set.
const (
	envTenantID     = "MS365_MCP_TENANT_ID"
	envClientID     = "MS365_MCP_CLIENT_ID"
	envClientSecret = "MS365_MCP_CLIENT_SECRET"
)

// ServeConfig holds all configuration for the serve command.
type ServeConfig struct {
	// Transport settings
	Transport    string
	HTTPAddr     string
	HTTPEndpoint string

	// Graph application settings
	TenantID     string
	ClientID     string
	ClientSecret string
	BaseURL      string
	Timeout      time.Duration

	// Behavior settings
	ReadOnly  bool
	DebugMode bool

	// Metrics server settings
	Metrics MetricsServeConfig
}

// MetricsServeConfig holds configuration for the dedicated metrics server.
type MetricsServeConfig struct {
	Enabled bool
	Addr    string
}

// loadEnvIfEmpty fills a config value from the environment when the flag left
// it empty.
func loadEnvIfEmpty(target *string, envName string) {
	if *target == "" {
		*target = os.Getenv(envName)
	}
}

// Validate checks the serve configuration for errors before any network or
// server setup happens.
func (c *ServeConfig) Validate() error {
	switch c.Transport {
	case transportStdio, transportStreamableHTTP:
	default:
		return fmt.Errorf("invalid transport %q: must be %q or %q",
			c.Transport, transportStdio, transportStreamableHTTP)
	}

	if c.Transport == transportStreamableHTTP {
		if c.HTTPAddr == "" {
			return fmt.Errorf("http-addr is required for the %s transport", transportStreamableHTTP)
		}
		if !strings.HasPrefix(c.HTTPEndpoint, "/") {
			return fmt.Errorf("http-endpoint must start with '/': got %q", c.HTTPEndpoint)
		}
	}

	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("metrics-addr is required when the metrics server is enabled")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive: got %v", c.Timeout)
	}

	return nil
}
