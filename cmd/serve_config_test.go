package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/graph"
)

func validServeConfig() ServeConfig {
	return ServeConfig{
		Transport:    transportStdio,
		HTTPAddr:     ":8080",
		HTTPEndpoint: "/mcp",
		TenantID:     graph.DefaultTenantID,
		ClientID:     graph.DefaultClientID,
		BaseURL:      graph.DefaultBaseURL,
		Timeout:      30 * time.Second,
	}
}

func TestServeConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServeConfig)
		wantErr string
	}{
		{
			name:   "stdio defaults are valid",
			mutate: func(c *ServeConfig) {},
		},
		{
			name: "streamable-http is valid",
			mutate: func(c *ServeConfig) {
				c.Transport = transportStreamableHTTP
			},
		},
		{
			name: "unknown transport",
			mutate: func(c *ServeConfig) {
				c.Transport = "sse"
			},
			wantErr: "invalid transport",
		},
		{
			name: "http transport requires addr",
			mutate: func(c *ServeConfig) {
				c.Transport = transportStreamableHTTP
				c.HTTPAddr = ""
			},
			wantErr: "http-addr is required",
		},
		{
			name: "http endpoint must be absolute",
			mutate: func(c *ServeConfig) {
				c.Transport = transportStreamableHTTP
				c.HTTPEndpoint = "mcp"
			},
			wantErr: "must start with '/'",
		},
		{
			name: "metrics enabled requires addr",
			mutate: func(c *ServeConfig) {
				c.Metrics = MetricsServeConfig{Enabled: true}
			},
			wantErr: "metrics-addr is required",
		},
		{
			name: "non-positive timeout",
			mutate: func(c *ServeConfig) {
				c.Timeout = 0
			},
			wantErr: "timeout must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validServeConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadEnvIfEmpty(t *testing.T) {
	t.Setenv(envTenantID, "tenant-from-env")

	value := ""
	loadEnvIfEmpty(&value, envTenantID)
	assert.Equal(t, "tenant-from-env", value)

	// Flags take precedence over the environment.
	value = "tenant-from-flag"
	loadEnvIfEmpty(&value, envTenantID)
	assert.Equal(t, "tenant-from-flag", value)
}

func TestServeCmdFlagDefaults(t *testing.T) {
	cmd := newServeCmd()

	transport, err := cmd.Flags().GetString("transport")
	require.NoError(t, err)
	assert.Equal(t, transportStdio, transport)

	tenantID, err := cmd.Flags().GetString("tenant-id")
	require.NoError(t, err)
	assert.Equal(t, graph.DefaultTenantID, tenantID)

	clientID, err := cmd.Flags().GetString("client-id")
	require.NoError(t, err)
	assert.Equal(t, graph.DefaultClientID, clientID)

	readOnly, err := cmd.Flags().GetBool("read-only")
	require.NoError(t, err)
	assert.False(t, readOnly)
}
