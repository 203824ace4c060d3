package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTenantID, cfg.TenantID)
	assert.Equal(t, DefaultClientID, cfg.ClientID)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Empty(t, cfg.ClientSecret)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:   "missing secret is allowed",
			mutate: func(c *Config) { c.ClientSecret = "" },
		},
		{
			name:    "empty base URL",
			mutate:  func(c *Config) { c.BaseURL = "" },
			wantErr: "base URL",
		},
		{
			name:    "base URL without scheme",
			mutate:  func(c *Config) { c.BaseURL = "graph.microsoft.com/v1.0" },
			wantErr: "invalid base URL",
		},
		{
			name:    "empty tenant",
			mutate:  func(c *Config) { c.TenantID = "" },
			wantErr: "tenant id",
		},
		{
			name:    "empty client id",
			mutate:  func(c *Config) { c.ClientID = "" },
			wantErr: "client id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
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

func TestConfigClone(t *testing.T) {
	cfg := NewDefaultConfig()
	clone := cfg.Clone()
	clone.TenantID = "changed"
	assert.Equal(t, DefaultTenantID, cfg.TenantID)

	var nilCfg *Config
	assert.Nil(t, nilCfg.Clone())
}
