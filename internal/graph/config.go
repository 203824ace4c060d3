package graph

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the Microsoft Graph v1.0 REST endpoint.
	DefaultBaseURL = "https://graph.microsoft.com/v1.0"

	// DefaultTenantID targets the multi-tenant token endpoint.
	DefaultTenantID = "common"

	// DefaultClientID is the public client application id used when the
	// operator has not registered their own application.
	DefaultClientID = "14d82eec-204b-4c2f-b7e8-296a70dab67e"

	// DefaultTimeout bounds a single Graph round trip.
	DefaultTimeout = 30 * time.Second
)

// Config holds the client configuration. It is populated once at startup
// (flags with environment fallbacks, see the cmd package) and validated
// before the first request; nothing in this package reads the environment.
type Config struct {
	// BaseURL is the Graph API root including the version segment.
	BaseURL string

	// TenantID selects the Azure AD tenant for token refresh.
	TenantID string

	// ClientID identifies the OAuth application for token refresh.
	ClientID string

	// ClientSecret authenticates the application at the token endpoint.
	// May be empty; a refresh attempted without it fails with
	// RefreshConfigError.
	ClientSecret string

	// Timeout applies to each HTTP round trip when the client constructs
	// its own transport.
	Timeout time.Duration
}

// NewDefaultConfig returns a configuration with the standard Graph endpoint
// and the shared public client id.
func NewDefaultConfig() *Config {
	return &Config{
		BaseURL:  DefaultBaseURL,
		TenantID: DefaultTenantID,
		ClientID: DefaultClientID,
		Timeout:  DefaultTimeout,
	}
}

// Validate checks the configuration for values that would make every call
// fail. A missing client secret is deliberately not an error here: the
// client works with a static token until the first refresh is needed.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("graph config: base URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("graph config: invalid base URL %q", c.BaseURL)
	}
	if c.TenantID == "" {
		return errors.New("graph config: tenant id is required")
	}
	if c.ClientID == "" {
		return errors.New("graph config: client id is required")
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
