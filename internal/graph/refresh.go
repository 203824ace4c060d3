package graph

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

// TokenRefresher exchanges a refresh token for a new credential pair. The
// client invokes it at most once per call, and only after a 401 response.
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (Credentials, error)
}

// OAuthRefresher implements TokenRefresher against the Azure AD v2 token
// endpoint for the configured tenant.
type OAuthRefresher struct {
	conf    *oauth2.Config
	timeout time.Duration
}

// NewOAuthRefresher builds a refresher from the client configuration. The
// token endpoint is derived from the tenant id; "common" selects the
// multi-tenant endpoint.
func NewOAuthRefresher(cfg *Config) *OAuthRefresher {
	return &OAuthRefresher{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     microsoft.AzureADEndpoint(cfg.TenantID),
		},
		timeout: cfg.Timeout,
	}
}

// Refresh performs the refresh-token grant. A missing client secret aborts
// the exchange immediately with RefreshConfigError; the caller must not
// retry the original request in that case.
func (r *OAuthRefresher) Refresh(ctx context.Context, refreshToken string) (Credentials, error) {
	if r.conf.ClientSecret == "" {
		return Credentials{}, &RefreshConfigError{Missing: "client secret"}
	}
	if refreshToken == "" {
		return Credentials{}, fmt.Errorf("token refresh: no refresh token available")
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	// The oauth2 package picks the HTTP client up from the context.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: r.timeout})

	src := r.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return Credentials{}, fmt.Errorf("token refresh: %w", err)
	}

	creds := Credentials{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
	}
	// Azure AD rotates refresh tokens; keep the old one if the response
	// omitted a replacement.
	if creds.RefreshToken == "" {
		creds.RefreshToken = refreshToken
	}
	return creds, nil
}
