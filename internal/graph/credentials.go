package graph

import (
	"context"
	"os"
	"sync"
)

// Environment variables recognized by EnvTokenSource.
const (
	EnvAccessToken  = "MS365_MCP_ACCESS_TOKEN"
	EnvRefreshToken = "MS365_MCP_REFRESH_TOKEN"
)

// Credentials is an access/refresh token pair. The refresh token is optional;
// without one a 401 cannot be recovered and propagates as an APIError.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// TokenSource supplies a current credential pair on demand. It is consulted
// only when neither a per-call override nor the client's stored pair yields
// an access token.
//
// Implementations should return zero Credentials and a nil error when they
// simply have nothing to offer; returning an error is reserved for genuine
// lookup failures.
type TokenSource interface {
	Token(ctx context.Context) (Credentials, error)
}

// EnvTokenSource reads the credential pair from environment variables.
// Useful for CI or scripted runs where no external auth manager is wired in.
type EnvTokenSource struct {
	// AccessVar and RefreshVar override the default variable names.
	AccessVar  string
	RefreshVar string
}

// Token returns the credentials from the environment. A missing access token
// yields zero credentials, not an error.
func (s *EnvTokenSource) Token(ctx context.Context) (Credentials, error) {
	accessVar := s.AccessVar
	if accessVar == "" {
		accessVar = EnvAccessToken
	}
	refreshVar := s.RefreshVar
	if refreshVar == "" {
		refreshVar = EnvRefreshToken
	}
	return Credentials{
		AccessToken:  os.Getenv(accessVar),
		RefreshToken: os.Getenv(refreshVar),
	}, nil
}

// StaticTokenSource returns a fixed credential pair. Useful for tests.
type StaticTokenSource struct {
	Credentials Credentials
}

// Token returns the static credentials.
func (s *StaticTokenSource) Token(ctx context.Context) (Credentials, error) {
	return s.Credentials, nil
}

// credentialStore is the client-owned mutable credential state. It is written
// only by a successful refresh and by the initial seeding at construction;
// per-call overrides never touch it.
type credentialStore struct {
	mu    sync.RWMutex
	creds Credentials
}

func (s *credentialStore) get() Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds
}

func (s *credentialStore) set(creds Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
}
