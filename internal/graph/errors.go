package graph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoToken is returned when no access token can be resolved for a call:
// no per-call override, no stored credential, and no token source (or the
// source yielded nothing). The call aborts before any network I/O.
var ErrNoToken = errors.New("no access token available: provide a token or configure a token source")

// RefreshConfigError indicates that a token refresh was attempted without the
// required client configuration. The refresh aborts immediately; the original
// 401 is not retried.
type RefreshConfigError struct {
	// Missing names the absent configuration value, e.g. "client secret".
	Missing string
}

func (e *RefreshConfigError) Error() string {
	return fmt.Sprintf("token refresh not configured: %s is not set (set MS365_MCP_CLIENT_SECRET)", e.Missing)
}

// APIError represents a non-2xx response from the Graph API after the
// refresh-and-retry cycle has been exhausted.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("graph API error: %s: %s", e.Status, e.Body)
}

// ScopePermissionError is a 403 response whose body indicates the credential
// lacks a required authorization scope. It is surfaced separately from
// APIError because the fix is usually on the caller's side: consent to the
// missing scope or sign in with a work/school (organization) account.
type ScopePermissionError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *ScopePermissionError) Error() string {
	return fmt.Sprintf(
		"graph API permission error: %s: %s (the signed-in account lacks a required scope; "+
			"grant the missing permission or re-authenticate in organization mode)",
		e.Status, e.Body)
}

// isScopeDenial reports whether a 403 body looks like a missing-scope denial
// rather than some other forbidden condition.
func isScopeDenial(body string) bool {
	lower := strings.ToLower(body)
	return strings.Contains(lower, "scope") || strings.Contains(lower, "permission")
}
