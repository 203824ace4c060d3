package graph

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/logging"
)

// noETagFound is attached as "_etag" when headers were requested but the
// response carried no ETag header.
const noETagFound = "no-etag-found"

// Doer performs a single HTTP round trip. *http.Client satisfies it; tests
// substitute their own implementations.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// OperationRecorder receives per-call metrics. Implemented by
// instrumentation.Metrics; a nil recorder disables recording.
type OperationRecorder interface {
	RecordGraphRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration)
	RecordTokenRefresh(ctx context.Context, result string)
}

// RequestOptions describes a single Graph call. Every recognized option is an
// explicit field; there is no catch-all bag. The zero value is a plain GET.
type RequestOptions struct {
	// Method is the HTTP method, defaulting to GET.
	Method string

	// Headers are merged over the defaults (Authorization, Content-Type);
	// caller-supplied values win on collision.
	Headers map[string]string

	// Body is the request body, sent verbatim when non-empty.
	Body string

	// RawResponse requests that envelope formatting skip OData stripping
	// and pretty-printing.
	RawResponse bool

	// IncludeHeaders requests that the response ETag be attached to plain
	// object results as "_etag".
	IncludeHeaders bool

	// AccessToken and RefreshToken override the client's stored pair for
	// this call only.
	AccessToken  string
	RefreshToken string
}

// Client is the authenticated Graph API adapter. It holds the process-wide
// credential pair, refreshed lazily when a call observes a 401. Concurrent
// calls racing into a refresh are coalesced so the token endpoint sees at
// most one exchange.
type Client struct {
	config    *Config
	http      Doer
	source    TokenSource
	refresher TokenRefresher
	logger    *slog.Logger
	recorder  OperationRecorder

	store        credentialStore
	refreshGroup singleflight.Group
}

// ClientOption is a functional option for configuring a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the transport used for Graph round trips.
func WithHTTPClient(d Doer) ClientOption {
	return func(c *Client) { c.http = d }
}

// WithTokenSource sets the fallback credential source consulted when the
// client has no stored token.
func WithTokenSource(src TokenSource) ClientOption {
	return func(c *Client) { c.source = src }
}

// WithRefresher sets the token refresher invoked on 401 responses.
func WithRefresher(r TokenRefresher) ClientOption {
	return func(c *Client) { c.refresher = r }
}

// WithCredentials seeds the stored credential pair.
func WithCredentials(creds Credentials) ClientOption {
	return func(c *Client) { c.store.set(creds) }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec OperationRecorder) ClientOption {
	return func(c *Client) { c.recorder = rec }
}

// NewClient creates a Graph client from a validated configuration. Unless
// overridden it uses a plain net/http client with the configured timeout and
// the OAuth refresher for the configured tenant.
func NewClient(cfg *Config, opts ...ClientOption) (*Client, error) {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config: cfg.Clone(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: cfg.Timeout}
	}
	if c.refresher == nil {
		c.refresher = NewOAuthRefresher(cfg)
	}
	c.logger.Debug("graph client configured", logging.Host(cfg.BaseURL))
	return c, nil
}

// Config returns a copy of the client configuration.
func (c *Client) Config() *Config {
	return c.config.Clone()
}

// Call issues one request against the Graph API and returns the normalized
// body. The full sequence is: resolve token, perform the round trip, on 401
// refresh once and retry once, classify the final status, decode the body,
// and attach the ETag when requested.
//
// Error taxonomy: ErrNoToken before any I/O, RefreshConfigError when a
// refresh is attempted without a client secret, ScopePermissionError for
// scope-related 403s, APIError for any other non-2xx, and transport errors
// propagated unchanged (wrapped). Callers convert all of these into the
// terminal error envelope; see tools.FormatError.
func (c *Client) Call(ctx context.Context, path string, opts RequestOptions) (any, error) {
	token, refreshToken, err := c.resolveCredentials(ctx, opts)
	if err != nil {
		return nil, err
	}

	method := strings.ToUpper(opts.Method)
	if method == "" {
		method = http.MethodGet
	}

	start := time.Now()
	resp, body, err := c.do(ctx, method, path, opts, token)
	if err != nil {
		c.record(ctx, method, path, 0, time.Since(start))
		return nil, fmt.Errorf("graph request: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized && refreshToken != "" && c.refresher != nil {
		c.logger.Debug("access token rejected, refreshing",
			logging.Method(method), logging.Path(path))

		newToken, refreshErr := c.refresh(ctx, refreshToken)
		if refreshErr != nil {
			c.record(ctx, method, path, resp.StatusCode, time.Since(start))
			return nil, refreshErr
		}

		resp, body, err = c.do(ctx, method, path, opts, newToken)
		if err != nil {
			c.record(ctx, method, path, 0, time.Since(start))
			return nil, fmt.Errorf("graph request (after refresh): %w", err)
		}
	}

	c.record(ctx, method, path, resp.StatusCode, time.Since(start))

	if err := classifyStatus(resp, body); err != nil {
		c.logger.Warn("graph request failed",
			logging.Method(method),
			logging.Path(path),
			logging.Status(resp.StatusCode),
			logging.Err(err))
		return nil, err
	}

	value := DecodeBody(body)
	if opts.IncludeHeaders {
		// Only plain objects can carry the ETag; arrays and scalars are
		// returned untouched.
		if m, ok := value.(map[string]any); ok {
			etag := resp.Header.Get("ETag")
			if etag == "" {
				etag = noETagFound
			}
			m["_etag"] = etag
		}
	}
	return value, nil
}

// resolveCredentials evaluates the token precedence chain: per-call override,
// stored pair, then the TokenSource. Fails with ErrNoToken when all three
// yield nothing.
func (c *Client) resolveCredentials(ctx context.Context, opts RequestOptions) (accessToken, refreshToken string, err error) {
	stored := c.store.get()

	accessToken = opts.AccessToken
	if accessToken == "" {
		accessToken = stored.AccessToken
	}
	refreshToken = opts.RefreshToken
	if refreshToken == "" {
		refreshToken = stored.RefreshToken
	}

	if accessToken == "" && c.source != nil {
		pulled, srcErr := c.source.Token(ctx)
		if srcErr != nil {
			return "", "", fmt.Errorf("token source: %w", srcErr)
		}
		accessToken = pulled.AccessToken
		if refreshToken == "" {
			refreshToken = pulled.RefreshToken
		}
	}

	if accessToken == "" {
		return "", "", ErrNoToken
	}
	return accessToken, refreshToken, nil
}

// do performs a single round trip and drains the body.
func (c *Client) do(ctx context.Context, method, path string, opts RequestOptions, token string) (*http.Response, string, error) {
	var bodyReader io.Reader
	if opts.Body != "" {
		bodyReader = strings.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, bodyReader)
	if err != nil {
		return nil, "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	c.logger.Debug("graph request",
		logging.Method(method),
		logging.Path(path),
		slog.String("token", logging.SanitizeToken(token)))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response body: %w", err)
	}
	return resp, string(body), nil
}

// refresh exchanges the refresh token and updates the stored pair. Concurrent
// callers share a single exchange through the singleflight group.
func (c *Client) refresh(ctx context.Context, refreshToken string) (string, error) {
	v, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		creds, err := c.refresher.Refresh(ctx, refreshToken)
		if err != nil {
			c.recordRefresh(ctx, logging.StatusError)
			return nil, err
		}
		if creds.RefreshToken == "" {
			creds.RefreshToken = refreshToken
		}
		c.store.set(creds)
		c.recordRefresh(ctx, logging.StatusSuccess)
		c.logger.Info("access token refreshed",
			logging.Operation("token_refresh"),
			slog.String("token", logging.SanitizeToken(creds.AccessToken)))
		return creds, nil
	})
	if err != nil {
		return "", err
	}
	return v.(Credentials).AccessToken, nil
}

func (c *Client) record(ctx context.Context, method, path string, statusCode int, d time.Duration) {
	if c.recorder != nil {
		c.recorder.RecordGraphRequest(ctx, method, path, statusCode, d)
	}
}

func (c *Client) recordRefresh(ctx context.Context, result string) {
	if c.recorder != nil {
		c.recorder.RecordTokenRefresh(ctx, result)
	}
}

// classifyStatus maps a completed response onto the error taxonomy. A 2xx
// returns nil; a 403 with scope/permission wording becomes
// ScopePermissionError; everything else becomes APIError.
func classifyStatus(resp *http.Response, body string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode == http.StatusForbidden && isScopeDenial(body) {
		return &ScopePermissionError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       body,
		}
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       body,
	}
}
