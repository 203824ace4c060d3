package account

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/graph"
	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/server"
)

type doerFunc func(req *http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestContext(t *testing.T, doer graph.Doer) *server.ServerContext {
	t.Helper()
	client, err := graph.NewClient(graph.NewDefaultConfig(),
		graph.WithHTTPClient(doer),
		graph.WithCredentials(graph.Credentials{AccessToken: "test-token"}),
	)
	require.NoError(t, err)

	sc, err := server.NewServerContext(context.Background(),
		server.WithGraphClient(client),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func newToolRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleMe(t *testing.T) {
	var gotPath string
	sc := newTestContext(t, doerFunc(func(req *http.Request) (*http.Response, error) {
		gotPath = req.URL.Path
		return newResponse(200, `{"displayName":"Jane","mail":"jane@example.com"}`), nil
	}))

	result, err := handleMe(context.Background(), newToolRequest(map[string]any{}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	assert.True(t, strings.HasSuffix(gotPath, "/me"))
	assert.Contains(t, resultText(t, result), "Jane")
}

func TestHandleMeSelect(t *testing.T) {
	var gotURL string
	sc := newTestContext(t, doerFunc(func(req *http.Request) (*http.Response, error) {
		gotURL = req.URL.String()
		return newResponse(200, `{"displayName":"Jane"}`), nil
	}))

	_, err := handleMe(context.Background(), newToolRequest(map[string]any{
		"select": "displayName,mail",
	}), sc)
	require.NoError(t, err)

	assert.Contains(t, gotURL, "$select=displayName%2Cmail")
}

func TestHandleOrganization(t *testing.T) {
	var gotPath string
	sc := newTestContext(t, doerFunc(func(req *http.Request) (*http.Response, error) {
		gotPath = req.URL.Path
		return newResponse(200, `{"value":[{"displayName":"Contoso"}]}`), nil
	}))

	result, err := handleOrganization(context.Background(), newToolRequest(map[string]any{}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	assert.True(t, strings.HasSuffix(gotPath, "/organization"))
	assert.Contains(t, resultText(t, result), "Contoso")
}

func TestHandleOrganizationScopeDenied(t *testing.T) {
	sc := newTestContext(t, doerFunc(func(req *http.Request) (*http.Response, error) {
		return newResponse(403, "Insufficient privileges: scope"), nil
	}))

	result, err := handleOrganization(context.Background(), newToolRequest(map[string]any{}), sc)
	require.NoError(t, err)
	require.True(t, result.IsError)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &decoded))
	assert.Contains(t, decoded["error"], "organization")
}

func TestHandleSearch(t *testing.T) {
	var gotBody searchRequest
	var gotMethod, gotPath string
	sc := newTestContext(t, doerFunc(func(req *http.Request) (*http.Response, error) {
		gotMethod = req.Method
		gotPath = req.URL.Path
		b, _ := io.ReadAll(req.Body)
		require.NoError(t, json.Unmarshal(b, &gotBody))
		return newResponse(200, `{"value":[]}`), nil
	}))

	result, err := handleSearch(context.Background(), newToolRequest(map[string]any{
		"query":       "quarterly report",
		"entityTypes": []any{"driveItem", "message"},
		"size":        float64(5),
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.True(t, strings.HasSuffix(gotPath, "/search/query"))
	require.Len(t, gotBody.Requests, 1)
	assert.Equal(t, []string{"driveItem", "message"}, gotBody.Requests[0].EntityTypes)
	assert.Equal(t, "quarterly report", gotBody.Requests[0].Query.QueryString)
	assert.Equal(t, 5, gotBody.Requests[0].Size)
}

func TestHandleSearchMissingQuery(t *testing.T) {
	sc := newTestContext(t, doerFunc(func(req *http.Request) (*http.Response, error) {
		t.Fatal("no request expected")
		return nil, nil
	}))

	result, err := handleSearch(context.Background(), newToolRequest(map[string]any{}), sc)
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "query is required")
}

func TestExtractEntityTypes(t *testing.T) {
	assert.Equal(t, []string{"message"}, extractEntityTypes(map[string]any{}))
	assert.Equal(t, []string{"message"}, extractEntityTypes(map[string]any{"entityTypes": []any{}}))
	assert.Equal(t, []string{"message"}, extractEntityTypes(map[string]any{"entityTypes": []any{42}}))
	assert.Equal(t, []string{"site", "list"}, extractEntityTypes(map[string]any{"entityTypes": []any{"site", "list"}}))
}
