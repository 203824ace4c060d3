package request

import (
	"context"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/graph"
	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/server"
	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/tools"
)

// handleGet handles m365_get requests.
func handleGet(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return handleRequest(ctx, request, sc, http.MethodGet)
}

// handlePost handles m365_post requests.
func handlePost(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return handleRequest(ctx, request, sc, http.MethodPost)
}

// handlePatch handles m365_patch requests.
func handlePatch(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return handleRequest(ctx, request, sc, http.MethodPatch)
}

// handlePut handles m365_put requests.
func handlePut(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return handleRequest(ctx, request, sc, http.MethodPut)
}

// handleDelete handles m365_delete requests.
func handleDelete(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return handleRequest(ctx, request, sc, http.MethodDelete)
}

// handleRequest is the shared implementation behind every request tool. It
// validates arguments, enforces read-only mode for mutating verbs, issues the
// Graph call, and formats the result into the content envelope.
func handleRequest(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext, method string) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}
	if !strings.HasPrefix(path, "/") {
		return mcp.NewToolResultError("path must start with '/'"), nil
	}

	if isMutating(method) {
		if result := tools.CheckMutatingOperation(sc, strings.ToLower(method)); result != nil {
			return result, nil
		}
	}

	body, _ := args["body"].(string)
	rawResponse, _ := args["rawResponse"].(bool)
	includeHeaders, _ := args["includeHeaders"].(bool)

	opts := graph.RequestOptions{
		Method:         method,
		Headers:        extractHeaders(args),
		Body:           body,
		RawResponse:    rawResponse,
		IncludeHeaders: includeHeaders,
	}

	value, err := sc.GraphClient().Call(ctx, path, opts)
	if err != nil {
		return tools.FormatError(err), nil
	}
	return tools.FormatResult(value, rawResponse), nil
}

// isMutating reports whether the HTTP method changes state on the remote side.
func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// extractHeaders converts the "headers" argument object into a string map.
// Non-string values are ignored deterministically.
func extractHeaders(args map[string]interface{}) map[string]string {
	raw, ok := args["headers"].(map[string]interface{})
	if !ok || len(raw) == 0 {
		return nil
	}
	headers := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			headers[k] = s
		}
	}
	return headers
}
