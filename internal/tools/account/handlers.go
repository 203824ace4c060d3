package account

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/graph"
	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/server"
	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/tools"
)

// defaultSearchSize bounds search result pages when the caller does not set one.
const defaultSearchSize = 25

// handleMe handles m365_me requests.
func handleMe(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	path := "/me"
	if sel, _ := args["select"].(string); sel != "" {
		path += "?$select=" + url.QueryEscape(sel)
	}

	value, err := sc.GraphClient().Call(ctx, path, graph.RequestOptions{})
	if err != nil {
		return tools.FormatError(err), nil
	}
	return tools.FormatResult(value, false), nil
}

// handleOrganization handles m365_organization requests.
func handleOrganization(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	value, err := sc.GraphClient().Call(ctx, "/organization", graph.RequestOptions{})
	if err != nil {
		return tools.FormatError(err), nil
	}
	return tools.FormatResult(value, false), nil
}

// searchRequest is the /search/query request body.
type searchRequest struct {
	Requests []searchQuery `json:"requests"`
}

type searchQuery struct {
	EntityTypes []string     `json:"entityTypes"`
	Query       searchString `json:"query"`
	From        int          `json:"from"`
	Size        int          `json:"size"`
}

type searchString struct {
	QueryString string `json:"queryString"`
}

// handleSearch handles m365_search requests.
func handleSearch(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	entityTypes := extractEntityTypes(args)
	size := defaultSearchSize
	if n, ok := args["size"].(float64); ok && n > 0 {
		size = int(n)
	}

	body, err := json.Marshal(searchRequest{
		Requests: []searchQuery{{
			EntityTypes: entityTypes,
			Query:       searchString{QueryString: query},
			From:        0,
			Size:        size,
		}},
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build search request: %v", err)), nil
	}

	value, err := sc.GraphClient().Call(ctx, "/search/query", graph.RequestOptions{
		Method: http.MethodPost,
		Body:   string(body),
	})
	if err != nil {
		return tools.FormatError(err), nil
	}
	return tools.FormatResult(value, false), nil
}

// extractEntityTypes reads the entityTypes array argument, defaulting to
// message search.
func extractEntityTypes(args map[string]interface{}) []string {
	raw, ok := args["entityTypes"].([]interface{})
	if !ok || len(raw) == 0 {
		return []string{"message"}
	}
	types := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			types = append(types, s)
		}
	}
	if len(types) == 0 {
		return []string{"message"}
	}
	return types
}
