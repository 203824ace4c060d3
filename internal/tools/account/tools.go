// Package account implements convenience tools for common Microsoft Graph
// queries: the signed-in user profile, organization details, and search.
package account

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/server"
	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/tools"
)

// RegisterAccountTools registers account-oriented convenience tools with the MCP server.
func RegisterAccountTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// m365_me tool
	meOpts := []mcp.ToolOption{
		mcp.WithDescription(`Get the profile of the signed-in user.

Returns the /me resource from Microsoft Graph. Use 'select' to limit the
returned properties.

Examples:
- Full profile: {}
- Name and mail only: {"select": "displayName,mail"}`),
		mcp.WithString("select",
			mcp.Description("Comma-separated list of properties to return (maps to $select)"),
		),
	}
	meTool := mcp.NewTool("m365_me", meOpts...)

	s.AddTool(meTool, tools.WrapWithLogging("m365_me", handleMe, sc))

	// m365_organization tool
	orgOpts := []mcp.ToolOption{
		mcp.WithDescription(`Get details of the organization the signed-in user belongs to.

Returns the /organization collection from Microsoft Graph. Requires
organization-mode permissions; a personal account returns a permission
error with guidance.`),
	}
	orgTool := mcp.NewTool("m365_organization", orgOpts...)

	s.AddTool(orgTool, tools.WrapWithLogging("m365_organization", handleOrganization, sc))

	// m365_search tool
	searchOpts := []mcp.ToolOption{
		mcp.WithDescription(`Search Microsoft 365 content via the Graph search API.

Issues a POST to /search/query. Entity types control which stores are
searched (messages, events, driveItem, site, list, listItem, drive).

Examples:
- Search mail: {"query": "quarterly report", "entityTypes": ["message"]}
- Search files: {"query": "budget.xlsx", "entityTypes": ["driveItem"]}`),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Free-text search query"),
		),
		mcp.WithArray("entityTypes",
			mcp.Description("Entity types to search (default: [\"message\"])"),
		),
		mcp.WithNumber("size",
			mcp.Description("Maximum number of results to return (default: 25)"),
		),
	}
	searchTool := mcp.NewTool("m365_search", searchOpts...)

	s.AddTool(searchTool, tools.WrapWithLogging("m365_search", handleSearch, sc))

	return nil
}
