// Package request implements the generic Microsoft Graph request tools:
// one MCP tool per HTTP verb, forwarding an arbitrary Graph path through the
// authenticated client.
package request

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/server"
	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/tools"
)

// RegisterRequestTools registers the generic Graph request tools with the MCP server.
func RegisterRequestTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// m365_get tool
	getOpts := []mcp.ToolOption{
		mcp.WithDescription(`Perform a GET request against the Microsoft Graph API.

The path is relative to the Graph base URL and must start with '/'.
Query parameters (including OData options like $select, $filter, $top)
are passed as part of the path.

Examples:
- Get the signed-in user: {"path": "/me"}
- List recent messages: {"path": "/me/messages?$top=5"}
- Select fields: {"path": "/me?$select=displayName,mail"}`),
	}
	getOpts = append(getOpts, commonRequestParams()...)
	getTool := mcp.NewTool("m365_get", getOpts...)

	s.AddTool(getTool, tools.WrapWithLogging("m365_get", handleGet, sc))

	// m365_post tool
	postOpts := []mcp.ToolOption{
		mcp.WithDescription(`Perform a POST request against the Microsoft Graph API.

Use this to create resources or invoke Graph actions. The body must be a
JSON string matching the Graph schema for the target endpoint.

Examples:
- Send mail: {"path": "/me/sendMail", "body": "{\"message\": {...}}"}
- Create a calendar event: {"path": "/me/events", "body": "{...}"}`),
	}
	postOpts = append(postOpts, commonRequestParams()...)
	postOpts = append(postOpts, bodyParam())
	postTool := mcp.NewTool("m365_post", postOpts...)

	s.AddTool(postTool, tools.WrapWithLogging("m365_post", handlePost, sc))

	// m365_patch tool
	patchOpts := []mcp.ToolOption{
		mcp.WithDescription(`Perform a PATCH request against the Microsoft Graph API.

Use this to update existing resources. The body must be a JSON string
holding only the properties to change. Pass an If-Match header with a
previously returned ETag for optimistic concurrency.`),
	}
	patchOpts = append(patchOpts, commonRequestParams()...)
	patchOpts = append(patchOpts, bodyParam())
	patchTool := mcp.NewTool("m365_patch", patchOpts...)

	s.AddTool(patchTool, tools.WrapWithLogging("m365_patch", handlePatch, sc))

	// m365_put tool
	putOpts := []mcp.ToolOption{
		mcp.WithDescription(`Perform a PUT request against the Microsoft Graph API.

Use this for full replacement semantics, e.g. uploading small file
contents to /me/drive paths.`),
	}
	putOpts = append(putOpts, commonRequestParams()...)
	putOpts = append(putOpts, bodyParam())
	putTool := mcp.NewTool("m365_put", putOpts...)

	s.AddTool(putTool, tools.WrapWithLogging("m365_put", handlePut, sc))

	// m365_delete tool
	deleteOpts := []mcp.ToolOption{
		mcp.WithDescription(`Perform a DELETE request against the Microsoft Graph API.

Deletes the resource at the given path. Most Graph delete operations
return an empty 204 response, surfaced as {"message": "OK!"}.`),
	}
	deleteOpts = append(deleteOpts, commonRequestParams()...)
	deleteTool := mcp.NewTool("m365_delete", deleteOpts...)

	s.AddTool(deleteTool, tools.WrapWithLogging("m365_delete", handleDelete, sc))

	return nil
}

// commonRequestParams returns the tool options shared by every request tool.
func commonRequestParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Graph API path relative to the base URL, starting with '/' (e.g. '/me/messages?$top=5')"),
		),
		mcp.WithObject("headers",
			mcp.Description("Additional request headers as a string-to-string object (e.g. {\"If-Match\": \"<etag>\"}). Overrides defaults on collision."),
		),
		mcp.WithBoolean("rawResponse",
			mcp.Description("Return the response exactly as received, skipping OData metadata stripping and pretty-printing (default: false)"),
		),
		mcp.WithBoolean("includeHeaders",
			mcp.Description("Attach the response ETag to object results as '_etag' (default: false)"),
		),
	}
}

// bodyParam returns the body tool option used by the mutating request tools.
func bodyParam() mcp.ToolOption {
	return mcp.WithString("body",
		mcp.Description("Request body as a JSON string matching the Graph schema for the target endpoint"),
	)
}
