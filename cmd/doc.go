// Package cmd provides the command-line interface for ms-365-mcp-server.
//
// This package implements a Cobra-based CLI with multiple subcommands:
//   - serve: Starts the MCP server (default behavior when no subcommand is provided)
//   - version: Displays the application version
//   - self-update: Updates the binary to the latest version from GitHub releases
//
// The CLI maintains backwards compatibility by running the serve command when
// no subcommand is specified.
//
// Command Structure:
//
//	ms-365-mcp-server [flags]                 # Starts the MCP server (default)
//	ms-365-mcp-server serve [flags]           # Explicitly starts the MCP server
//	ms-365-mcp-server version                 # Shows version information
//	ms-365-mcp-server self-update             # Updates to latest release
//	ms-365-mcp-server help [command]          # Shows help information
//
// The serve command supports multiple transport options:
//   - stdio: Standard input/output (default) - for command-line integration
//   - streamable-http: Streamable HTTP transport - for HTTP-based integration
//
// Transport Configuration Examples:
//
//	ms-365-mcp-server serve --transport stdio
//	ms-365-mcp-server serve --transport streamable-http --http-addr :9000 --http-endpoint /mcp
//
// The serve command also supports flags controlling Microsoft Graph access:
// tenant and client identifiers, read-only mode, and the Graph base URL.
// Credentials are supplied through environment variables
// (MS365_MCP_ACCESS_TOKEN, MS365_MCP_REFRESH_TOKEN, MS365_MCP_CLIENT_SECRET).
package cmd
