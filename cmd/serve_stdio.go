package cmd

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// runStdioServer serves MCP over stdin/stdout. The transport owns both
// streams for the lifetime of the session, so nothing else in the process
// may write to stdout while it runs; ServeStdio blocks until the client
// closes stdin or a read fails.
func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	if err := mcpserver.ServeStdio(mcpSrv); err != nil {
		return fmt.Errorf("stdio transport: %w", err)
	}
	return nil
}
