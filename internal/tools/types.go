// Package tools provides shared utilities and types for MCP tool implementations.
package tools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/logging"
	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/server"
)

// ToolHandler is the signature for MCP tool handler functions that take ServerContext.
type ToolHandler func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error)

// WrapWithLogging wraps a tool handler with invocation logging.
// The wrapper logs the tool name, duration, and outcome of every call through
// the ServerContext logger. MCP tool errors are carried in the result rather
// than as Go errors, so both are inspected.
func WrapWithLogging(
	toolName string,
	handler ToolHandler,
	sc *server.ServerContext,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := sc.Logger()

		start := time.Now()
		result, err := handler(ctx, request, sc)
		duration := time.Since(start)

		switch {
		case err != nil:
			logger.Error("tool call failed",
				logging.KeyTool, toolName,
				logging.KeyDuration, duration.String(),
				logging.KeyError, err)
		case result != nil && result.IsError:
			logger.Warn("tool call returned error result",
				logging.KeyTool, toolName,
				logging.KeyDuration, duration.String())
		default:
			logger.Debug("tool call completed",
				logging.KeyTool, toolName,
				logging.KeyDuration, duration.String())
		}

		return result, err
	}
}
