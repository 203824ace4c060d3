// Package server provides the ServerContext abstraction that wires the MCP
// server's dependencies together: the Graph client, logging, configuration,
// and the instrumentation provider.
//
// ServerContext is created once at startup via functional options and passed
// to every tool handler. It owns lifecycle management: a cancellable context
// shared by in-flight operations and an idempotent Shutdown.
package server
