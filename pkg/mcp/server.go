// Package mcp exposes treegen operations over the Model Context Protocol so
// AI assistants can generate and inspect tree datasets directly.
package mcp

import (
	"context"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Config controls MCP server startup.
type Config struct {
	Version string
}

// RunServer starts the MCP stdio server with the treegen tool set.
func RunServer(ctx context.Context, cfg Config) error {
	server := mcpserver.NewMCPServer(
		"treegen",
		cfg.Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	for _, tool := range BuildTools() {
		server.AddTool(tool.Tool, tool.Handler)
	}

	return mcpserver.ServeStdio(server, mcpserver.WithStdioContextFunc(func(_ context.Context) context.Context {
		return ctx
	}))
}
