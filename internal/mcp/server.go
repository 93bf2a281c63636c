// ABOUTME: MCP server exposing the wellness data layer to AI assistants.
// ABOUTME: Tools and resources go through the same cache and session as the CLI.
package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/wellness/internal/data"
)

// Server wraps the MCP server with data layer access.
type Server struct {
	mcpServer *mcp.Server
	data      *data.Layer
}

// NewServer creates a new MCP server backed by the given data layer.
func NewServer(layer *data.Layer, version string) (*Server, error) {
	if layer == nil {
		return nil, errors.New("mcp: nil data layer")
	}
	if version == "" {
		version = "dev"
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "wellness",
			Version: version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		data:      layer,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
