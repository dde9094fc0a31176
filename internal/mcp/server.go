// ABOUTME: MCP server setup for the hydration planner.
// ABOUTME: Wraps the MCP server around the hydration service for one user.
package mcp

import (
	"context"
	"errors"

	"github.com/harperreed/hydration/internal/hydration"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrNoUser is returned when no user email is configured for the MCP session.
var ErrNoUser = errors.New("no user configured: set default_user in config or pass --user")

// Server wraps the MCP server with service access.
type Server struct {
	mcpServer *mcp.Server
	service   *hydration.Service
	email     string
}

// NewServer creates a new MCP server acting on behalf of email.
func NewServer(service *hydration.Service, email string) (*Server, error) {
	email = hydration.NormalizeEmail(email)
	if email == "" {
		return nil, ErrNoUser
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "hydration",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		service:   service,
		email:     email,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
