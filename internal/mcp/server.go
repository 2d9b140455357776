package mcp

import (
	"fmt"

	"fsops/internal/logging"
	"fsops/pkg/fileops"

	"github.com/mark3labs/mcp-go/server"
)

// ServerName is reported to MCP clients during initialization.
const ServerName = "fsops"

// Server represents an MCP server instance using mcp-go
type Server struct {
	manager   *fileops.Manager
	logger    *logging.AppLogger
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server whose tools run against manager.
func NewServer(manager *fileops.Manager, logger *logging.AppLogger, version string) *Server {
	s := &Server{
		manager: manager,
		logger:  logger,
		mcpServer: server.NewMCPServer(ServerName, version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
	}
	s.registerTools()
	return s
}

// Start serves MCP over stdin/stdout until EOF or termination.
func (s *Server) Start() error {
	s.logger.Info("Starting MCP server on stdio", "tools", len(toolNames))

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	s.logger.Info("MCP server stopped")
	return nil
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}
