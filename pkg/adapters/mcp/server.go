// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package mcp

import (
	"context"
	"io"

	"github.com/mark3labs/mcp-go/server"

	"github.com/leseb/pdfrag/pkg/core/engine"
	"github.com/leseb/pdfrag/pkg/observability/logging"
)

// ServerName is the MCP server name
const ServerName = "pdfrag"

// Server wraps the MCP server with the engine it serves
type Server struct {
	mcp    *server.MCPServer
	engine *engine.Engine
	logger *logging.Logger
}

// NewServer creates a new MCP server instance
func NewServer(eng *engine.Engine, logger *logging.Logger, version string) *Server {
	if logger == nil {
		logger = logging.Discard()
	}

	s := &Server{
		mcp: server.NewMCPServer(
			ServerName,
			version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		engine: eng,
		logger: logger.Component("mcp"),
	}
	s.registerTools()
	return s
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(loadDocumentTool(), s.handleLoadDocument)
	s.mcp.AddTool(askDocumentTool(), s.handleAskDocument)
	s.mcp.AddTool(searchChunksTool(), s.handleSearchChunks)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
}

// Serve reads JSON-RPC messages from in and writes responses to out until
// ctx is cancelled or in is closed. Logs must not go to out.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info("MCP server listening on stdio")
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}
