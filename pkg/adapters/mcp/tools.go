// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/leseb/pdfrag/pkg/chunking"
	"github.com/leseb/pdfrag/pkg/core/engine"
	"github.com/leseb/pdfrag/pkg/core/state"
	"github.com/leseb/pdfrag/pkg/extractor"
)

// handleLoadDocument handles the load_document tool invocation
func (s *Server) handleLoadDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uri, err := request.RequireString("uri")
	if err != nil || strings.TrimSpace(uri) == "" {
		return mcp.NewToolResultError("uri parameter is required"), nil
	}

	var strategy chunking.Strategy
	if raw := request.GetString("strategy", ""); raw != "" {
		if strategy, err = chunking.ParseStrategy(raw); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	res, err := s.engine.Import(ctx, uri, strategy)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultStructured(res, res.Message), nil
}

// handleAskDocument handles the ask_document tool invocation
func (s *Server) handleAskDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question parameter is required"), nil
	}

	res, err := s.engine.Ask(ctx, question)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultStructured(res, formatAnswer(res)), nil
}

// handleSearchChunks handles the search_chunks tool invocation
func (s *Server) handleSearchChunks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query parameter is required"), nil
	}

	scored, err := s.engine.Search(query)
	if err != nil {
		return toolError(err), nil
	}
	result, err := mcp.NewToolResultJSON(map[string]interface{}{
		"results": scored,
		"count":   len(scored),
	})
	if err != nil {
		return nil, fmt.Errorf("format search results: %w", err)
	}
	return result, nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(s.engine.Session().Snapshot())
	if err != nil {
		return nil, fmt.Errorf("format status: %w", err)
	}
	return result, nil
}

// toolError turns a domain error into the message shown to the client.
func toolError(err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, extractor.ErrPDFParse), errors.Is(err, extractor.ErrNoText):
		return mcp.NewToolResultError(engine.ProcessFailedMessage)
	case errors.Is(err, engine.ErrGenerationFailed):
		return mcp.NewToolResultError(engine.GenerationFailedMessage)
	case errors.Is(err, state.ErrNotReady):
		return mcp.NewToolResultError("No document is loaded. Call load_document first.")
	default:
		return mcp.NewToolResultError(err.Error())
	}
}

// formatAnswer renders an answer followed by its numbered sources.
func formatAnswer(res *engine.AskResult) string {
	var b strings.Builder
	b.WriteString(res.Answer)
	if len(res.Sources) > 0 {
		b.WriteString("\n\nSources:")
		for _, c := range res.Sources {
			fmt.Fprintf(&b, "\n[chunk %d] %s", c.ID, c.Text)
		}
	}
	return b.String()
}
