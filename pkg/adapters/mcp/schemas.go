// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// loadDocumentTool returns the tool definition for load_document
func loadDocumentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "load_document",
		Description: "Load a document (PDF, HTML, CSV, JSON or text) and replace the current one",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"uri": map[string]interface{}{
					"type":        "string",
					"description": "File path, file:// URI or s3://bucket/key URI",
				},
				"strategy": map[string]interface{}{
					"type":        "string",
					"description": "Chunking strategy; defaults to the session's selection",
					"enum":        []string{"fixed", "recursive"},
				},
			},
			Required: []string{"uri"},
		},
	}
}

// askDocumentTool returns the tool definition for ask_document
func askDocumentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "ask_document",
		Description: "Answer a question using only the loaded document",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Natural language question about the document",
				},
			},
			Required: []string{"question"},
		},
	}
}

// searchChunksTool returns the tool definition for search_chunks
func searchChunksTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_chunks",
		Description: "Return up to five document chunks sharing the most words with the query",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Keywords to match",
				},
			},
			Required: []string{"query"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Report the session status, chunking strategy and loaded document",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
