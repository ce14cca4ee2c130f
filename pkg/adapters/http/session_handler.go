// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"net/http"

	"github.com/leseb/pdfrag/pkg/chunking"
)

// SetStrategyRequest is the body of PUT /v1/session/strategy.
type SetStrategyRequest struct {
	Strategy string `json:"strategy"`
}

// ChunkList is the body of GET /v1/chunks.
type ChunkList struct {
	Object string           `json:"object"`
	Data   []chunking.Chunk `json:"data"`
}

// handleGetSession handles GET /v1/session
func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.engine.Session().Snapshot())
}

// handleSetStrategy handles PUT /v1/session/strategy
func (h *Handler) handleSetStrategy(w http.ResponseWriter, r *http.Request) {
	var req SetStrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}
	strategy, err := chunking.ParseStrategy(req.Strategy)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	if err := h.engine.Session().SetStrategy(strategy); err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.logger.Info("Chunking strategy changed", "strategy", string(strategy))
	h.writeJSON(w, http.StatusOK, h.engine.Session().Snapshot())
}

// handleListMessages handles GET /v1/messages
func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"object": "list",
		"data":   h.engine.Session().Messages(),
	})
}

// handleListChunks handles GET /v1/chunks
func (h *Handler) handleListChunks(w http.ResponseWriter, r *http.Request) {
	chunks, _, err := h.engine.Session().Chunks()
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ChunkList{Object: "list", Data: chunks})
}
