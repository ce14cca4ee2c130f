// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"net/http"

	"github.com/leseb/pdfrag/pkg/retrieval"
)

// QueryRequest is the body of POST /v1/ask and POST /v1/search.
type QueryRequest struct {
	Query string `json:"query"`
}

// SearchResponse is the body returned by POST /v1/search.
type SearchResponse struct {
	Object string                  `json:"object"`
	Data   []retrieval.ScoredChunk `json:"data"`
}

func (h *Handler) decodeQuery(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return "", false
	}
	return req.Query, true
}

// handleAsk handles POST /v1/ask
func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	query, ok := h.decodeQuery(w, r)
	if !ok {
		return
	}

	res, err := h.engine.Ask(r.Context(), query)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.logger.Info("Answer sent", "sources", len(res.Sources))
	h.writeJSON(w, http.StatusOK, res)
}

// handleSearch handles POST /v1/search
func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query, ok := h.decodeQuery(w, r)
	if !ok {
		return
	}

	scored, err := h.engine.Search(query)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, SearchResponse{Object: "list", Data: scored})
}
