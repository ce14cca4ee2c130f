// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/leseb/pdfrag/pkg/source"
)

// ImportRequest is the body of POST /v1/documents/import.
type ImportRequest struct {
	URI      string `json:"uri"`
	Strategy string `json:"strategy,omitempty"`
}

// handleUploadDocument handles POST /v1/documents
func (h *Handler) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxUploadBytes {
		h.writeError(w, http.StatusRequestEntityTooLarge, "too_large", "Document exceeds the upload limit")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, http.StatusRequestEntityTooLarge, "too_large", "Document exceeds the upload limit")
			return
		}
		h.logger.Error("Failed to parse multipart form", "error", err)
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "File is required")
		return
	}
	defer file.Close()

	strategy, err := parseStrategy(strings.TrimSpace(r.FormValue("strategy")))
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read file content", "error", err)
		h.writeError(w, http.StatusInternalServerError, "read_error", "Failed to read file content")
		return
	}

	res, err := h.engine.Ingest(r.Context(), header.Filename, content, strategy)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, res)
}

// handleImportDocument handles POST /v1/documents/import
func (h *Handler) handleImportDocument(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}
	if strings.TrimSpace(req.URI) == "" {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "uri is required")
		return
	}
	scheme, _, err := source.ParseURI(req.URI)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if scheme == "file" && !h.engine.LocalImportsConfined() {
		h.logger.Warn("Rejected file import without a document directory", "uri", req.URI)
		h.writeError(w, http.StatusForbidden, "forbidden", "File imports are disabled; configure source.base_dir")
		return
	}
	strategy, err := parseStrategy(req.Strategy)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	res, err := h.engine.Import(r.Context(), req.URI, strategy)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, res)
}
