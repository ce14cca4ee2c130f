// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/leseb/pdfrag/pkg/chunking"
	"github.com/leseb/pdfrag/pkg/core/engine"
	"github.com/leseb/pdfrag/pkg/core/state"
	"github.com/leseb/pdfrag/pkg/extractor"
	"github.com/leseb/pdfrag/pkg/observability/logging"
	"github.com/leseb/pdfrag/pkg/source"
)

const defaultMaxUploadBytes = 32 << 20

// Handler implements the HTTP adapter
type Handler struct {
	engine         *engine.Engine
	logger         *logging.Logger
	mux            *http.ServeMux
	maxUploadBytes int64
}

// New creates a new HTTP handler. maxUploadBytes caps multipart uploads;
// zero selects a 32 MiB default.
func New(eng *engine.Engine, logger *logging.Logger, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	if logger == nil {
		logger = logging.Discard()
	}
	h := &Handler{
		engine:         eng,
		logger:         logger.Component("http"),
		mux:            http.NewServeMux(),
		maxUploadBytes: maxUploadBytes,
	}

	// Register routes
	h.mux.HandleFunc("GET /health", h.handleHealth)
	h.mux.HandleFunc("GET /openapi.json", h.handleOpenAPI)

	// Session
	h.mux.HandleFunc("GET /v1/session", h.handleGetSession)
	h.mux.HandleFunc("PUT /v1/session/strategy", h.handleSetStrategy)
	h.mux.HandleFunc("GET /v1/messages", h.handleListMessages)
	h.mux.HandleFunc("GET /v1/chunks", h.handleListChunks)

	// Documents
	h.mux.HandleFunc("POST /v1/documents", h.handleUploadDocument)
	h.mux.HandleFunc("POST /v1/documents/import", h.handleImportDocument)

	// Questions
	h.mux.HandleFunc("POST /v1/ask", h.handleAsk)
	h.mux.HandleFunc("POST /v1/search", h.handleSearch)

	return h
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("Request",
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr)

	h.mux.ServeHTTP(w, r)
}

// handleHealth handles health check requests
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

// writeError writes an error response
func (h *Handler) writeError(w http.ResponseWriter, status int, errType, message string) {
	h.writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"type":    errType,
			"message": message,
		},
	})
}

// writeEngineError maps domain errors to status codes and user-facing
// messages.
func (h *Handler) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chunking.ErrUnsupportedStrategy), errors.Is(err, engine.ErrEmptyQuery):
		h.writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, state.ErrStrategyLocked):
		h.writeError(w, http.StatusConflict, "strategy_locked", err.Error())
	case errors.Is(err, state.ErrNotReady):
		h.writeError(w, http.StatusConflict, "not_ready", "Upload a document before asking questions.")
	case errors.Is(err, state.ErrSuperseded):
		h.writeError(w, http.StatusConflict, "superseded", err.Error())
	case errors.Is(err, extractor.ErrPDFParse), errors.Is(err, extractor.ErrNoText):
		h.writeError(w, http.StatusUnprocessableEntity, "processing_error", engine.ProcessFailedMessage)
	case errors.Is(err, engine.ErrGenerationFailed):
		h.writeError(w, http.StatusBadGateway, "generation_error", engine.GenerationFailedMessage)
	case errors.Is(err, source.ErrNotFound):
		h.writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, source.ErrForbidden):
		h.writeError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, source.ErrTooLarge):
		h.writeError(w, http.StatusRequestEntityTooLarge, "too_large", err.Error())
	default:
		h.logger.Error("Request failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

// parseStrategy accepts an empty value as "keep the session's strategy".
func parseStrategy(s string) (chunking.Strategy, error) {
	if s == "" {
		return "", nil
	}
	return chunking.ParseStrategy(s)
}
