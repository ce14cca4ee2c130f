// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package engine orchestrates the document question-answering flow:
// ingestion (extract, chunk, publish), retrieval and grounded generation.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/leseb/pdfrag/pkg/chunking"
	"github.com/leseb/pdfrag/pkg/core/api"
	"github.com/leseb/pdfrag/pkg/core/state"
	"github.com/leseb/pdfrag/pkg/observability/logging"
)

var (
	// ErrGenerationFailed is returned when the language model call errors or
	// times out.
	ErrGenerationFailed = errors.New("answer generation failed")

	// ErrEmptyQuery is returned for a blank question.
	ErrEmptyQuery = errors.New("query is empty")
)

// User-facing messages.
const (
	ProcessFailedMessage    = "Failed to process PDF. Please try another file."
	GenerationFailedMessage = "Sorry, I encountered an error trying to generate a response. Please check your API key and try again."
)

const defaultTimeout = 60 * time.Second

// Options configures an Engine.
type Options struct {
	Chunking chunking.Options
	// Timeout bounds each generation call.
	Timeout time.Duration
	// SourceParams are passed to document source factories on import
	// (region, endpoint, max_bytes, ...).
	SourceParams map[string]string
}

// Engine is the answer orchestrator for one session.
type Engine struct {
	opts    Options
	llm     api.TextGenerator
	session *state.Session
	logger  *logging.Logger
}

// New creates a new Engine instance.
func New(llm api.TextGenerator, session *state.Session, opts Options, logger *logging.Logger) (*Engine, error) {
	if llm == nil {
		return nil, fmt.Errorf("text generator is required")
	}
	if session == nil {
		return nil, fmt.Errorf("session is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Engine{
		opts:    opts,
		llm:     llm,
		session: session,
		logger:  logger.Component("engine"),
	}, nil
}

// Session returns the session the engine operates on.
func (e *Engine) Session() *state.Session {
	return e.session
}

// WelcomeMessage is posted once a document is ready.
func WelcomeMessage(name string) string {
	return fmt.Sprintf(`Successfully processed "%s". I'm ready to answer your questions.`, name)
}
