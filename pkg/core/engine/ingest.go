// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"fmt"

	"github.com/leseb/pdfrag/pkg/chunking"
	"github.com/leseb/pdfrag/pkg/extractor"
	"github.com/leseb/pdfrag/pkg/source"
)

// IngestResult summarises a processed document.
type IngestResult struct {
	DocumentName string            `json:"document_name"`
	Strategy     chunking.Strategy `json:"strategy"`
	ChunkCount   int               `json:"chunk_count"`
	TextLength   int               `json:"text_length"`
	Message      string            `json:"message"`
}

// Ingest replaces the session's document with content. The text is
// extracted, chunked with strategy (or the session's selected strategy when
// empty) and published atomically. A newer Ingest supersedes this one; the
// stale call then returns state.ErrSuperseded and publishes nothing. The
// superseded ingestion's context is cancelled.
//
// An unknown strategy fails with chunking.ErrUnsupportedStrategy before the
// session is touched. On extraction failure the session returns to its
// initial state with ProcessFailedMessage as its error.
func (e *Engine) Ingest(ctx context.Context, name string, content []byte, strategy chunking.Strategy) (*IngestResult, error) {
	if strategy != "" {
		var err error
		if strategy, err = chunking.ParseStrategy(string(strategy)); err != nil {
			return nil, err
		}
	}
	ctx, ticket, strategy := e.session.Begin(ctx, name, strategy)
	log := e.logger.With("document", name, "strategy", string(strategy), "bytes", len(content))
	log.Info("Processing document")

	text, err := extractor.Extract(content, name)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		if failErr := e.session.Fail(ticket, ProcessFailedMessage); failErr != nil {
			log.Info("Document processing superseded")
			return nil, failErr
		}
		log.Warn("Failed to process document", "error", err)
		return nil, fmt.Errorf("process %s: %w", name, err)
	}

	chunks, err := chunking.Split(text, strategy, e.opts.Chunking)
	if err != nil {
		if failErr := e.session.Fail(ticket, ProcessFailedMessage); failErr != nil {
			return nil, failErr
		}
		return nil, fmt.Errorf("chunk %s: %w", name, err)
	}

	welcome := WelcomeMessage(name)
	if err := e.session.Complete(ticket, text, chunks, welcome); err != nil {
		log.Info("Document processing superseded")
		return nil, err
	}

	log.Info("Document ready", "chunks", len(chunks))
	return &IngestResult{
		DocumentName: name,
		Strategy:     strategy,
		ChunkCount:   len(chunks),
		TextLength:   len([]rune(text)),
		Message:      welcome,
	}, nil
}

// Import loads the document at uri through the registered document sources
// and ingests it.
func (e *Engine) Import(ctx context.Context, uri string, strategy chunking.Strategy) (*IngestResult, error) {
	doc, err := source.Open(ctx, uri, e.opts.SourceParams)
	if err != nil {
		e.logger.Warn("Failed to load document", "uri", uri, "error", err)
		return nil, fmt.Errorf("load %s: %w", uri, err)
	}
	return e.Ingest(ctx, doc.Name, doc.Content, strategy)
}

// LocalImportsConfined reports whether file imports are restricted to a
// configured base directory.
func (e *Engine) LocalImportsConfined() bool {
	return e.opts.SourceParams["base_dir"] != ""
}
