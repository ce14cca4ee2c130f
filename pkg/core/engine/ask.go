// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/leseb/pdfrag/pkg/chunking"
	"github.com/leseb/pdfrag/pkg/core/state"
	"github.com/leseb/pdfrag/pkg/retrieval"
)

// AskResult is the outcome of one question.
type AskResult struct {
	Answer  string           `json:"answer"`
	Sources []chunking.Chunk `json:"sources"`
	Message state.Message    `json:"message"`
}

// Answer asks the language model to answer query from chunks alone. Any
// failure, including the timeout, is reported as ErrGenerationFailed.
func (e *Engine) Answer(ctx context.Context, query string, chunks []chunking.Chunk) (string, error) {
	prompt := BuildPrompt(query, BuildContext(chunks))

	ctx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	answer, err := e.llm.Generate(ctx, prompt)
	if err != nil {
		e.logger.Error("Answer generation failed", "error", err, "context_chunks", len(chunks))
		return "", fmt.Errorf("%w: %s", ErrGenerationFailed, err.Error())
	}
	return answer, nil
}

// Ask records query in the conversation, retrieves the relevant chunks from
// the current document and answers from them. When generation fails the
// apology message is recorded and returned alongside ErrGenerationFailed.
func (e *Engine) Ask(ctx context.Context, query string) (*AskResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	chunks, ticket, err := e.session.Chunks()
	if err != nil {
		return nil, err
	}
	if _, err := e.session.AppendMessage(ticket, state.AuthorUser, query, nil); err != nil {
		return nil, err
	}

	sources := retrieval.Retrieve(query, chunks)
	e.logger.Debug("Retrieved context", "query_len", len(query), "sources", len(sources))

	answer, genErr := e.Answer(ctx, query, sources)
	if genErr != nil {
		msg, err := e.session.AppendMessage(ticket, state.AuthorAI, GenerationFailedMessage, nil)
		if err != nil {
			return nil, err
		}
		return &AskResult{Answer: GenerationFailedMessage, Sources: []chunking.Chunk{}, Message: msg}, genErr
	}

	msg, err := e.session.AppendMessage(ticket, state.AuthorAI, answer, sources)
	if err != nil {
		return nil, err
	}
	return &AskResult{Answer: answer, Sources: sources, Message: msg}, nil
}

// Search ranks the current document's chunks against query without
// generating an answer.
func (e *Engine) Search(query string) ([]retrieval.ScoredChunk, error) {
	chunks, _, err := e.session.Chunks()
	if err != nil {
		return nil, err
	}
	return retrieval.Rank(query, chunks), nil
}
