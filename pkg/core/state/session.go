// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package state holds the single-document session: its lifecycle status,
// the current chunk snapshot and the conversation log.
package state

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/leseb/pdfrag/pkg/chunking"
)

var (
	// ErrNotReady is returned when a query arrives before a document is ready.
	ErrNotReady = errors.New("no document is ready")

	// ErrStrategyLocked is returned when the strategy is changed outside the
	// initial state.
	ErrStrategyLocked = errors.New("chunking strategy can only be changed before a document is loaded")

	// ErrSuperseded is returned when an ingestion finishes after a newer one
	// has started.
	ErrSuperseded = errors.New("ingestion superseded by a newer upload")
)

// Status is the session lifecycle state.
type Status string

const (
	StatusInitial    Status = "initial"
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
)

// Author identifies who wrote a conversation message.
type Author string

const (
	AuthorUser Author = "user"
	AuthorAI   Author = "ai"
)

// Message is one entry in the conversation log.
type Message struct {
	ID        int              `json:"id"`
	Author    Author           `json:"author"`
	Text      string           `json:"text"`
	Sources   []chunking.Chunk `json:"sources,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// Ticket identifies one ingestion. Only the latest ticket may complete.
type Ticket uint64

// Snapshot is a point-in-time copy of the session for display.
type Snapshot struct {
	Status       Status            `json:"status"`
	Strategy     chunking.Strategy `json:"strategy"`
	DocumentName string            `json:"document_name,omitempty"`
	ChunkCount   int               `json:"chunk_count"`
	TextLength   int               `json:"text_length"`
	Error        string            `json:"error,omitempty"`
	MessageCount int               `json:"message_count"`
}

// Session is the state of one document conversation. It is safe for
// concurrent use. Chunk slices handed out are never mutated afterwards;
// a new ingestion replaces them wholesale.
type Session struct {
	mu sync.RWMutex

	status    Status
	strategy  chunking.Strategy
	docName   string
	text      string
	chunks    []chunking.Chunk
	messages  []Message
	nextMsgID int
	lastError string

	ticket Ticket
	cancel context.CancelFunc

	now func() time.Time
}

// NewSession creates a session in the initial state.
func NewSession(strategy chunking.Strategy) *Session {
	if strategy == "" {
		strategy = chunking.DefaultStrategy
	}
	return &Session{
		status:   StatusInitial,
		strategy: strategy,
		now:      time.Now,
	}
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Strategy returns the selected chunking strategy.
func (s *Session) Strategy() chunking.Strategy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.strategy
}

// SetStrategy changes the chunking strategy. It is only allowed in the
// initial state.
func (s *Session) SetStrategy(strategy chunking.Strategy) error {
	strategy, err := chunking.ParseStrategy(string(strategy))
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusInitial {
		return ErrStrategyLocked
	}
	s.strategy = strategy
	return nil
}

// Begin starts a new ingestion of the named document. The previous document,
// its chunks and the conversation are discarded, and any ingestion still in
// flight is cancelled. A non-empty strategy overrides the selected one for
// this and later documents. The returned context is cancelled when a newer
// ingestion begins.
func (s *Session) Begin(ctx context.Context, name string, strategy chunking.Strategy) (context.Context, Ticket, chunking.Strategy) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.ticket++
	s.cancel = cancel

	if strategy != "" {
		s.strategy = strategy
	}
	s.status = StatusProcessing
	s.docName = name
	s.text = ""
	s.chunks = nil
	s.messages = nil
	s.lastError = ""

	return ctx, s.ticket, s.strategy
}

// Complete installs the chunks produced by the ingestion identified by t,
// moves the session to ready and posts welcome as the first AI message.
func (s *Session) Complete(t Ticket, text string, chunks []chunking.Chunk, welcome string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t != s.ticket {
		return ErrSuperseded
	}
	s.release()
	s.status = StatusReady
	s.text = text
	s.chunks = chunks
	if welcome != "" {
		s.appendLocked(AuthorAI, welcome, nil)
	}
	return nil
}

// Fail records a failed ingestion and returns the session to the initial
// state so a new document or strategy can be chosen.
func (s *Session) Fail(t Ticket, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t != s.ticket {
		return ErrSuperseded
	}
	s.release()
	s.status = StatusInitial
	s.docName = ""
	s.lastError = reason
	return nil
}

func (s *Session) release() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Chunks returns the current chunk snapshot and the ticket of the document
// it belongs to. It fails with ErrNotReady unless a document has been
// processed.
func (s *Session) Chunks() ([]chunking.Chunk, Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.status != StatusReady {
		return nil, 0, ErrNotReady
	}
	return s.chunks, s.ticket, nil
}

// AppendMessage adds a message to the conversation of the document
// identified by t. Messages for a replaced document fail with ErrSuperseded.
func (s *Session) AppendMessage(t Ticket, author Author, text string, sources []chunking.Chunk) (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t != s.ticket {
		return Message{}, ErrSuperseded
	}
	return s.appendLocked(author, text, sources), nil
}

func (s *Session) appendLocked(author Author, text string, sources []chunking.Chunk) Message {
	msg := Message{
		ID:        s.nextMsgID,
		Author:    author,
		Text:      text,
		Sources:   sources,
		CreatedAt: s.now(),
	}
	s.nextMsgID++
	s.messages = append(s.messages, msg)
	return msg
}

// Messages returns a copy of the conversation log.
func (s *Session) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Snapshot returns a summary of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Status:       s.status,
		Strategy:     s.strategy,
		DocumentName: s.docName,
		ChunkCount:   len(s.chunks),
		TextLength:   len([]rune(s.text)),
		Error:        s.lastError,
		MessageCount: len(s.messages),
	}
}
