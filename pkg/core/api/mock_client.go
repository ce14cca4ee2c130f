// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockClient is a TextGenerator for tests and offline runs.
// With no Reply set it echoes the prompt size back.
type MockClient struct {
	Reply string
	Err   error
	Delay time.Duration

	mu      sync.Mutex
	prompts []string
}

// NewMockClient creates a mock that always answers with reply.
func NewMockClient(reply string) *MockClient {
	return &MockClient{Reply: reply}
}

// Generate implements TextGenerator.
func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if m.Err != nil {
		return "", m.Err
	}
	if m.Reply != "" {
		return m.Reply, nil
	}
	return fmt.Sprintf("Mock response to a %d character prompt", len(prompt)), nil
}

// Prompts returns every prompt received so far.
func (m *MockClient) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}
