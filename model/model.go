// Package model defines the reasoning-provider contract the agents depend
// on: a single-turn text completion with a system prompt and a user message,
// returning generated text plus wall-clock latency. Provider adapters live
// in the anthropic and openai subpackages; MockCompleter serves tests.
package model

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Request is one single-turn completion request. There is no conversation
// memory across calls.
type Request struct {
	// System is the role brief anchoring the provider's tone and output
	// shape. Empty means no system prompt.
	System string

	// User is the task description plus serialized analysis context.
	User string

	// MaxTokens caps the generated output. Zero lets the adapter apply
	// its configured default.
	MaxTokens int64
}

// Completion is the provider's answer with the observed call latency.
type Completion struct {
	Text    string
	Latency time.Duration
}

// Info contains metadata about a completer implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "anthropic", "openai", "mock"
}

// Completer is the minimal interface an agent needs to reason. Calls are
// stateless and blocking; cancellation propagates through ctx.
type Completer interface {
	Complete(ctx context.Context, req Request) (*Completion, error)

	// Info returns information about the completer implementation.
	Info() Info
}

// MockCompleter is a lightweight in-memory Completer useful for tests. It
// records every request it receives and replays canned responses keyed by
// user message, falling back to a generated echo. Safe for concurrent use.
type MockCompleter struct {
	mu        sync.Mutex
	info      Info
	responses map[string]string
	calls     []Request
	err       error
	latency   time.Duration
}

// NewMockCompleter constructs a MockCompleter.
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{
		info:      Info{Name: "mock-model", Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for a user message.
func (m *MockCompleter) AddResponse(user, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[user] = response
}

// FailWith makes every subsequent Complete call return err.
func (m *MockCompleter) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetLatency fixes the latency reported on completions.
func (m *MockCompleter) SetLatency(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latency = d
}

// Calls returns a copy of the requests received so far.
func (m *MockCompleter) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many Complete calls were made.
func (m *MockCompleter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Complete implements Completer.
func (m *MockCompleter) Complete(ctx context.Context, req Request) (*Completion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)

	if m.err != nil {
		return nil, m.err
	}

	text := m.responses[req.User]
	if text == "" {
		text = fmt.Sprintf("Mock response to: %s", req.User)
	}

	return &Completion{Text: text, Latency: m.latency}, nil
}

// Info implements Completer.
func (m *MockCompleter) Info() Info { return m.info }
