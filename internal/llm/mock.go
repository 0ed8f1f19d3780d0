package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"
)

// MockResponse is one scripted outcome of MockProvider.Generate.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
	// Delay holds the call open, returning early if ctx ends first.
	Delay time.Duration
}

// MockProvider replays scripted responses in order and records requests.
// Like the hosted backends it validates Content against the request schema.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	Calls  []Request
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

// AddResponse appends to the script.
func (m *MockProvider) AddResponse(r MockResponse) {
	m.mu.Lock()
	m.script = append(m.script, r)
	m.mu.Unlock()
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockProvider) ModelID() string { return "mock" }

// Generate plays the next scripted response. An exhausted script fails as
// KindUnavailable.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	var next MockResponse
	empty := len(m.script) == 0
	if !empty {
		next, m.script = m.script[0], m.script[1:]
	}
	m.mu.Unlock()

	if empty {
		return nil, &Error{Kind: KindUnavailable, Provider: "mock", Err: errors.New("script exhausted")}
	}
	if next.Delay > 0 {
		t := time.NewTimer(next.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	if next.Err != nil {
		return nil, next.Err
	}
	return finish("mock", req, &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: stopEnd,
	})
}
