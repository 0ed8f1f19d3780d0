// Package llm talks to hosted language models. Every backend returns JSON
// checked against the request's schema, and the decorators in this package
// add retries and request logging on top.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one response per request.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request is a single generation call.
type Request struct {
	System   string
	Messages []Message
	// Schema, when set, asks the backend for JSON output and the response
	// is validated against it.
	Schema      *Schema
	MaxTokens   int
	Temperature float64 // 0 leaves the backend default
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema. Name doubles as the OpenAI schema name, so
// keep it kebab-case.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string
	// StopReason is "end" or "max_tokens".
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

const (
	stopEnd       = "end"
	stopMaxTokens = "max_tokens"
)

// finish checks raw output from a backend and builds the response. Output
// cut off at the token limit is reported as KindTruncated when a schema
// was requested, since the JSON is almost certainly incomplete.
func finish(provider string, req Request, resp *Response) (*Response, error) {
	if req.Schema == nil {
		return resp, nil
	}
	if resp.StopReason == stopMaxTokens {
		return nil, &Error{Kind: KindTruncated, Provider: provider, Content: resp.Content}
	}
	if err := validate(provider, req.Schema, resp.Content); err != nil {
		return nil, err
	}
	return resp, nil
}
