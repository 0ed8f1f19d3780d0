package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatCall struct {
	path string
	auth string
	body map[string]any
}

func chatStub(t *testing.T, status int, body map[string]any) (string, *chatCall) {
	t.Helper()
	call := &chatCall{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call.path = r.URL.Path
		call.auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&call.body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL, call
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini-2024-07-18",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 150, "completion_tokens": 50, "total_tokens": 200},
	}
}

func chatError(kind string) map[string]any {
	return map[string]any{"error": map[string]any{"type": kind, "message": kind}}
}

func TestOpenAIProvider_Narrative(t *testing.T) {
	url, call := chatStub(t, http.StatusOK, chatCompletion(adaFeedback, "stop"))
	p, err := NewOpenAIProvider(BackendConfig{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: url + "/v1"})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), feedbackRequest("Ada"))
	require.NoError(t, err)
	assert.JSONEq(t, adaFeedback, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 150, OutputTokens: 50, TotalTokens: 200}, resp.Usage)
	assert.Equal(t, "end", resp.StopReason)
	require.NotNil(t, LookupCost(resp.Model))

	assert.Equal(t, "/v1/chat/completions", call.path)
	assert.Equal(t, "Bearer sk-test", call.auth)
	format, _ := call.body["response_format"].(map[string]any)
	schema, _ := format["json_schema"].(map[string]any)
	assert.Equal(t, "student-feedback", schema["name"])
	msgs, _ := call.body["messages"].([]any)
	assert.Len(t, msgs, 2, "system prompt plus one user message")
}

func TestOpenAIProvider_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   map[string]any
		want   ErrorKind
	}{
		{"rate limited", http.StatusTooManyRequests, chatError("rate_limit_exceeded"), KindRateLimited},
		{"server error", http.StatusBadGateway, chatError("server_error"), KindUnavailable},
		{"bad key", http.StatusUnauthorized, chatError("invalid_api_key"), KindRejected},
		{"wrong shape", http.StatusOK, chatCompletion(`{"summary":1,"suggestions":[]}`, "stop"), KindInvalidResponse},
		{"cut off", http.StatusOK, chatCompletion(`{"summary":"Ben`, "length"), KindTruncated},
		{"no choices", http.StatusOK, map[string]any{"id": "x", "object": "chat.completion", "choices": []any{}}, KindInvalidResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, _ := chatStub(t, tt.status, tt.body)
			p, err := NewOpenAIProvider(BackendConfig{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: url + "/v1"})
			require.NoError(t, err)

			_, err = p.Generate(context.Background(), feedbackRequest("Ben"))
			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.want, e.Kind)
			assert.Equal(t, "openai", e.Provider)
		})
	}
}

func TestOpenRouterProvider(t *testing.T) {
	url, call := chatStub(t, http.StatusOK, chatCompletion(adaFeedback, "stop"))
	p, err := NewOpenRouterProvider(BackendConfig{APIKey: "sk-or-test", Model: "google/gemini-2.0-flash-exp", BaseURL: url})
	require.NoError(t, err)
	assert.Equal(t, "google/gemini-2.0-flash-exp", p.ModelID())

	_, err = p.Generate(context.Background(), feedbackRequest("Cara"))
	require.NoError(t, err)
	assert.Equal(t, "/chat/completions", call.path)
	assert.Equal(t, "Bearer sk-or-test", call.auth)
	assert.Equal(t, "google/gemini-2.0-flash-exp", call.body["model"])

	_, err = NewOpenRouterProvider(BackendConfig{Model: "google/gemini-2.0-flash-exp"})
	assert.ErrorContains(t, err, "openrouter")
}

func TestOpenRouterProvider_DefaultHost(t *testing.T) {
	p, err := NewOpenRouterProvider(BackendConfig{APIKey: "sk-or-test", Model: "anthropic/claude-3-haiku"})
	require.NoError(t, err)
	assert.Equal(t, "openrouter", p.name)
	assert.Equal(t, "anthropic/claude-3-haiku", p.ModelID())
}
