package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedbackRequest(name string) Request {
	return Request{
		System:    "You write encouraging school feedback.",
		Messages:  []Message{{Role: RoleUser, Content: "Student: " + name}},
		Schema:    feedbackSchema,
		MaxTokens: 400,
	}
}

func TestMockProvider_PlaysScriptInOrder(t *testing.T) {
	m := NewMockProvider(
		MockResponse{Content: json.RawMessage(adaFeedback), Usage: Usage{InputTokens: 120, OutputTokens: 40, TotalTokens: 160}},
		MockResponse{Err: &Error{Kind: KindRateLimited}},
	)

	resp, err := m.Generate(context.Background(), feedbackRequest("Ada"))
	require.NoError(t, err)
	assert.JSONEq(t, adaFeedback, string(resp.Content))
	assert.Equal(t, 160, resp.Usage.TotalTokens)
	assert.Equal(t, "mock", resp.Model)
	assert.Equal(t, "end", resp.StopReason)

	_, err = m.Generate(context.Background(), feedbackRequest("Ben"))
	kind, _ := KindOf(err)
	assert.Equal(t, KindRateLimited, kind)

	_, err = m.Generate(context.Background(), feedbackRequest("Cara"))
	kind, _ = KindOf(err)
	assert.Equal(t, KindUnavailable, kind)

	require.Equal(t, 3, m.CallCount())
	assert.Equal(t, "Student: Ben", m.Calls[1].Messages[0].Content)
}

func TestMockProvider_ValidatesAgainstSchema(t *testing.T) {
	m := NewMockProvider(MockResponse{Content: json.RawMessage(`{"summary":"Ada"}`)})
	_, err := m.Generate(context.Background(), feedbackRequest("Ada"))
	kind, _ := KindOf(err)
	assert.Equal(t, KindInvalidResponse, kind)

	m.AddResponse(MockResponse{Content: json.RawMessage("free text")})
	req := feedbackRequest("Ada")
	req.Schema = nil
	resp, err := m.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "free text", string(resp.Content))
}

func TestMockProvider_DelayHonoursContext(t *testing.T) {
	m := NewMockProvider(MockResponse{Content: json.RawMessage(adaFeedback), Delay: time.Minute})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := m.Generate(ctx, feedbackRequest("Ada"))
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestPurpose(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, "feedback", PurposeFrom(WithPurpose(ctx, "feedback")))
	assert.Equal(t, "unknown", PurposeFrom(WithPurpose(ctx, "")))
}

func TestErrorKind(t *testing.T) {
	err := fmt.Errorf("narrative: %w", &Error{Kind: KindRejected, Provider: "openai", Err: errors.New("bad key")})
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindRejected, kind)
	assert.Equal(t, "narrative: openai: rejected: bad key", err.Error())

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)

	assert.Equal(t, "llm: truncated", (&Error{Kind: KindTruncated}).Error())
}
