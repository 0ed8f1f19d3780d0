package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 5 * time.Millisecond, Multiplier: 2}
}

func TestRetry(t *testing.T) {
	good := MockResponse{Content: json.RawMessage(adaFeedback)}
	fail := func(k ErrorKind) MockResponse { return MockResponse{Err: &Error{Kind: k, Provider: "mock"}} }
	badShape := MockResponse{Content: json.RawMessage(`{"summary":"no suggestions"}`)}

	tests := []struct {
		name      string
		script    []MockResponse
		wantKind  ErrorKind
		wantErr   bool
		wantCalls int
	}{
		{"first attempt", []MockResponse{good}, 0, false, 1},
		{"outage then success", []MockResponse{fail(KindUnavailable), fail(KindRateLimited), good}, 0, false, 3},
		{"outage every time", []MockResponse{fail(KindUnavailable), fail(KindUnavailable), fail(KindUnavailable), good}, KindUnavailable, true, 3},
		{"rejected key", []MockResponse{fail(KindRejected), good}, KindRejected, true, 1},
		{"truncated", []MockResponse{fail(KindTruncated), good}, KindTruncated, true, 1},
		{"wrong shape once", []MockResponse{badShape, good}, 0, false, 2},
		{"wrong shape twice", []MockResponse{badShape, badShape, good}, KindInvalidResponse, true, 2},
		{"untyped error", []MockResponse{{Err: errors.New("connection reset")}, good}, 0, false, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMockProvider(tt.script...)
			resp, err := WithRetry(m, fastRetry()).Generate(context.Background(), feedbackRequest("Ada"))
			assert.Equal(t, tt.wantCalls, m.CallCount())
			if !tt.wantErr {
				require.NoError(t, err)
				assert.JSONEq(t, adaFeedback, string(resp.Content))
				return
			}
			kind, ok := KindOf(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

func TestRetry_StopsWhenContextEnds(t *testing.T) {
	m := NewMockProvider(MockResponse{Err: &Error{Kind: KindUnavailable}}, MockResponse{Content: json.RawMessage(adaFeedback)})
	cfg := RetryConfig{MaxAttempts: 3, InitialWait: time.Minute, MaxWait: time.Minute, Multiplier: 1}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := WithRetry(m, cfg).Generate(ctx, feedbackRequest("Ada"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, m.CallCount())
}

func TestRetry_SlowAttemptIsNotRepeated(t *testing.T) {
	m := NewMockProvider(
		MockResponse{Content: json.RawMessage(adaFeedback), Delay: time.Minute},
		MockResponse{Content: json.RawMessage(adaFeedback)},
	)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := WithRetry(m, fastRetry()).Generate(ctx, feedbackRequest("Ada"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, m.CallCount())
}

func TestRetry_Wait(t *testing.T) {
	r := &RetryProvider{cfg: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: 300 * time.Millisecond, Multiplier: 2}}
	plain := &Error{Kind: KindUnavailable}

	within := func(d, want time.Duration) {
		t.Helper()
		assert.GreaterOrEqual(t, d, want*8/10)
		assert.LessOrEqual(t, d, want*12/10)
	}
	within(r.wait(0, plain), 100*time.Millisecond)
	within(r.wait(1, plain), 200*time.Millisecond)
	within(r.wait(5, plain), 300*time.Millisecond)

	limited := &Error{Kind: KindRateLimited, RetryAfter: 7 * time.Second}
	assert.Equal(t, 7*time.Second, r.wait(0, limited))
}

func TestRetry_ZeroAttemptsStillCalls(t *testing.T) {
	m := NewMockProvider(MockResponse{Content: json.RawMessage(adaFeedback)})
	_, err := WithRetry(m, RetryConfig{}).Generate(context.Background(), feedbackRequest("Ada"))
	require.NoError(t, err)
	assert.Equal(t, "mock", WithRetry(m, RetryConfig{}).ModelID())
}
