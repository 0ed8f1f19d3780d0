package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/edusense/edusense/internal/llm"
)

func TestNarrator_Narrate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"summary": "  Ada is thriving across subjects.  ",
			"suggestions": ["Try the science olympiad.", "Read one novel a month.", "Mentor a peer.", "Extra item."]
		}`),
	})
	n := NewNarrator(mock, DefaultConfig())

	nv, err := n.Narrate(context.Background(), record("Ada", 95, 92, 90, 91, 93, 97, "Very good"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nv.Fallback {
		t.Error("expected model narrative, got fallback")
	}
	if nv.Summary != "Ada is thriving across subjects." {
		t.Errorf("summary = %q", nv.Summary)
	}
	if len(nv.Suggestions) != 3 {
		t.Errorf("suggestions = %d, want 3", len(nv.Suggestions))
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema != NarrativeSchema {
		t.Error("expected narrative schema on request")
	}
	msg := req.Messages[0].Content
	for _, want := range []string{"Student: Ada", "- Math: 95", "Attendance: 97%", `Teacher remarks: "Very good"`, "Performance tier: Excellent"} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
}

func TestNarrator_Fallbacks(t *testing.T) {
	rec := record("Ben", 50, 50, 50, 50, 50, 60, "")

	tests := []struct {
		name     string
		narrator *Narrator
		wantIs   error
	}{
		{"nil narrator", nil, ErrNoProvider},
		{"no provider", NewNarrator(nil, DefaultConfig()), ErrNoProvider},
		{"provider error", NewNarrator(llm.NewMockProvider(llm.MockResponse{Err: &llm.Error{Kind: llm.KindUnavailable}}), DefaultConfig()), nil},
		{"bad json", NewNarrator(llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`not json`)}), DefaultConfig()), nil},
		{"empty summary", NewNarrator(llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"summary":" ","suggestions":[]}`)}), DefaultConfig()), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nv, err := tt.narrator.Narrate(context.Background(), rec)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("error = %v, want %v", err, tt.wantIs)
			}
			if !nv.Fallback || nv.Summary != FallbackNarrative {
				t.Errorf("narrative = %+v, want fallback", nv)
			}
		})
	}
}

func TestNarrativeSchema(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"summary and suggestions", `{"summary":"Ada is thriving.","suggestions":["Mentor a peer."]}`, true},
		{"no suggestions yet", `{"summary":"Ben is improving.","suggestions":[]}`, true},
		{"missing summary", `{"suggestions":["Read daily."]}`, false},
		{"suggestions as text", `{"summary":"ok","suggestions":"Read daily."}`, false},
		{"extra field", `{"summary":"ok","suggestions":[],"grade":"A"}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := llm.ValidateContent(NarrativeSchema, json.RawMessage(tt.raw))
			if tt.valid {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if kind, ok := llm.KindOf(err); !ok || kind != llm.KindInvalidResponse {
				t.Fatalf("error = %v, want invalid response", err)
			}
		})
	}
}

func fastRetry() llm.RetryConfig {
	return llm.RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 5 * time.Millisecond, Multiplier: 2}
}

func TestNarrator_RetriesThroughOutage(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.Error{Kind: llm.KindRateLimited}},
		llm.MockResponse{Content: json.RawMessage(`{"summary":"Ben is catching up.","suggestions":["Practice fractions."]}`)},
	)
	n := NewNarrator(llm.WithRetry(mock, fastRetry()), DefaultConfig())

	nv, err := n.Narrate(context.Background(), record("Ben", 50, 50, 50, 50, 50, 60, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nv.Fallback || nv.Summary != "Ben is catching up." {
		t.Errorf("narrative = %+v", nv)
	}
	if mock.CallCount() != 2 {
		t.Errorf("calls = %d, want 2", mock.CallCount())
	}
}

func TestNarrator_MalformedTwiceFallsBack(t *testing.T) {
	bad := llm.MockResponse{Content: json.RawMessage(`{"summary":"Ben is catching up."}`)}
	mock := llm.NewMockProvider(bad, bad, llm.MockResponse{Content: json.RawMessage(`{"summary":"unused","suggestions":[]}`)})
	n := NewNarrator(llm.WithRetry(mock, fastRetry()), DefaultConfig())

	nv, err := n.Narrate(context.Background(), record("Ben", 50, 50, 50, 50, 50, 60, ""))
	if kind, ok := llm.KindOf(err); !ok || kind != llm.KindInvalidResponse {
		t.Fatalf("error = %v, want invalid response", err)
	}
	if !nv.Fallback {
		t.Errorf("narrative = %+v, want fallback", nv)
	}
	if mock.CallCount() != 2 {
		t.Errorf("calls = %d, want 2", mock.CallCount())
	}
}

func TestNarrator_TimeoutFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"summary":"late","suggestions":[]}`), Delay: time.Minute},
		llm.MockResponse{Content: json.RawMessage(`{"summary":"late","suggestions":[]}`)},
	)
	cfg := DefaultConfig()
	cfg.Timeout = 20 * time.Millisecond
	n := NewNarrator(llm.WithRetry(mock, fastRetry()), cfg)

	start := time.Now()
	nv, err := n.Narrate(context.Background(), record("Cara", 70, 70, 70, 70, 70, 80, ""))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v, want deadline exceeded", err)
	}
	if !nv.Fallback || nv.Summary != FallbackNarrative {
		t.Errorf("narrative = %+v, want fallback", nv)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("narrate took %s", elapsed)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
}

func TestNarrative_Text(t *testing.T) {
	nv := Narrative{Summary: "Solid term.", Suggestions: []string{"Practice fractions.", "Read daily."}}
	want := "Solid term.\n\n- Practice fractions.\n- Read daily."
	if got := nv.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if got := (Narrative{Summary: "Only summary."}).Text(); got != "Only summary." {
		t.Errorf("Text() = %q", got)
	}
}
