package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/edusense/edusense/internal/llm"
	"github.com/edusense/edusense/internal/roster"
)

// ErrNoProvider is returned by a Narrator that has no LLM provider.
var ErrNoProvider = errors.New("no LLM provider configured")

// Narrator writes free-form feedback with an LLM.
type Narrator struct {
	provider llm.Provider
	cfg      Config
}

// NewNarrator creates a narrator. A nil provider is allowed; every call
// then returns the fallback narrative.
func NewNarrator(provider llm.Provider, cfg Config) *Narrator {
	return &Narrator{provider: provider, cfg: cfg}
}

type narrativeOutput struct {
	Summary     string   `json:"summary"`
	Suggestions []string `json:"suggestions"`
}

// Narrate asks the provider for feedback on rec. On any failure it returns
// the fallback narrative together with the error, so the result is always
// usable.
func (n *Narrator) Narrate(ctx context.Context, rec roster.StudentRecord) (Narrative, error) {
	if n == nil || n.provider == nil {
		return fallback(), ErrNoProvider
	}

	ctx = llm.WithPurpose(ctx, "feedback")
	if n.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.cfg.Timeout)
		defer cancel()
	}

	req := llm.Request{
		System: narrativeSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildNarrativeUserMessage(rec, Generate(rec))},
		},
		Schema:      NarrativeSchema,
		MaxTokens:   n.cfg.MaxTokens,
		Temperature: n.cfg.Temperature,
	}

	resp, err := n.provider.Generate(ctx, req)
	if err != nil {
		return fallback(), fmt.Errorf("narrative generation: %w", err)
	}

	var out narrativeOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return fallback(), fmt.Errorf("parse narrative response: %w", err)
	}
	if strings.TrimSpace(out.Summary) == "" {
		return fallback(), errors.New("parse narrative response: empty summary")
	}

	if len(out.Suggestions) > 3 {
		out.Suggestions = out.Suggestions[:3]
	}
	return Narrative{Summary: strings.TrimSpace(out.Summary), Suggestions: out.Suggestions}, nil
}

// Text renders a narrative as a single note body.
func (nv Narrative) Text() string {
	if len(nv.Suggestions) == 0 {
		return nv.Summary
	}
	var b strings.Builder
	b.WriteString(nv.Summary)
	b.WriteString("\n")
	for _, s := range nv.Suggestions {
		b.WriteString("\n- ")
		b.WriteString(s)
	}
	return b.String()
}

func fallback() Narrative {
	return Narrative{Summary: FallbackNarrative, Fallback: true}
}
