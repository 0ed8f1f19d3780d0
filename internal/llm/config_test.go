package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	t.Setenv("EDUSENSE_LLM_PROVIDER", "")
	for _, b := range backends {
		t.Setenv(b.vendor, "")
		for _, suffix := range []string{"_API_KEY", "_MODEL", "_BASE_URL"} {
			t.Setenv("EDUSENSE_"+strings.ToUpper(b.name)+suffix, "")
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, "google/gemini-2.0-flash-exp", cfg.OpenRouter.Model)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)

	for _, b := range backends {
		assert.NotNil(t, LookupCost(b.config(&cfg).Model), "no price for %s default", b.name)
	}
}

func TestConfig_Validate(t *testing.T) {
	withKey := func(provider string) Config {
		cfg := DefaultConfig()
		cfg.Provider = provider
		b, _ := lookupBackend(provider)
		b.config(&cfg).APIKey = "sk-test"
		return cfg
	}
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, "EDUSENSE_ANTHROPIC_API_KEY"},
		{"gemini without key", Config{Provider: "gemini"}, "EDUSENSE_GEMINI_API_KEY"},
		{"openrouter without key", Config{Provider: "openrouter"}, "EDUSENSE_OPENROUTER_API_KEY"},
		{"anthropic", withKey("anthropic"), ""},
		{"openai", withKey("openai"), ""},
		{"mock", Config{Provider: "mock"}, ""},
		{"unknown", Config{Provider: "llama"}, `unknown LLM provider "llama"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("EDUSENSE_LLM_PROVIDER", "openrouter")
	t.Setenv("EDUSENSE_OPENROUTER_API_KEY", "sk-or")
	t.Setenv("EDUSENSE_OPENROUTER_MODEL", "anthropic/claude-3-haiku")
	t.Setenv("EDUSENSE_OPENAI_BASE_URL", "http://localhost:11434/v1")

	cfg := ConfigFromEnv()
	assert.Equal(t, "openrouter", cfg.Provider)
	assert.Equal(t, BackendConfig{APIKey: "sk-or", Model: "anthropic/claude-3-haiku"}, cfg.OpenRouter)
	assert.Equal(t, "http://localhost:11434/v1", cfg.OpenAI.BaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.NoError(t, cfg.Validate())
}

func TestDiscoverConfig_Order(t *testing.T) {
	clearLLMEnv(t)
	_, ok := DiscoverConfig()
	assert.False(t, ok)

	t.Setenv("OPENROUTER_API_KEY", "or")
	t.Setenv("ANTHROPIC_API_KEY", "an")
	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "an", cfg.Anthropic.APIKey)

	t.Setenv("GEMINI_API_KEY", "ge")
	cfg, _ = DiscoverConfig()
	assert.Equal(t, "gemini", cfg.Provider)
}

func TestNewProvider(t *testing.T) {
	ctx := context.Background()
	repo := &recordingRepo{}

	_, err := NewProvider(ctx, Config{Provider: "bogus"}, repo, nil)
	assert.ErrorContains(t, err, "bogus")

	p, err := NewProvider(ctx, Config{Provider: "mock"}, repo, nil)
	require.NoError(t, err)
	assert.IsType(t, &MockProvider{}, p)

	cfg := DefaultConfig()
	cfg.Provider = "openrouter"
	cfg.OpenRouter.APIKey = "sk-or-test"
	p, err = NewProvider(ctx, cfg, repo, nil)
	require.NoError(t, err)
	retry, ok := p.(*RetryProvider)
	require.True(t, ok, "got %T", p)
	logged, ok := retry.inner.(*LoggingProvider)
	require.True(t, ok, "got %T", retry.inner)
	assert.Equal(t, "openrouter", logged.name)
	assert.Equal(t, "google/gemini-2.0-flash-exp", p.ModelID())

	cfg.Provider = "openai"
	_, err = NewProvider(ctx, cfg, repo, nil)
	assert.ErrorContains(t, err, "init openai provider")
}

func TestNewProviderFromEnv(t *testing.T) {
	clearLLMEnv(t)
	repo := &recordingRepo{}

	_, err := NewProviderFromEnv(context.Background(), repo, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)

	t.Setenv("EDUSENSE_LLM_PROVIDER", "mock")
	p, err := NewProviderFromEnv(context.Background(), repo, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	t.Setenv("EDUSENSE_LLM_PROVIDER", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	p, err = NewProviderFromEnv(context.Background(), repo, nil)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", p.ModelID())
}
