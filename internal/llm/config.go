package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config selects a backend and holds its credentials.
type Config struct {
	// Provider is "anthropic", "openai", "gemini", "openrouter" or "mock".
	Provider string

	Anthropic  BackendConfig
	OpenAI     BackendConfig
	Gemini     BackendConfig
	OpenRouter BackendConfig

	Retry RetryConfig
}

// BackendConfig is what every hosted backend needs. BaseURL is honoured by
// the OpenAI-compatible backends only.
type BackendConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig controls exponential backoff between attempts.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// backend describes one hosted provider. The order of backends is the
// order DiscoverConfig probes vendor key variables in.
type backend struct {
	name   string
	vendor string // standard API key variable, e.g. GEMINI_API_KEY
	model  string
	config func(*Config) *BackendConfig
	build  func(context.Context, BackendConfig) (Provider, error)
}

var backends = []backend{
	{
		name: "gemini", vendor: "GEMINI_API_KEY", model: "gemini-2.0-flash",
		config: func(c *Config) *BackendConfig { return &c.Gemini },
		build: func(ctx context.Context, bc BackendConfig) (Provider, error) {
			return NewGeminiProvider(ctx, bc)
		},
	},
	{
		name: "openai", vendor: "OPENAI_API_KEY", model: "gpt-4o-mini",
		config: func(c *Config) *BackendConfig { return &c.OpenAI },
		build: func(_ context.Context, bc BackendConfig) (Provider, error) {
			return NewOpenAIProvider(bc)
		},
	},
	{
		name: "anthropic", vendor: "ANTHROPIC_API_KEY", model: "claude-haiku-4-5-20251001",
		config: func(c *Config) *BackendConfig { return &c.Anthropic },
		build: func(_ context.Context, bc BackendConfig) (Provider, error) {
			return NewAnthropicProvider(bc)
		},
	},
	{
		name: "openrouter", vendor: "OPENROUTER_API_KEY", model: "google/gemini-2.0-flash-exp",
		config: func(c *Config) *BackendConfig { return &c.OpenRouter },
		build: func(_ context.Context, bc BackendConfig) (Provider, error) {
			return NewOpenRouterProvider(bc)
		},
	},
}

func lookupBackend(name string) (backend, bool) {
	for _, b := range backends {
		if b.name == name {
			return b, true
		}
	}
	return backend{}, false
}

// DefaultConfig returns the anthropic backend with every default model set.
func DefaultConfig() Config {
	cfg := Config{
		Provider: "anthropic",
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
	}
	for _, b := range backends {
		b.config(&cfg).Model = b.model
	}
	return cfg
}

// ConfigFromEnv reads EDUSENSE_LLM_PROVIDER and EDUSENSE_<BACKEND>_API_KEY,
// _MODEL and _BASE_URL on top of DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if p := os.Getenv("EDUSENSE_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	for _, b := range backends {
		bc := b.config(&cfg)
		prefix := "EDUSENSE_" + strings.ToUpper(b.name) + "_"
		if v := os.Getenv(prefix + "API_KEY"); v != "" {
			bc.APIKey = v
		}
		if v := os.Getenv(prefix + "MODEL"); v != "" {
			bc.Model = v
		}
		if v := os.Getenv(prefix + "BASE_URL"); v != "" {
			bc.BaseURL = v
		}
	}
	return cfg
}

// DiscoverConfig picks the first backend whose vendor key variable is set.
func DiscoverConfig() (Config, bool) {
	for _, b := range backends {
		if k := os.Getenv(b.vendor); k != "" {
			cfg := DefaultConfig()
			cfg.Provider = b.name
			b.config(&cfg).APIKey = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected backend exists and has a key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	b, ok := lookupBackend(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if b.config(&c).APIKey == "" {
		return fmt.Errorf("EDUSENSE_%s_API_KEY is required for the %s provider", strings.ToUpper(b.name), b.name)
	}
	return nil
}
