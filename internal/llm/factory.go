package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/edusense/edusense/internal/store"
)

// ErrNotConfigured is returned when no backend has credentials.
var ErrNotConfigured = errors.New("no LLM provider configured")

// NewProvider builds the configured backend wrapped as retry → logging →
// backend, so every attempt is recorded. The mock backend is returned bare.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, logger *slog.Logger) (Provider, error) {
	if cfg.Provider == "mock" {
		return NewMockProvider(), nil
	}
	b, ok := lookupBackend(cfg.Provider)
	if !ok {
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
	base, err := b.build(ctx, *b.config(&cfg))
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", b.name, err)
	}
	return WithRetry(WithLogging(base, b.name, events, logger), cfg.Retry), nil
}

// NewProviderFromEnv uses ConfigFromEnv, or DiscoverConfig when that does
// not validate.
func NewProviderFromEnv(ctx context.Context, events store.EventRepo, logger *slog.Logger) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		found, ok := DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrNotConfigured, err)
		}
		cfg = found
	}
	return NewProvider(ctx, cfg, events, logger)
}
