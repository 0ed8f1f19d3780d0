package feedback

import "time"

// FallbackNarrative is returned when no narrative could be generated.
const FallbackNarrative = "Needs more study in weak subjects."

// Config holds narrative generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	// Timeout bounds a single narrative request, retries included.
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults for narrative generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   400,
		Temperature: 0.4,
		Timeout:     30 * time.Second,
	}
}
