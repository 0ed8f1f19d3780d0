package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// RetryProvider retries failed calls with capped exponential backoff.
//
// Context errors, truncation and rejected requests fail at once. A response
// that does not match its schema is retried once.
type RetryProvider struct {
	inner Provider
	cfg   RetryConfig
}

func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, cfg: cfg}
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.cfg.MaxAttempts, 1)
	invalidSeen := false
	for attempt := 0; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if attempt+1 >= attempts || !retryable(err, &invalidSeen) {
			return nil, err
		}

		timer := time.NewTimer(r.wait(attempt, err))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func retryable(err error, invalidSeen *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	kind, ok := KindOf(err)
	if !ok {
		return true
	}
	switch kind {
	case KindTruncated, KindRejected:
		return false
	case KindInvalidResponse:
		if *invalidSeen {
			return false
		}
		*invalidSeen = true
	}
	return true
}

// wait is InitialWait·Multiplier^attempt capped at MaxWait, with ±20%
// jitter. A server-sent Retry-After wins.
func (r *RetryProvider) wait(attempt int, err error) time.Duration {
	var e *Error
	if errors.As(err, &e) && e.RetryAfter > 0 {
		return e.RetryAfter
	}
	d := float64(r.cfg.InitialWait)
	for range attempt {
		d *= r.cfg.Multiplier
	}
	if r.cfg.MaxWait > 0 {
		d = min(d, float64(r.cfg.MaxWait))
	}
	d *= 0.8 + 0.4*rand.Float64()
	return time.Duration(max(d, 0))
}
