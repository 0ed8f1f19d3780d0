package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorKind classifies a failed Generate call.
type ErrorKind int

const (
	// KindUnavailable covers network failures and 5xx answers.
	KindUnavailable ErrorKind = iota
	// KindRateLimited is a 429 answer.
	KindRateLimited
	// KindRejected is any other 4xx answer, such as a bad key.
	KindRejected
	// KindInvalidResponse means the content did not match the schema.
	KindInvalidResponse
	// KindTruncated means generation stopped at the token limit.
	KindTruncated
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindRateLimited:
		return "rate limited"
	case KindRejected:
		return "rejected"
	case KindInvalidResponse:
		return "invalid response"
	case KindTruncated:
		return "truncated"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is returned by every provider in this package.
type Error struct {
	Kind     ErrorKind
	Provider string
	// RetryAfter is the server's requested wait, when it sent one.
	RetryAfter time.Duration
	// Content holds the raw output for KindInvalidResponse and KindTruncated.
	Content json.RawMessage
	Err     error
}

func (e *Error) Error() string {
	msg := e.Provider + ": " + e.Kind.String()
	if e.Provider == "" {
		msg = "llm: " + e.Kind.String()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// statusError classifies an HTTP status from a vendor SDK error.
func statusError(provider string, status int, err error) *Error {
	kind := KindUnavailable
	switch {
	case status == http.StatusTooManyRequests:
		kind = KindRateLimited
	case status >= 400 && status < 500:
		kind = KindRejected
	}
	return &Error{Kind: kind, Provider: provider, Err: err}
}
