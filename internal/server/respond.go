package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/edusense/edusense/internal/feedback"
	"github.com/edusense/edusense/internal/risk"
	"github.com/edusense/edusense/internal/roster"
)

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// writeJSON encodes v before writing the header; an unencodable value is
// logged and answered with 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Default().Error("encode response", "status", status, "error", err)
		status = http.StatusInternalServerError
		body = []byte(`{"error":"internal error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body = append(body, '\n')
	if _, err := w.Write(body); err != nil {
		slog.Default().Debug("write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var verr *roster.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, roster.ErrNotFound), errors.Is(err, risk.ErrNoModel):
		return http.StatusNotFound
	case errors.Is(err, roster.ErrDuplicateID):
		return http.StatusConflict
	case errors.Is(err, risk.ErrNoData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, feedback.ErrEmptyNote):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", RequestID(r.Context()), "error", err)
		writeError(w, status, "internal error")
		return
	}

	body := errorBody{Error: err.Error()}
	var verr *roster.ValidationError
	if errors.As(err, &verr) {
		body.Fields = verr.Fields
	}
	writeJSON(w, status, body)
}

// available answers 503 when the named service was not wired in.
func (s *Server) available(w http.ResponseWriter, ok bool, name string) bool {
	if !ok {
		writeError(w, http.StatusServiceUnavailable, name+" unavailable")
	}
	return ok
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
