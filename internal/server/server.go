// Package server exposes the roster, feedback, risk and topic services over
// a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/edusense/edusense/internal/feedback"
	"github.com/edusense/edusense/internal/risk"
	"github.com/edusense/edusense/internal/roster"
	"github.com/edusense/edusense/internal/topics"
)

// Students is the roster surface the API needs.
type Students interface {
	List() []roster.StudentRecord
	Search(query string) []roster.StudentRecord
	Get(id string) (roster.StudentRecord, error)
	Add(rec roster.StudentRecord) error
	Update(id string, rec roster.StudentRecord) error
	Remove(id string) error
}

// Deps wires the services behind the API. Notes and Risk may be nil, in
// which case their routes answer 503. Thresholds are used as given.
type Deps struct {
	Students    Students
	Notes       *feedback.Notes
	Risk        *risk.Service
	Thresholds  risk.Thresholds
	TopicCount  int
	CORSOrigins []string
	Logger      *slog.Logger
}

// Server routes API requests.
type Server struct {
	students    Students
	notes       *feedback.Notes
	risk        *risk.Service
	thresholds  risk.Thresholds
	topicCount  int
	corsOrigins []string
	logger      *slog.Logger
	router      *mux.Router
}

// New builds a server and registers its routes.
func New(d Deps) *Server {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.TopicCount < 1 {
		d.TopicCount = topics.DefaultCount
	}
	s := &Server{
		students:    d.Students,
		notes:       d.Notes,
		risk:        d.Risk,
		thresholds:  d.Thresholds,
		topicCount:  d.TopicCount,
		corsOrigins: d.CORSOrigins,
		logger:      d.Logger,
		router:      mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(requestID)

	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)

	r.HandleFunc("/students", s.listStudents).Methods(http.MethodGet)
	r.HandleFunc("/students", s.addStudent).Methods(http.MethodPost)
	r.HandleFunc("/students/{id}", s.getStudent).Methods(http.MethodGet)
	r.HandleFunc("/students/{id}", s.updateStudent).Methods(http.MethodPut)
	r.HandleFunc("/students/{id}", s.removeStudent).Methods(http.MethodDelete)
	r.HandleFunc("/students/{id}/profile", s.studentProfile).Methods(http.MethodGet)
	r.HandleFunc("/students/{id}/feedback", s.studentFeedback).Methods(http.MethodGet)
	r.HandleFunc("/students/{id}/feedback/ai", s.studentNarrative).Methods(http.MethodPost)
	r.HandleFunc("/students/{id}/notes", s.listNotes).Methods(http.MethodGet)
	r.HandleFunc("/students/{id}/notes", s.saveNote).Methods(http.MethodPost)
	r.HandleFunc("/students/{id}/recommendations", s.studentRecommendations).Methods(http.MethodGet)

	r.HandleFunc("/dashboard", s.dashboard).Methods(http.MethodGet)
	r.HandleFunc("/risk/train", s.trainRisk).Methods(http.MethodPost)
	r.HandleFunc("/risk/flags", s.riskFlags).Methods(http.MethodGet)
	r.HandleFunc("/topics", s.topics).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
}

// Handler returns the router wrapped with CORS, panic recovery and access
// logging.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	h = handlers.CORS(
		handlers.AllowedOrigins(s.corsOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", requestIDHeader}),
		handlers.ExposedHeaders([]string{requestIDHeader}),
	)(h)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError)),
	)(h)
	return handlers.CustomLoggingHandler(io.Discard, h, s.accessLog)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
