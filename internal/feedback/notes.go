package feedback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/edusense/edusense/internal/roster"
	"github.com/edusense/edusense/internal/store"
)

// ErrEmptyNote is returned when saving a blank note.
var ErrEmptyNote = errors.New("note body is empty")

// Notes manages persisted feedback notes.
type Notes struct {
	repo     store.NoteRepo
	narrator *Narrator
	logger   *slog.Logger
}

// NewNotes creates a note service. narrator may be nil.
func NewNotes(repo store.NoteRepo, narrator *Narrator, logger *slog.Logger) *Notes {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notes{repo: repo, narrator: narrator, logger: logger}
}

// Save stores a teacher-written note.
func (s *Notes) Save(ctx context.Context, studentID, body string) (*store.Note, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyNote
	}
	note, err := s.repo.SaveNote(ctx, studentID, body, store.NoteSourceManual)
	if err != nil {
		return nil, fmt.Errorf("save note for %s: %w", studentID, err)
	}
	return note, nil
}

// Latest returns the current note for a student, or nil.
func (s *Notes) Latest(ctx context.Context, studentID string) (*store.Note, error) {
	return s.repo.LatestNote(ctx, studentID)
}

// History returns a student's notes, newest first.
func (s *Notes) History(ctx context.Context, studentID string) ([]store.Note, error) {
	return s.repo.NoteHistory(ctx, studentID, 0)
}

// All returns the current note of every student that has one.
func (s *Notes) All(ctx context.Context) ([]store.Note, error) {
	return s.repo.LatestNotes(ctx)
}

// Forget removes every note for a student.
func (s *Notes) Forget(ctx context.Context, studentID string) error {
	return s.repo.DeleteNotes(ctx, studentID)
}

// Narrate generates an AI narrative for rec and saves it as the student's
// current note. The fallback text is returned but never saved; its error
// is passed back to the caller.
func (s *Notes) Narrate(ctx context.Context, rec roster.StudentRecord) (Narrative, *store.Note, error) {
	nv, err := s.narrator.Narrate(ctx, rec)
	if err != nil {
		s.logger.Warn("narrative unavailable, using fallback", "student", rec.ID, "error", err)
		return nv, nil, err
	}

	note, err := s.repo.SaveNote(ctx, rec.ID, nv.Text(), store.NoteSourceAI)
	if err != nil {
		return nv, nil, fmt.Errorf("save narrative for %s: %w", rec.ID, err)
	}
	return nv, note, nil
}
