package server

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/edusense/edusense/internal/analytics"
	"github.com/edusense/edusense/internal/feedback"
	"github.com/edusense/edusense/internal/recommend"
	"github.com/edusense/edusense/internal/roster"
)

func (s *Server) listStudents(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	var out []roster.StudentRecord
	if q == "" {
		out = s.students.List()
	} else {
		out = s.students.Search(q)
	}
	if out == nil {
		out = []roster.StudentRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": out, "total": len(out)})
}

func (s *Server) addStudent(w http.ResponseWriter, r *http.Request) {
	var rec roster.StudentRecord
	if err := decode(r, &rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := s.students.Add(rec); err != nil {
		s.fail(w, r, err)
		return
	}
	created, err := s.students.Get(strings.TrimSpace(rec.ID))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) getStudent(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) updateStudent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var rec roster.StudentRecord
	if err := decode(r, &rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := s.students.Update(id, rec); err != nil {
		s.fail(w, r, err)
		return
	}
	updated, err := s.students.Get(id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) removeStudent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.students.Remove(id); err != nil {
		s.fail(w, r, err)
		return
	}
	if s.notes != nil {
		if err := s.notes.Forget(r.Context(), id); err != nil {
			s.logger.Warn("failed to delete notes", "student", id, "error", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) studentProfile(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analytics.BuildProfile(rec))
}

func (s *Server) studentFeedback(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"feedback": feedback.Generate(rec),
		"quick":    feedback.QuickFeedback(rec),
	})
}

type narrativeResponse struct {
	Narrative feedback.Narrative `json:"narrative"`
	Text      string             `json:"text"`
	Note      any                `json:"note"`
	Error     string             `json:"error,omitempty"`
}

func (s *Server) studentNarrative(w http.ResponseWriter, r *http.Request) {
	if !s.available(w, s.notes != nil, "notes") {
		return
	}
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	nv, note, err := s.notes.Narrate(r.Context(), rec)
	resp := narrativeResponse{Narrative: nv, Text: nv.Text()}
	if note != nil {
		resp.Note = note
	}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listNotes(w http.ResponseWriter, r *http.Request) {
	if !s.available(w, s.notes != nil, "notes") {
		return
	}
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	notes, err := s.notes.History(r.Context(), rec.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": notes})
}

type noteRequest struct {
	Body string `json:"body"`
}

func (s *Server) saveNote(w http.ResponseWriter, r *http.Request) {
	if !s.available(w, s.notes != nil, "notes") {
		return
	}
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req noteRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	note, err := s.notes.Save(r.Context(), rec.ID, req.Body)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (s *Server) studentRecommendations(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	resp := map[string]any{
		"quick_links": recommend.BelowThreshold(rec, recommend.DefaultThreshold),
	}
	if rc, ok := recommend.ForRecord(rec); ok {
		resp["recommendation"] = rc
	} else {
		resp["recommendation"] = nil
	}
	writeJSON(w, http.StatusOK, resp)
}

// lookup resolves the {id} route variable, writing the error response when
// the student doesn't exist.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (roster.StudentRecord, bool) {
	rec, err := s.students.Get(mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return roster.StudentRecord{}, false
	}
	return rec, true
}
