package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/edusense/edusense/internal/analytics"
	"github.com/edusense/edusense/internal/risk"
	"github.com/edusense/edusense/internal/topics"
)

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, analytics.Build(s.students.List()))
}

type trainRequest struct {
	ScoreThreshold      *float64 `json:"score_threshold"`
	AttendanceThreshold *float64 `json:"attendance_threshold"`
}

type riskResponse struct {
	Model   *risk.Model    `json:"model"`
	Flagged []risk.Flagged `json:"flagged"`
}

func (s *Server) trainRisk(w http.ResponseWriter, r *http.Request) {
	if !s.available(w, s.risk != nil, "risk model") {
		return
	}
	var req trainRequest
	if err := decode(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	th := s.thresholds
	if req.ScoreThreshold != nil {
		th.Score = *req.ScoreThreshold
	}
	if req.AttendanceThreshold != nil {
		th.Attendance = *req.AttendanceThreshold
	}
	if th.Score < 0 || th.Score > 100 || th.Attendance < 0 || th.Attendance > 100 {
		writeError(w, http.StatusUnprocessableEntity, "thresholds must be within 0-100")
		return
	}

	records := s.students.List()
	m, err := s.risk.Train(r.Context(), records, th)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, riskResponse{Model: m, Flagged: risk.Flag(m, records)})
}

func (s *Server) riskFlags(w http.ResponseWriter, r *http.Request) {
	if !s.available(w, s.risk != nil, "risk model") {
		return
	}
	records := s.students.List()
	m, err := s.risk.LoadOrTrain(r.Context(), records)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, riskResponse{Model: m, Flagged: risk.Flag(m, records)})
}

type topicsResponse struct {
	Topics  []topics.Topic `json:"topics"`
	Lines   []string       `json:"lines"`
	Message string         `json:"message,omitempty"`
}

func (s *Server) topics(w http.ResponseWriter, r *http.Request) {
	n := s.topicCount
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
		if err := topics.CheckCount(v); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		n = v
	}

	records := s.students.List()
	docs := make([]string, len(records))
	for i, rec := range records {
		docs[i] = rec.Remarks
	}

	found, err := topics.Analyze(docs, n)
	if err != nil {
		writeJSON(w, http.StatusOK, topicsResponse{Topics: []topics.Topic{}, Lines: []string{err.Error()}, Message: err.Error()})
		return
	}
	lines := make([]string, len(found))
	for i, t := range found {
		lines[i] = t.String()
	}
	writeJSON(w, http.StatusOK, topicsResponse{Topics: found, Lines: lines})
}
