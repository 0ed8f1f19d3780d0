package risk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/edusense/edusense/internal/roster"
	"github.com/edusense/edusense/internal/store"
)

// keepModels is how many trained models are retained in the store.
const keepModels = 5

// payload is the stored JSON form of a model.
type payload struct {
	AtRisk int     `json:"at_risk"`
	Trees  []*node `json:"trees"`
}

// Service persists models in the store.
type Service struct {
	repo   store.ModelRepo
	logger *slog.Logger
}

// NewService creates a risk service backed by repo.
func NewService(repo store.ModelRepo, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Train fits a model on records and stores it as the latest model.
func (s *Service) Train(ctx context.Context, records []roster.StudentRecord, th Thresholds) (*Model, error) {
	m, err := Train(records, th)
	if err != nil {
		return nil, err
	}
	if err := s.Save(ctx, m); err != nil {
		return nil, err
	}
	s.logger.Info("risk model trained",
		"id", m.ID,
		"samples", m.Samples,
		"at_risk", m.AtRisk,
		"score_threshold", th.Score,
		"attendance_threshold", th.Attendance,
	)
	return m, nil
}

// Save stores m and prunes older models.
func (s *Service) Save(ctx context.Context, m *Model) error {
	data, err := json.Marshal(payload{AtRisk: m.AtRisk, Trees: m.forest.Trees})
	if err != nil {
		return fmt.Errorf("marshal risk model: %w", err)
	}
	err = s.repo.SaveModel(ctx, &store.RiskModelRecord{
		ID:                  m.ID,
		Timestamp:           m.TrainedAt,
		Samples:             m.Samples,
		ScoreThreshold:      m.Thresholds.Score,
		AttendanceThreshold: m.Thresholds.Attendance,
		Data:                data,
	})
	if err != nil {
		return err
	}
	if err := s.repo.PruneModels(ctx, keepModels); err != nil {
		s.logger.Warn("prune risk models", "error", err)
	}
	return nil
}

// Latest loads the most recently stored model, or returns ErrNoModel.
func (s *Service) Latest(ctx context.Context) (*Model, error) {
	rec, err := s.repo.LatestModel(ctx)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNoModel
	}

	var p payload
	if err := json.Unmarshal(rec.Data, &p); err != nil {
		return nil, fmt.Errorf("decode risk model %s: %w", rec.ID, err)
	}
	return &Model{
		ID:         rec.ID,
		TrainedAt:  rec.Timestamp,
		Thresholds: Thresholds{Score: rec.ScoreThreshold, Attendance: rec.AttendanceThreshold},
		Samples:    rec.Samples,
		AtRisk:     p.AtRisk,
		Features:   featureNames,
		forest:     &forest{Trees: p.Trees},
	}, nil
}

// LoadOrTrain returns the latest stored model. When none is stored it
// trains one with default thresholds on records; with no records either
// it returns ErrNoModel.
func (s *Service) LoadOrTrain(ctx context.Context, records []roster.StudentRecord) (*Model, error) {
	m, err := s.Latest(ctx)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, ErrNoModel) {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoModel
	}

	s.logger.Info("no stored risk model, training with default thresholds")
	return s.Train(ctx, records, DefaultThresholds())
}
