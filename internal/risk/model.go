// Package risk trains and applies a random-forest classifier that flags
// students at risk of falling behind.
package risk

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/edusense/edusense/internal/roster"
)

var (
	// ErrNoData is returned when training on an empty roster.
	ErrNoData = errors.New("no student records to train on")
	// ErrNoModel is returned when no model is stored and none can be trained.
	ErrNoModel = errors.New("no risk model available")
)

// Model is a trained risk classifier with its training metadata.
type Model struct {
	ID         string     `json:"id"`
	TrainedAt  time.Time  `json:"trained_at"`
	Thresholds Thresholds `json:"thresholds"`
	Samples    int        `json:"samples"`
	AtRisk     int        `json:"at_risk"`
	Features   []string   `json:"features"`

	forest *forest
}

// Train labels records with th and fits a forest to them. Training is
// deterministic for a given input.
func Train(records []roster.StudentRecord, th Thresholds) (*Model, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}

	x := make([][numFeatures]float64, len(records))
	y := make([]bool, len(records))
	atRisk := 0
	for i, rec := range records {
		x[i] = features(rec)
		y[i] = th.AtRisk(rec)
		if y[i] {
			atRisk++
		}
	}

	return &Model{
		ID:         uuid.NewString(),
		TrainedAt:  time.Now().UTC(),
		Thresholds: th,
		Samples:    len(records),
		AtRisk:     atRisk,
		Features:   featureNames,
		forest:     fitForest(x, y),
	}, nil
}

// Predict reports whether the majority of trees flag rec as at risk.
func (m *Model) Predict(rec roster.StudentRecord) bool {
	return m.forest.vote(features(rec))
}

// Probability is the forest's mean at-risk probability for rec.
func (m *Model) Probability(rec roster.StudentRecord) float64 {
	return m.forest.probability(features(rec))
}

// Flagged is a student predicted at risk.
type Flagged struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
}

// Flag returns the students m predicts at risk, in roster order.
func Flag(m *Model, records []roster.StudentRecord) []Flagged {
	out := []Flagged{}
	for _, rec := range records {
		if m.Predict(rec) {
			out = append(out, Flagged{ID: rec.ID, Name: rec.Name, Probability: m.Probability(rec)})
		}
	}
	return out
}
