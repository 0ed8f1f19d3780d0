package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var riskModelFields = []string{
	"id", "sequence", "timestamp", "samples",
	"score_threshold", "attendance_threshold", "data",
}

// modelRepo implements ModelRepo.
type modelRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *modelRepo) SaveModel(ctx context.Context, rec *RiskModelRecord) error {
	if rec.ID == "" {
		return errors.New("save risk model: empty id")
	}
	if rec.Sequence == 0 {
		seqNum, err := r.seq.Next(ctx)
		if err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}
		rec.Sequence = seqNum
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableRiskModels).
		Columns(riskModelFields...).
		Values(
			rec.ID, rec.Sequence, rec.Timestamp, rec.Samples,
			rec.ScoreThreshold, rec.AttendanceThreshold, string(rec.Data),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save risk model: %w", err)
	}
	return nil
}

func (r *modelRepo) LatestModel(ctx context.Context) (*RiskModelRecord, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(riskModelFields...).
		From(entsql.Table(tableRiskModels)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1).
		Query()

	var (
		rec  RiskModelRecord
		data string
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&rec.ID, &rec.Sequence, &rec.Timestamp, &rec.Samples,
		&rec.ScoreThreshold, &rec.AttendanceThreshold, &data,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest risk model: %w", err)
	}
	rec.Data = []byte(data)
	return &rec, nil
}

func (r *modelRepo) PruneModels(ctx context.Context, keep int) error {
	// Find the sequence threshold: the Nth most recent model.
	query, args := entsql.Dialect(dialect.SQLite).
		Select("sequence").
		From(entsql.Table(tableRiskModels)).
		OrderBy(entsql.Desc("sequence")).
		Offset(keep).
		Limit(1).
		Query()

	var threshold int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // fewer than keep models exist
	}
	if err != nil {
		return fmt.Errorf("query models for prune: %w", err)
	}

	query, args = entsql.Dialect(dialect.SQLite).
		Delete(tableRiskModels).
		Where(entsql.LTE("sequence", threshold)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune risk models: %w", err)
	}
	return nil
}
