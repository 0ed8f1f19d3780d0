package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var noteFields = []string{"id", "sequence", "timestamp", "student_id", "body", "source"}

// noteRepo implements NoteRepo. Every save appends a row.
type noteRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *noteRepo) SaveNote(ctx context.Context, studentID, body, source string) (*Note, error) {
	if source == "" {
		source = NoteSourceManual
	}
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("next sequence: %w", err)
	}

	now := time.Now().UTC()
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableNotes).
		Columns(noteFields[1:]...).
		Values(seqNum, now, studentID, body, source).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("save note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("note id: %w", err)
	}

	return &Note{
		ID:        int(id),
		Sequence:  seqNum,
		Timestamp: now,
		StudentID: studentID,
		Body:      body,
		Source:    source,
	}, nil
}

func (r *noteRepo) LatestNote(ctx context.Context, studentID string) (*Note, error) {
	notes, err := r.NoteHistory(ctx, studentID, 1)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, nil
	}
	return &notes[0], nil
}

func (r *noteRepo) NoteHistory(ctx context.Context, studentID string, limit int) ([]Note, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(noteFields...).
		From(entsql.Table(tableNotes)).
		Where(entsql.EQ("student_id", studentID)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}
	return r.queryNotes(ctx, sel)
}

func (r *noteRepo) LatestNotes(ctx context.Context) ([]Note, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(noteFields...).
		From(entsql.Table(tableNotes)).
		OrderBy("student_id", entsql.Desc("sequence"))
	all, err := r.queryNotes(ctx, sel)
	if err != nil {
		return nil, err
	}

	var latest []Note
	for _, n := range all {
		if len(latest) > 0 && latest[len(latest)-1].StudentID == n.StudentID {
			continue
		}
		latest = append(latest, n)
	}
	return latest, nil
}

func (r *noteRepo) queryNotes(ctx context.Context, sel *entsql.Selector) ([]Note, error) {
	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.Sequence, &n.Timestamp, &n.StudentID, &n.Body, &n.Source); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *noteRepo) DeleteNotes(ctx context.Context, studentID string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(tableNotes).
		Where(entsql.EQ("student_id", studentID)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete notes: %w", err)
	}
	return nil
}
