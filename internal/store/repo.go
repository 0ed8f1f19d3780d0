package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match ("" = any)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// UsageByPurpose aggregates LLM usage for one purpose.
type UsageByPurpose struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// UsageByModel aggregates LLM usage for one model.
type UsageByModel struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]UsageByPurpose, error)
	LLMUsageByModel(ctx context.Context) ([]UsageByModel, error)
}

// Note sources.
const (
	NoteSourceManual = "manual"
	NoteSourceAI     = "ai"
)

// Note is a stored piece of teacher feedback for one student.
type Note struct {
	ID        int       `json:"id"`
	Sequence  int64     `json:"sequence"`
	Timestamp time.Time `json:"timestamp"`
	StudentID string    `json:"student_id"`
	Body      string    `json:"body"`
	Source    string    `json:"source"`
}

// NoteRepo stores feedback notes. Notes are append-only; the latest note
// for a student is the current one.
type NoteRepo interface {
	SaveNote(ctx context.Context, studentID, body, source string) (*Note, error)

	// LatestNote returns the current note for a student, or nil if none.
	LatestNote(ctx context.Context, studentID string) (*Note, error)

	// NoteHistory returns every note for a student, newest first.
	NoteHistory(ctx context.Context, studentID string, limit int) ([]Note, error)

	// LatestNotes returns the current note of every student that has one,
	// ordered by student id.
	LatestNotes(ctx context.Context) ([]Note, error)

	// DeleteNotes removes all notes for a student.
	DeleteNotes(ctx context.Context, studentID string) error
}

// RiskModelRecord is a serialized risk model.
type RiskModelRecord struct {
	ID                  string
	Sequence            int64
	Timestamp           time.Time
	Samples             int
	ScoreThreshold      float64
	AttendanceThreshold float64
	Data                []byte
}

// ModelRepo stores trained risk models.
type ModelRepo interface {
	// SaveModel stores a new model. Sequence and Timestamp are assigned
	// when zero.
	SaveModel(ctx context.Context, rec *RiskModelRecord) error

	// LatestModel returns the most recently saved model, or nil if none exist.
	LatestModel(ctx context.Context) (*RiskModelRecord, error)

	// PruneModels deletes all but the N most recent models.
	PruneModels(ctx context.Context, keep int) error
}
