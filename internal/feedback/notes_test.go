package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/edusense/edusense/internal/llm"
	"github.com/edusense/edusense/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openNoteRepo(t *testing.T) store.NoteRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.NoteRepo()
}

func TestNotes_SaveAndRead(t *testing.T) {
	ctx := context.Background()
	notes := NewNotes(openNoteRepo(t), nil, nil)

	_, err := notes.Save(ctx, "S1", "   ")
	assert.True(t, errors.Is(err, ErrEmptyNote))

	_, err = notes.Save(ctx, "S1", " First draft ")
	require.NoError(t, err)
	_, err = notes.Save(ctx, "S1", "Second draft")
	require.NoError(t, err)
	_, err = notes.Save(ctx, "S2", "Other student")
	require.NoError(t, err)

	latest, err := notes.Latest(ctx, "S1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "Second draft", latest.Body)
	assert.Equal(t, store.NoteSourceManual, latest.Source)

	history, err := notes.History(ctx, "S1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "First draft", history[1].Body)

	all, err := notes.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, notes.Forget(ctx, "S1"))
	latest, err = notes.Latest(ctx, "S1")
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestNotes_NarrateSavesAINote(t *testing.T) {
	ctx := context.Background()
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"summary":"Keep it up.","suggestions":["Join the maths club."]}`),
	})
	notes := NewNotes(openNoteRepo(t), NewNarrator(mock, DefaultConfig()), nil)

	rec := record("Ada", 95, 92, 90, 91, 93, 97, "")
	nv, note, err := notes.Narrate(ctx, rec)
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "Keep it up.", nv.Summary)
	assert.Equal(t, store.NoteSourceAI, note.Source)
	assert.Equal(t, "Keep it up.\n\n- Join the maths club.", note.Body)

	latest, err := notes.Latest(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, note.Body, latest.Body)
}

func TestNotes_NarrateFallbackIsNotSaved(t *testing.T) {
	ctx := context.Background()
	notes := NewNotes(openNoteRepo(t), NewNarrator(nil, DefaultConfig()), nil)

	nv, note, err := notes.Narrate(ctx, record("Ben", 50, 50, 50, 50, 50, 60, ""))
	assert.True(t, errors.Is(err, ErrNoProvider))
	assert.Nil(t, note)
	assert.Equal(t, FallbackNarrative, nv.Summary)

	latest, err := notes.Latest(ctx, "B")
	require.NoError(t, err)
	assert.Nil(t, latest)
}
