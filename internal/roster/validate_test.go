package roster

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	valid := testRecord("S1", "Ada", 90, 80, 70, 60, 50, 95)
	valid.PhotoURL = "https://example.com/ada.jpg"

	tests := []struct {
		name      string
		mutate    func(*StudentRecord)
		wantField string
	}{
		{"valid", func(*StudentRecord) {}, ""},
		{"missing id", func(r *StudentRecord) { r.ID = "  " }, "id"},
		{"missing name", func(r *StudentRecord) { r.Name = "" }, "name"},
		{"score too high", func(r *StudentRecord) { r.Scores[Math] = 101 }, "scores[Math]"},
		{"score negative", func(r *StudentRecord) { r.Scores[Art] = -1 }, "scores[Art]"},
		{"unknown subject", func(r *StudentRecord) { r.Scores["Music"] = 50 }, "scores[Music]"},
		{"attendance out of range", func(r *StudentRecord) { r.Attendance = 120 }, "attendance"},
		{"bad photo url", func(r *StudentRecord) { r.PhotoURL = "not a url" }, "photo_url"},
		{"empty photo url ok", func(r *StudentRecord) { r.PhotoURL = "" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid.Clone()
			tt.mutate(&rec)
			err := Validate(rec)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Contains(t, verr.Fields, tt.wantField)
			assert.NotEmpty(t, verr.Error())
		})
	}
}

func TestRepository_PersistsMutations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.csv")
	repo, err := Open(path, nil)
	require.NoError(t, err)
	assert.Empty(t, repo.List())

	require.NoError(t, repo.Add(testRecord(" S1 ", " Ada ", 90, 90, 90, 90, 90, 99)))
	require.NoError(t, repo.Add(testRecord("S2", "Ben", 50, 50, 50, 50, 50, 60)))

	err = repo.Add(testRecord("S1", "Again", 1, 1, 1, 1, 1, 1))
	assert.True(t, errors.Is(err, ErrDuplicateID))

	upd := testRecord("", "Ben B.", 55, 55, 55, 55, 55, 65)
	require.NoError(t, repo.Update("S2", upd))
	require.NoError(t, repo.Remove("S1"))

	reopened, err := Open(path, nil)
	require.NoError(t, err)
	list := reopened.List()
	require.Len(t, list, 1)
	assert.Equal(t, "S2", list[0].ID)
	assert.Equal(t, "Ben B.", list[0].Name)
	assert.Equal(t, 55.0, list[0].Score(History))
}

func TestRepository_RejectsInvalidWithoutWriting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.csv")
	repo, err := Open(path, nil)
	require.NoError(t, err)

	bad := testRecord("S1", "Ada", 150, 0, 0, 0, 0, 0)
	err = repo.Add(bad)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	assert.NoFileExists(t, path)
	assert.Empty(t, repo.List())
}

func TestRepository_UpdateUnknown(t *testing.T) {
	repo, err := Open(filepath.Join(t.TempDir(), "students.csv"), nil)
	require.NoError(t, err)
	err = repo.Update("missing", testRecord("", "X", 1, 1, 1, 1, 1, 1))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRepository_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.csv")
	r, _ := New(testRecord("S1", "Ada", 1, 1, 1, 1, 1, 1))
	require.NoError(t, Save(path, r))

	repo, err := Open(path, nil)
	require.NoError(t, err)
	require.Len(t, repo.List(), 1)

	r2, _ := New(
		testRecord("S1", "Ada", 1, 1, 1, 1, 1, 1),
		testRecord("S2", "Ben", 2, 2, 2, 2, 2, 2),
	)
	require.NoError(t, Save(path, r2))
	require.NoError(t, repo.Reload())
	assert.Len(t, repo.List(), 2)
}

func TestRepository_ConcurrentAddAndList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.csv")
	repo, err := Open(path, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Add(testRecord(fmt.Sprintf("S%02d", i), "Student", 70, 70, 70, 70, 70, 90))
			_ = repo.List()
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.Len(t, repo.List(), n)
	reopened, err := Open(path, nil)
	require.NoError(t, err)
	assert.Len(t, reopened.List(), n)
}
