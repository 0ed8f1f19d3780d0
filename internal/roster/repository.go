package roster

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Repository is the file-backed roster. Reads are served from memory and
// every mutation rewrites the whole file before it is acknowledged.
type Repository struct {
	mu     sync.RWMutex
	path   string
	roster *Roster
	logger *slog.Logger
}

// Open loads the roster at path.
func Open(path string, logger *slog.Logger) (*Repository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r, err := Load(path)
	if err != nil {
		return nil, fmt.Errorf("load roster %s: %w", path, err)
	}
	logger.Debug("roster loaded", "path", path, "students", r.Len())
	return &Repository{path: path, roster: r, logger: logger}, nil
}

// Path returns the backing file path.
func (r *Repository) Path() string {
	return r.path
}

// Reload discards in-memory state and re-reads the file.
func (r *Repository) Reload() error {
	loaded, err := Load(r.path)
	if err != nil {
		return fmt.Errorf("reload roster: %w", err)
	}
	r.mu.Lock()
	r.roster = loaded
	r.mu.Unlock()
	return nil
}

func (r *Repository) List() []StudentRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.roster.List()
}

func (r *Repository) Search(query string) []StudentRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.roster.Search(query)
}

func (r *Repository) Get(id string) (StudentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.roster.Get(id)
}

// Add validates and appends a record, then persists the roster.
func (r *Repository) Add(rec StudentRecord) error {
	rec = trim(rec)
	if err := Validate(rec); err != nil {
		return err
	}
	return r.mutate(func(ro *Roster) error { return ro.Add(rec) }, "add", rec.ID)
}

// Update validates and replaces a record, then persists the roster.
func (r *Repository) Update(id string, rec StudentRecord) error {
	rec = trim(rec)
	rec.ID = id
	if err := Validate(rec); err != nil {
		return err
	}
	return r.mutate(func(ro *Roster) error { return ro.Update(id, rec) }, "update", id)
}

// Remove deletes a record, then persists the roster.
func (r *Repository) Remove(id string) error {
	return r.mutate(func(ro *Roster) error { return ro.Remove(id) }, "remove", id)
}

// mutate applies fn to a copy so a failed save leaves memory untouched.
func (r *Repository) mutate(fn func(*Roster) error, op, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := New(r.roster.List()...)
	if err != nil {
		return err
	}
	if err := fn(next); err != nil {
		return err
	}
	if err := Save(r.path, next); err != nil {
		return fmt.Errorf("save roster: %w", err)
	}
	r.roster = next
	r.logger.Info("roster updated", "op", op, "id", id, "students", next.Len())
	return nil
}

func trim(rec StudentRecord) StudentRecord {
	rec.ID = strings.TrimSpace(rec.ID)
	rec.Name = strings.TrimSpace(rec.Name)
	rec.PhotoURL = strings.TrimSpace(rec.PhotoURL)
	return rec
}
