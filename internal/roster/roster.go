package roster

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("student not found")

	// ErrDuplicateID is returned when adding a record whose id already exists.
	ErrDuplicateID = errors.New("student id already exists")
)

// Roster is the in-memory student table. Row order is preserved so the file
// round-trips in the order it was read.
type Roster struct {
	records []StudentRecord
	index   map[string]int
}

// New creates a roster from records, rejecting duplicate ids.
func New(records ...StudentRecord) (*Roster, error) {
	r := &Roster{index: make(map[string]int, len(records))}
	for _, rec := range records {
		if err := r.Add(rec); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Len returns the number of records.
func (r *Roster) Len() int {
	return len(r.records)
}

// List returns copies of all records in roster order.
func (r *Roster) List() []StudentRecord {
	out := make([]StudentRecord, len(r.records))
	for i, rec := range r.records {
		out[i] = rec.Clone()
	}
	return out
}

// Get returns the record with the given id.
func (r *Roster) Get(id string) (StudentRecord, error) {
	i, ok := r.index[id]
	if !ok {
		return StudentRecord{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return r.records[i].Clone(), nil
}

// Search returns records whose name contains query, case-insensitively.
// An empty query matches everything.
func (r *Roster) Search(query string) []StudentRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return r.List()
	}
	var out []StudentRecord
	for _, rec := range r.records {
		if strings.Contains(strings.ToLower(rec.Name), q) {
			out = append(out, rec.Clone())
		}
	}
	return out
}

// Add appends a record.
func (r *Roster) Add(rec StudentRecord) error {
	if _, ok := r.index[rec.ID]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateID, rec.ID)
	}
	r.index[rec.ID] = len(r.records)
	r.records = append(r.records, normalize(rec))
	return nil
}

// Update replaces the record with the given id. The id itself can't change.
func (r *Roster) Update(id string, rec StudentRecord) error {
	i, ok := r.index[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	rec.ID = id
	r.records[i] = normalize(rec)
	return nil
}

// Remove deletes the record with the given id.
func (r *Roster) Remove(id string) error {
	i, ok := r.index[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	r.records = append(r.records[:i], r.records[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.records); j++ {
		r.index[r.records[j].ID] = j
	}
	return nil
}

// normalize fills every subject so downstream code never sees a nil map.
func normalize(rec StudentRecord) StudentRecord {
	out := rec.Clone()
	for _, s := range Subjects {
		if _, ok := out.Scores[s]; !ok {
			out.Scores[s] = 0
		}
	}
	return out
}
