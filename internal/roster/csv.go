package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Column names of the roster file.
const (
	ColID         = "StudentID"
	ColName       = "Student"
	ColAttendance = "Attendance"
	ColRemarks    = "Remarks"
	ColPhotoURL   = "PhotoURL"
)

// Header returns the canonical column order written by Save.
func Header() []string {
	h := []string{ColID, ColName}
	for _, s := range Subjects {
		h = append(h, string(s))
	}
	return append(h, ColAttendance, ColRemarks, ColPhotoURL)
}

// Load reads a roster file. A missing file yields an empty roster. Missing
// columns default to "" for text and 0 for numbers.
func Load(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New()
		}
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses roster CSV from r.
func Read(r io.Reader) (*Roster, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return New()
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	out, _ := New()
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		if isBlank(row) {
			continue
		}

		rec, err := parseRow(row, cols, line)
		if err != nil {
			return nil, err
		}
		if err := out.Add(rec); err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
	}
	return out, nil
}

func parseRow(row []string, cols map[string]int, line int) (StudentRecord, error) {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	number := func(name string) (float64, error) {
		v := cell(name)
		if v == "" || strings.EqualFold(v, "nan") {
			return 0, nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, fmt.Errorf("row %d, column %s: invalid number %q", line, name, v)
		}
		return f, nil
	}

	rec := StudentRecord{
		ID:       cell(ColID),
		Name:     cell(ColName),
		Scores:   make(map[Subject]float64, len(Subjects)),
		Remarks:  cell(ColRemarks),
		PhotoURL: cell(ColPhotoURL),
	}
	for _, s := range Subjects {
		v, err := number(string(s))
		if err != nil {
			return StudentRecord{}, err
		}
		rec.Scores[s] = v
	}
	att, err := number(ColAttendance)
	if err != nil {
		return StudentRecord{}, err
	}
	rec.Attendance = att
	return rec, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Write encodes the roster as CSV with the canonical header.
func Write(w io.Writer, r *Roster) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range r.records {
		row := []string{rec.ID, rec.Name}
		for _, s := range Subjects {
			row = append(row, formatNumber(rec.Score(s)))
		}
		row = append(row, formatNumber(rec.Attendance), rec.Remarks, rec.PhotoURL)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %q: %w", rec.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save rewrites the whole roster file. The data is written to a temporary
// file in the same directory and renamed over the target.
func Save(path string, r *Roster) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create roster dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".roster-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, r); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace roster: %w", err)
	}
	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
