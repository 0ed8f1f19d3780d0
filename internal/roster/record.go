package roster

import "strings"

// Subject names a scored subject column.
type Subject string

const (
	Math    Subject = "Math"
	Science Subject = "Science"
	English Subject = "English"
	History Subject = "History"
	Art     Subject = "Art"
)

// Subjects lists every scored subject in column order. Ties between
// subjects are always broken by this order.
var Subjects = []Subject{Math, Science, English, History, Art}

// CoreSubjects are the subjects used for the compact average and the risk
// model features.
var CoreSubjects = []Subject{Math, Science, English}

// ParseSubject resolves a subject name case-insensitively.
func ParseSubject(name string) (Subject, bool) {
	for _, s := range Subjects {
		if strings.EqualFold(string(s), strings.TrimSpace(name)) {
			return s, true
		}
	}
	return "", false
}

// StudentRecord is one row of the roster table.
type StudentRecord struct {
	ID         string              `json:"id" validate:"required,max=64"`
	Name       string              `json:"name" validate:"required,max=200"`
	Scores     map[Subject]float64 `json:"scores" validate:"dive,keys,oneof=Math Science English History Art,endkeys,gte=0,lte=100"`
	Attendance float64             `json:"attendance" validate:"gte=0,lte=100"`
	Remarks    string              `json:"remarks"`
	PhotoURL   string              `json:"photo_url" validate:"omitempty,url"`
}

// Score returns the score for s, or 0 when the subject is absent.
func (r StudentRecord) Score(s Subject) float64 {
	return r.Scores[s]
}

// Average is the mean over all five subjects.
func (r StudentRecord) Average() float64 {
	return r.mean(Subjects)
}

// CoreAverage is the mean over Math, Science and English.
func (r StudentRecord) CoreAverage() float64 {
	return r.mean(CoreSubjects)
}

func (r StudentRecord) mean(subjects []Subject) float64 {
	var sum float64
	for _, s := range subjects {
		sum += r.Score(s)
	}
	return sum / float64(len(subjects))
}

// Best returns the highest-scoring subject. ok is false when every score is
// zero, which is how an unscored student is represented.
func (r StudentRecord) Best() (Subject, float64, bool) {
	if !r.hasScores() {
		return "", 0, false
	}
	best := Subjects[0]
	for _, s := range Subjects[1:] {
		if r.Score(s) > r.Score(best) {
			best = s
		}
	}
	return best, r.Score(best), true
}

// Weakest returns the lowest-scoring subject, with the same ok semantics as
// Best.
func (r StudentRecord) Weakest() (Subject, float64, bool) {
	if !r.hasScores() {
		return "", 0, false
	}
	weakest := Subjects[0]
	for _, s := range Subjects[1:] {
		if r.Score(s) < r.Score(weakest) {
			weakest = s
		}
	}
	return weakest, r.Score(weakest), true
}

func (r StudentRecord) hasScores() bool {
	var sum float64
	for _, s := range Subjects {
		sum += r.Score(s)
	}
	return sum > 0
}

// Clone returns a deep copy so callers can't mutate roster state through
// the Scores map.
func (r StudentRecord) Clone() StudentRecord {
	out := r
	out.Scores = make(map[Subject]float64, len(r.Scores))
	for k, v := range r.Scores {
		out.Scores[k] = v
	}
	return out
}
