// Package analytics computes the class-level figures behind the dashboard
// and the per-student profile.
package analytics

import (
	"math"

	"github.com/edusense/edusense/internal/feedback"
	"github.com/edusense/edusense/internal/recommend"
	"github.com/edusense/edusense/internal/roster"
)

// NotAvailable marks a subject that cannot be determined.
const NotAvailable = "N/A"

// DefaultHistogramBins is the attendance histogram resolution.
const DefaultHistogramBins = 10

// Summary holds the headline KPIs.
type Summary struct {
	TotalStudents     int     `json:"total_students"`
	ClassAverage      float64 `json:"class_average"`
	AverageAttendance float64 `json:"average_attendance"`
}

// SubjectAverage is the class mean for one subject.
type SubjectAverage struct {
	Subject roster.Subject `json:"subject"`
	Average float64        `json:"average"`
}

// TierCount is the number of students in one performance tier.
type TierCount struct {
	Tier  string `json:"tier"`
	Count int    `json:"count"`
}

// Bin is one attendance histogram bucket covering [Low, High); the last
// bin also includes High.
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Dashboard bundles every class-level figure.
type Dashboard struct {
	Summary         Summary          `json:"summary"`
	SubjectAverages []SubjectAverage `json:"subject_averages"`
	Tiers           []TierCount      `json:"tiers"`
	Attendance      []Bin            `json:"attendance"`
}

var tiers = []struct {
	label string
	low   float64
	high  float64
}{
	{"Poor (<60)", 0, 60},
	{"Needs Improvement (60-69)", 60, 70},
	{"Average (70-79)", 70, 80},
	{"Good (80-89)", 80, 90},
	{"Excellent (90+)", 90, 101},
}

// Build computes the full dashboard for records.
func Build(records []roster.StudentRecord) Dashboard {
	return Dashboard{
		Summary:         Summarize(records),
		SubjectAverages: SubjectAverages(records),
		Tiers:           TierDistribution(records),
		Attendance:      AttendanceHistogram(records, DefaultHistogramBins),
	}
}

// Summarize computes the KPIs. The class average is the mean of each
// student's average rounded to one decimal.
func Summarize(records []roster.StudentRecord) Summary {
	s := Summary{TotalStudents: len(records)}
	if len(records) == 0 {
		return s
	}
	var avgSum, attSum float64
	for _, r := range records {
		avgSum += round1(r.Average())
		attSum += r.Attendance
	}
	n := float64(len(records))
	s.ClassAverage = avgSum / n
	s.AverageAttendance = attSum / n
	return s
}

// SubjectAverages returns the class mean per subject in subject order.
func SubjectAverages(records []roster.StudentRecord) []SubjectAverage {
	out := make([]SubjectAverage, len(roster.Subjects))
	for i, subj := range roster.Subjects {
		out[i].Subject = subj
		if len(records) == 0 {
			continue
		}
		var sum float64
		for _, r := range records {
			sum += r.Score(subj)
		}
		out[i].Average = sum / float64(len(records))
	}
	return out
}

// TierDistribution counts students per performance tier, every tier
// listed even when empty.
func TierDistribution(records []roster.StudentRecord) []TierCount {
	out := make([]TierCount, len(tiers))
	for i, t := range tiers {
		out[i].Tier = t.label
	}
	for _, r := range records {
		avg := round1(r.Average())
		for i, t := range tiers {
			if avg >= t.low && avg < t.high {
				out[i].Count++
				break
			}
		}
	}
	return out
}

// AttendanceHistogram splits attendance into bins equal-width buckets
// between the lowest and highest value. A single distinct value gets a
// unit-wide range centred on it.
func AttendanceHistogram(records []roster.StudentRecord, bins int) []Bin {
	if len(records) == 0 || bins < 1 {
		return []Bin{}
	}

	lo, hi := records[0].Attendance, records[0].Attendance
	for _, r := range records[1:] {
		lo = math.Min(lo, r.Attendance)
		hi = math.Max(hi, r.Attendance)
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Low = lo + float64(i)*width
		out[i].High = lo + float64(i+1)*width
	}
	out[bins-1].High = hi

	for _, r := range records {
		i := int((r.Attendance - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}

// Profile is everything shown on a student's page.
type Profile struct {
	Student        roster.StudentRecord      `json:"student"`
	Average        float64                   `json:"average"`
	Attendance     float64                   `json:"attendance"`
	BestSubject    string                    `json:"best_subject"`
	WeakestSubject string                    `json:"weakest_subject"`
	Feedback       feedback.Feedback         `json:"feedback"`
	Recommendation *recommend.Recommendation `json:"recommendation,omitempty"`
	QuickLinks     []recommend.Link          `json:"quick_links"`
}

// BuildProfile assembles the profile for rec.
func BuildProfile(rec roster.StudentRecord) Profile {
	p := Profile{
		Student:        rec,
		Average:        round1(rec.Average()),
		Attendance:     rec.Attendance,
		BestSubject:    NotAvailable,
		WeakestSubject: NotAvailable,
		Feedback:       feedback.Generate(rec),
		QuickLinks:     recommend.BelowThreshold(rec, recommend.DefaultThreshold),
	}
	if s, _, ok := rec.Best(); ok {
		p.BestSubject = string(s)
	}
	if s, _, ok := rec.Weakest(); ok {
		p.WeakestSubject = string(s)
	}
	if r, ok := recommend.ForRecord(rec); ok {
		p.Recommendation = &r
	}
	return p
}

func round1(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}
