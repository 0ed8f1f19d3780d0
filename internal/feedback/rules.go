// Package feedback turns a student record into written feedback: a
// deterministic rule-based analysis, an optional LLM narrative, and
// persisted teacher notes.
package feedback

import (
	"fmt"
	"strings"

	"github.com/edusense/edusense/internal/roster"
	"github.com/edusense/edusense/internal/sentiment"
)

const (
	excellentAverage  = 90.0
	goodAverage       = 75.0
	growthScore       = 70.0
	excellentPresence = 95.0
	poorPresence      = 80.0
	positiveRemarks   = 0.2
	negativeRemarks   = -0.1
)

// Icons for strengths and growth areas.
const (
	IconTopSubject       = "bi bi-trophy-fill text-warning"
	IconWeakSubject      = "bi bi-tools text-danger"
	IconGoodAttendance   = "bi bi-calendar-check-fill text-success"
	IconPoorAttendance   = "bi bi-calendar-x-fill text-danger"
	IconPositiveRemarks  = "bi bi-chat-heart-fill text-success"
	IconChallengeRemarks = "bi bi-chat-quote-fill text-warning"
)

// Generate builds the rule-based feedback for rec.
func Generate(rec roster.StudentRecord) Feedback {
	avg := rec.Average()
	fb := Feedback{
		StudentID:   rec.ID,
		Strengths:   []Point{},
		GrowthAreas: []Point{},
	}

	var intro string
	switch {
	case avg >= excellentAverage:
		fb.Metrics.PerformanceTier = TierExcellent
		intro = fmt.Sprintf("%s is demonstrating exceptional academic mastery across the board.", rec.Name)
	case avg >= goodAverage:
		fb.Metrics.PerformanceTier = TierGood
		intro = fmt.Sprintf("%s maintains a strong and consistent performance.", rec.Name)
	default:
		fb.Metrics.PerformanceTier = TierNeedsImprovement
		intro = fmt.Sprintf("While showing potential, %s has several key areas for growth.", rec.Name)
	}

	top, weakest := extremes(rec)
	topScore, weakScore := rec.Score(top), rec.Score(weakest)
	needsFocus := weakScore < growthScore

	fb.Metrics.TopSubject = string(top)
	fb.Strengths = append(fb.Strengths, Point{
		Icon: IconTopSubject,
		Text: fmt.Sprintf("Top performance in %s with a score of %d.", top, int(topScore)),
	})

	fb.Metrics.AreaToFocus = NoFocusArea
	if needsFocus {
		fb.Metrics.AreaToFocus = string(weakest)
		fb.GrowthAreas = append(fb.GrowthAreas, Point{
			Icon: IconWeakSubject,
			Text: fmt.Sprintf("The primary focus should be on %s, currently at %d.", weakest, int(weakScore)),
		})
	}

	switch {
	case rec.Attendance >= excellentPresence:
		fb.Metrics.AttendanceStatus = TierExcellent
		fb.Strengths = append(fb.Strengths, Point{
			Icon: IconGoodAttendance,
			Text: fmt.Sprintf("Exemplary attendance (%d%%) shows strong commitment.", int(rec.Attendance)),
		})
	case rec.Attendance < poorPresence:
		fb.Metrics.AttendanceStatus = TierNeedsImprovement
		fb.GrowthAreas = append(fb.GrowthAreas, Point{
			Icon: IconPoorAttendance,
			Text: fmt.Sprintf("Improving attendance from %d%% is a critical step for success.", int(rec.Attendance)),
		})
	default:
		fb.Metrics.AttendanceStatus = TierGood
	}

	if strings.TrimSpace(rec.Remarks) != "" {
		score := sentiment.Analyze(rec.Remarks)
		fb.Analytics = Analytics{Polarity: score.Polarity, Subjectivity: score.Subjectivity}
		switch {
		case score.Polarity > positiveRemarks:
			fb.Strengths = append(fb.Strengths, Point{
				Icon: IconPositiveRemarks,
				Text: "Teacher remarks note a positive attitude and active class engagement.",
			})
		case score.Polarity < negativeRemarks:
			fb.GrowthAreas = append(fb.GrowthAreas, Point{
				Icon: IconChallengeRemarks,
				Text: "Remarks suggest some underlying challenges that could be addressed.",
			})
		}
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Their top subject is %s, where they excel. ", top)
	if needsFocus {
		fmt.Fprintf(&body, "Conversely, the main area for development is %s. ", weakest)
	}
	fmt.Fprintf(&body, "Attendance is currently rated as %s.", strings.ToLower(fb.Metrics.AttendanceStatus))
	fb.Summary = intro + " " + body.String()

	return fb
}

// QuickFeedback is the one-line verdict on the core subjects followed by
// the remark sentiment, e.g. "Good Polarity:0.35, Subj:0.60".
func QuickFeedback(rec roster.StudentRecord) string {
	avg := rec.CoreAverage()
	verdict := "Needs Improvement"
	switch {
	case avg >= 85:
		verdict = "Excellent!"
	case avg >= 70:
		verdict = "Good"
	}
	s := sentiment.Analyze(rec.Remarks)
	return fmt.Sprintf("%s Polarity:%.2f, Subj:%.2f", verdict, s.Polarity, s.Subjectivity)
}

// extremes returns the highest and lowest scoring subjects. The first
// subject in column order wins ties, and an unscored record reports its
// first subject for both.
func extremes(rec roster.StudentRecord) (top, weakest roster.Subject) {
	top, weakest = roster.Subjects[0], roster.Subjects[0]
	for _, s := range roster.Subjects[1:] {
		if rec.Score(s) > rec.Score(top) {
			top = s
		}
		if rec.Score(s) < rec.Score(weakest) {
			weakest = s
		}
	}
	return top, weakest
}
