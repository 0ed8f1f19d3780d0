package feedback

import (
	"fmt"
	"strings"

	"github.com/edusense/edusense/internal/roster"
)

const narrativeSystemPrompt = `You are an experienced, supportive teacher writing short progress feedback for a student. Be specific, constructive and encouraging. Refer to the student by name. Never invent grades or facts that are not in the data.`

func buildNarrativeUserMessage(rec roster.StudentRecord, fb Feedback) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Student: %s\n", rec.Name))
	b.WriteString("Scores:\n")
	for _, s := range roster.Subjects {
		b.WriteString(fmt.Sprintf("- %s: %.0f\n", s, rec.Score(s)))
	}
	b.WriteString(fmt.Sprintf("Attendance: %.0f%%\n", rec.Attendance))
	if r := strings.TrimSpace(rec.Remarks); r != "" {
		b.WriteString(fmt.Sprintf("Teacher remarks: %q\n", r))
	}

	b.WriteString("\nAnalysis:\n")
	b.WriteString(fmt.Sprintf("- Performance tier: %s\n", fb.Metrics.PerformanceTier))
	b.WriteString(fmt.Sprintf("- Top subject: %s\n", fb.Metrics.TopSubject))
	b.WriteString(fmt.Sprintf("- Area to focus: %s\n", fb.Metrics.AreaToFocus))
	b.WriteString(fmt.Sprintf("- Attendance status: %s\n", fb.Metrics.AttendanceStatus))

	b.WriteString("\nWrite the feedback summary and up to three suggestions.")
	return b.String()
}
