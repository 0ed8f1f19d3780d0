package feedback

// Performance tiers.
const (
	TierExcellent        = "Excellent"
	TierGood             = "Good"
	TierNeedsImprovement = "Needs Improvement"
)

// NoFocusArea is reported as the area to focus when no subject is below
// the growth threshold.
const NoFocusArea = "None"

// Point is a single strength or growth area with its display icon.
type Point struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}

// Metrics are the headline figures shown with the feedback.
type Metrics struct {
	PerformanceTier  string `json:"performance_tier"`
	TopSubject       string `json:"top_subject"`
	AreaToFocus      string `json:"area_to_focus"`
	AttendanceStatus string `json:"attendance_status"`
}

// Analytics is the sentiment of the teacher's remarks.
type Analytics struct {
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

// Feedback is the rule-based analysis of one student.
type Feedback struct {
	StudentID   string    `json:"student_id"`
	Summary     string    `json:"summary"`
	Metrics     Metrics   `json:"metrics"`
	Strengths   []Point   `json:"strengths"`
	GrowthAreas []Point   `json:"growth_areas"`
	Analytics   Analytics `json:"analytics"`
}

// Narrative is a free-form feedback text produced by an LLM.
type Narrative struct {
	Summary     string   `json:"summary"`
	Suggestions []string `json:"suggestions,omitempty"`
	// Fallback is set when the text is the canned fallback rather than
	// model output.
	Fallback bool `json:"fallback"`
}
