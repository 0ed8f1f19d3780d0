package risk

import "github.com/edusense/edusense/internal/roster"

// featureNames lists the model inputs in vector order.
var featureNames = []string{"Math", "Science", "English", "Attendance"}

const numFeatures = 4

// Thresholds decide the training label.
type Thresholds struct {
	Score      float64 `json:"score"`
	Attendance float64 `json:"attendance"`
}

// DefaultThresholds returns the standard at-risk cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{Score: 65, Attendance: 75}
}

// AtRisk reports whether rec is labelled at risk: a core-subject mean under
// the score threshold or attendance under the attendance threshold.
func (t Thresholds) AtRisk(rec roster.StudentRecord) bool {
	return rec.CoreAverage() < t.Score || rec.Attendance < t.Attendance
}

func features(rec roster.StudentRecord) [numFeatures]float64 {
	return [numFeatures]float64{
		rec.Score(roster.Math),
		rec.Score(roster.Science),
		rec.Score(roster.English),
		rec.Attendance,
	}
}
