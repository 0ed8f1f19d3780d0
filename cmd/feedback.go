package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edusense/edusense/internal/feedback"
	"github.com/edusense/edusense/internal/llm"
	"github.com/edusense/edusense/internal/store"
	"github.com/edusense/edusense/internal/ui/components"
	"github.com/edusense/edusense/internal/ui/theme"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback <id>",
	Short: "Generate feedback for a student",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		useAI, _ := cmd.Flags().GetBool("ai")
		quick, _ := cmd.Flags().GetBool("quick")

		_, rec, err := withStudent(args)
		if err != nil {
			return err
		}

		if quick {
			writeln(cmd, feedback.QuickFeedback(rec))
			return nil
		}
		if !useAI {
			writeln(cmd, renderFeedback(rec.Name, feedback.Generate(rec)))
			return nil
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		notes := feedback.NewNotes(st.NoteRepo(), newNarrator(cmd, st), logger)
		nv, _, err := notes.Narrate(cmd.Context(), rec)
		writeln(cmd, theme.Heading.Render("AI feedback for "+rec.Name))
		writeln(cmd, theme.Body.Render(nv.Text()))
		if err != nil {
			writeln(cmd, theme.Hint.Render("Showing fallback text: "+err.Error()))
		}
		return nil
	},
}

// newNarrator builds a narrator from the environment's LLM settings. A
// missing configuration yields a narrator that always falls back.
func newNarrator(cmd *cobra.Command, st *store.Store) *feedback.Narrator {
	provider, err := llm.NewProviderFromEnv(cmd.Context(), st.EventRepo(), logger)
	if err != nil {
		if !errors.Is(err, llm.ErrNotConfigured) {
			logger.Warn("LLM provider unavailable", "error", err)
		}
		return feedback.NewNarrator(nil, feedback.DefaultConfig())
	}
	return feedback.NewNarrator(provider, feedback.DefaultConfig())
}

func renderFeedback(name string, fb feedback.Feedback) string {
	var b strings.Builder
	tier := theme.Tier(fb.Metrics.PerformanceTier)

	b.WriteString(theme.Title.Render("Feedback for "+name) + "\n\n")
	b.WriteString(theme.Body.Render(fb.Summary) + "\n\n")
	b.WriteString(components.Fields(
		components.Field{Label: "Performance tier", Value: fb.Metrics.PerformanceTier, Style: &tier},
		components.Field{Label: "Top subject", Value: fb.Metrics.TopSubject},
		components.Field{Label: "Area to focus", Value: fb.Metrics.AreaToFocus},
		components.Field{Label: "Attendance", Value: fb.Metrics.AttendanceStatus},
	))

	b.WriteString("\n\n" + components.Section("Strengths", points(fb.Strengths)))
	if len(fb.GrowthAreas) > 0 {
		b.WriteString("\n\n" + components.Section("Growth areas", points(fb.GrowthAreas)))
	}
	b.WriteString("\n\n" + theme.Hint.Render(fmt.Sprintf(
		"Remarks polarity %.2f, subjectivity %.2f", fb.Analytics.Polarity, fb.Analytics.Subjectivity)))
	return theme.Card.Render(b.String())
}

func points(ps []feedback.Point) string {
	lines := make([]string, len(ps))
	for i, p := range ps {
		lines[i] = p.Icon + " " + p.Text
	}
	return strings.Join(lines, "\n")
}

func init() {
	feedbackCmd.Flags().Bool("ai", false, "Generate an AI narrative and save it as the student's note")
	feedbackCmd.Flags().Bool("quick", false, "Print the one-line summary with sentiment scores")
}
