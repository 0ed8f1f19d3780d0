package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edusense/edusense/internal/analytics"
	"github.com/edusense/edusense/internal/ui/components"
	"github.com/edusense/edusense/internal/ui/theme"
)

const barWidth = 30

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show class KPIs, subject averages, tiers and attendance",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRoster()
		if err != nil {
			return err
		}
		records := repo.List()
		if len(records) == 0 {
			writeln(cmd, "No students in the roster.")
			return nil
		}
		writeln(cmd, renderDashboard(analytics.Build(records)))
		return nil
	},
}

func renderDashboard(d analytics.Dashboard) string {
	var sections []string

	sections = append(sections, theme.Title.Render("Class overview")+"\n"+components.Fields(
		components.Field{Label: "Students", Value: fmt.Sprintf("%d", d.Summary.TotalStudents)},
		components.Field{Label: "Class average", Value: fmt.Sprintf("%.1f", d.Summary.ClassAverage)},
		components.Field{Label: "Avg attendance", Value: fmt.Sprintf("%.1f%%", d.Summary.AverageAttendance)},
	))

	var subj []string
	for _, s := range d.SubjectAverages {
		bar := components.NewProgressBar(string(s.Subject), s.Average, 100, barWidth)
		bar.LabelWidth = 10
		subj = append(subj, bar.View())
	}
	sections = append(sections, components.Section("Subject averages", strings.Join(subj, "\n")))

	maxTier := 0
	for _, t := range d.Tiers {
		maxTier = max(maxTier, t.Count)
	}
	var tiers []string
	for _, t := range d.Tiers {
		bar := components.NewProgressBar(t.Tier, float64(t.Count), float64(maxTier), barWidth)
		bar.LabelWidth = 26
		bar.Format = "%.0f"
		tiers = append(tiers, bar.View())
	}
	sections = append(sections, components.Section("Performance tiers", strings.Join(tiers, "\n")))

	maxBin := 0
	for _, b := range d.Attendance {
		maxBin = max(maxBin, b.Count)
	}
	var bins []string
	for _, b := range d.Attendance {
		bar := components.NewProgressBar(fmt.Sprintf("%5.1f-%5.1f", b.Low, b.High), float64(b.Count), float64(maxBin), barWidth)
		bar.LabelWidth = 12
		bar.Format = "%.0f"
		bins = append(bins, bar.View())
	}
	sections = append(sections, components.Section("Attendance distribution", strings.Join(bins, "\n")))

	return strings.Join(sections, "\n\n")
}
