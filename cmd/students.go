package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edusense/edusense/internal/analytics"
	"github.com/edusense/edusense/internal/recommend"
	"github.com/edusense/edusense/internal/roster"
	"github.com/edusense/edusense/internal/ui/components"
	"github.com/edusense/edusense/internal/ui/theme"
)

var studentsCmd = &cobra.Command{
	Use:     "students",
	Aliases: []string{"student"},
	Short:   "Manage the class roster",
}

var studentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List students, optionally filtered by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("search")

		repo, err := openRoster()
		if err != nil {
			return err
		}
		records := repo.Search(query)
		if len(records) == 0 {
			writeln(cmd, "No students found.")
			return nil
		}

		writef(cmd, "%-10s  %-24s", "ID", "Name")
		for _, s := range roster.Subjects {
			writef(cmd, "  %7s", s)
		}
		writef(cmd, "  %7s  %7s\n", "Avg", "Att%")
		writeln(cmd, strings.Repeat("─", 102))

		for _, r := range records {
			writef(cmd, "%-10s  %-24s", truncate(r.ID, 10), truncate(r.Name, 24))
			for _, s := range roster.Subjects {
				v := r.Score(s)
				writef(cmd, "  %s", theme.Score(v, recommend.DefaultThreshold).Render(fmt.Sprintf("%7.1f", v)))
			}
			writef(cmd, "  %7.1f  %7.1f\n", r.Average(), r.Attendance)
		}
		writeln(cmd, theme.Hint.Render(fmt.Sprintf("%d student(s)", len(records))))
		return nil
	},
}

var studentsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a student's profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, rec, err := withStudent(args)
		if err != nil {
			return err
		}
		writeln(cmd, renderProfile(analytics.BuildProfile(rec)))
		return nil
	},
}

var studentsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a student to the roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := recordFromFlags(cmd, roster.StudentRecord{Scores: map[roster.Subject]float64{}})
		if err != nil {
			return err
		}
		repo, err := openRoster()
		if err != nil {
			return err
		}
		if err := repo.Add(rec); err != nil {
			return err
		}
		writeln(cmd, theme.Good.Render("Added "+rec.ID))
		return nil
	},
}

var studentsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of an existing student",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, rec, err := withStudent(args)
		if err != nil {
			return err
		}
		rec, err = recordFromFlags(cmd, rec)
		if err != nil {
			return err
		}
		if err := repo.Update(args[0], rec); err != nil {
			return err
		}
		writeln(cmd, theme.Good.Render("Updated "+args[0]))
		return nil
	},
}

var studentsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a student and their notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRoster()
		if err != nil {
			return err
		}
		if err := repo.Remove(args[0]); err != nil {
			return err
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.NoteRepo().DeleteNotes(cmd.Context(), args[0]); err != nil {
			logger.Warn("failed to delete notes", "student", args[0], "error", err)
		}
		writeln(cmd, theme.Good.Render("Removed "+args[0]))
		return nil
	},
}

// recordFromFlags overlays every changed flag onto base.
func recordFromFlags(cmd *cobra.Command, base roster.StudentRecord) (roster.StudentRecord, error) {
	rec := base.Clone()
	flags := cmd.Flags()

	strFields := map[string]*string{
		"id":      &rec.ID,
		"name":    &rec.Name,
		"remarks": &rec.Remarks,
		"photo":   &rec.PhotoURL,
	}
	for name, dst := range strFields {
		if flags.Changed(name) {
			v, err := flags.GetString(name)
			if err != nil {
				return rec, err
			}
			*dst = v
		}
	}

	for _, s := range roster.Subjects {
		name := strings.ToLower(string(s))
		if flags.Changed(name) {
			v, err := flags.GetFloat64(name)
			if err != nil {
				return rec, err
			}
			rec.Scores[s] = v
		}
	}
	if flags.Changed("attendance") {
		v, err := flags.GetFloat64("attendance")
		if err != nil {
			return rec, err
		}
		rec.Attendance = v
	}
	return rec, nil
}

func renderProfile(p analytics.Profile) string {
	rec := p.Student
	var b strings.Builder

	b.WriteString(theme.Title.Render(rec.Name) + "  " + theme.Subtitle.Render(rec.ID) + "\n\n")
	tier := theme.Tier(p.Feedback.Metrics.PerformanceTier)
	b.WriteString(components.Fields(
		components.Field{Label: "Average", Value: fmt.Sprintf("%.1f", p.Average)},
		components.Field{Label: "Attendance", Value: fmt.Sprintf("%.0f%%", p.Attendance)},
		components.Field{Label: "Best subject", Value: p.BestSubject},
		components.Field{Label: "Weakest subject", Value: p.WeakestSubject},
		components.Field{Label: "Performance tier", Value: p.Feedback.Metrics.PerformanceTier, Style: &tier},
	))
	b.WriteString("\n\n")

	var bars []string
	for _, s := range roster.Subjects {
		bar := components.NewProgressBar(string(s), rec.Score(s), 100, 30)
		bar.LabelWidth = 10
		bars = append(bars, bar.View())
	}
	b.WriteString(components.Section("Scores", strings.Join(bars, "\n")))

	if rec.Remarks != "" {
		b.WriteString("\n\n" + components.Section("Remarks", theme.Body.Render(rec.Remarks)))
	}
	return theme.Card.Render(b.String())
}

func addRecordFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Student name")
	for _, s := range roster.Subjects {
		cmd.Flags().Float64(strings.ToLower(string(s)), 0, string(s)+" score (0-100)")
	}
	cmd.Flags().Float64("attendance", 0, "Attendance percentage (0-100)")
	cmd.Flags().String("remarks", "", "Teacher remarks")
	cmd.Flags().String("photo", "", "Photo URL")
}

func init() {
	studentsListCmd.Flags().StringP("search", "s", "", "Case-insensitive name filter")

	studentsAddCmd.Flags().String("id", "", "Student ID")
	addRecordFlags(studentsAddCmd)
	addRecordFlags(studentsUpdateCmd)

	studentsCmd.AddCommand(studentsListCmd)
	studentsCmd.AddCommand(studentsShowCmd)
	studentsCmd.AddCommand(studentsAddCmd)
	studentsCmd.AddCommand(studentsUpdateCmd)
	studentsCmd.AddCommand(studentsRemoveCmd)
}
