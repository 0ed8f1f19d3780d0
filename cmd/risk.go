package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edusense/edusense/internal/risk"
	"github.com/edusense/edusense/internal/roster"
	"github.com/edusense/edusense/internal/ui/theme"
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Train and apply the at-risk classifier",
}

var riskTrainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a new risk model on the roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		th := risk.Thresholds{Score: cfg.Risk.ScoreThreshold, Attendance: cfg.Risk.AttendanceThreshold}
		if cmd.Flags().Changed("score") {
			th.Score, _ = cmd.Flags().GetFloat64("score")
		}
		if cmd.Flags().Changed("attendance") {
			th.Attendance, _ = cmd.Flags().GetFloat64("attendance")
		}

		repo, err := openRoster()
		if err != nil {
			return err
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		records := repo.List()
		m, err := risk.NewService(st.ModelRepo(), logger).Train(cmd.Context(), records, th)
		if err != nil {
			return err
		}
		writeln(cmd, theme.Good.Render("Trained model "+m.ID))
		writef(cmd, "Samples: %d, labelled at risk: %d (score < %.0f or attendance < %.0f)\n",
			m.Samples, m.AtRisk, th.Score, th.Attendance)
		return printFlags(cmd, m, records)
	},
}

var riskFlagCmd = &cobra.Command{
	Use:   "flag",
	Short: "List students the latest model flags as at risk",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRoster()
		if err != nil {
			return err
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		records := repo.List()
		m, err := risk.NewService(st.ModelRepo(), logger).LoadOrTrain(cmd.Context(), records)
		if err != nil {
			return err
		}
		writeln(cmd, theme.Subtitle.Render(fmt.Sprintf("Model %s trained %s", m.ID, m.TrainedAt.Local().Format("2006-01-02 15:04"))))
		return printFlags(cmd, m, records)
	},
}

func printFlags(cmd *cobra.Command, m *risk.Model, records []roster.StudentRecord) error {
	flagged := risk.Flag(m, records)
	if len(flagged) == 0 {
		writeln(cmd, theme.Good.Render("No students flagged as at risk."))
		return nil
	}
	writeln(cmd, theme.Bad.Render(fmt.Sprintf("%d student(s) at risk:", len(flagged))))
	for _, f := range flagged {
		writef(cmd, "  %-10s  %-24s  %5.0f%%\n", truncate(f.ID, 10), truncate(f.Name, 24), f.Probability*100)
	}
	return nil
}

func init() {
	riskTrainCmd.Flags().Float64("score", 0, "Core-subject average below which a student is labelled at risk")
	riskTrainCmd.Flags().Float64("attendance", 0, "Attendance below which a student is labelled at risk")

	riskCmd.AddCommand(riskTrainCmd)
	riskCmd.AddCommand(riskFlagCmd)
}
