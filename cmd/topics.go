package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edusense/edusense/internal/topics"
	"github.com/edusense/edusense/internal/ui/theme"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Find recurring topics in teacher remarks",
	RunE: func(cmd *cobra.Command, args []string) error {
		n := cfg.TopicCount
		if cmd.Flags().Changed("count") {
			n, _ = cmd.Flags().GetInt("count")
		}
		if err := topics.CheckCount(n); err != nil {
			return err
		}

		repo, err := openRoster()
		if err != nil {
			return err
		}
		records := repo.List()
		docs := make([]string, len(records))
		for i, r := range records {
			docs[i] = r.Remarks
		}

		writeln(cmd, theme.Title.Render("Topics in teacher remarks"))
		for _, line := range topics.Extract(docs, n) {
			writeln(cmd, "  "+line)
		}
		return nil
	},
}

func init() {
	topicsCmd.Flags().IntP("count", "n", topics.DefaultCount, fmt.Sprintf("Number of topics (1-%d)", topics.MaxCount))
}
