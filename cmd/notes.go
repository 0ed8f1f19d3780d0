package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edusense/edusense/internal/feedback"
	"github.com/edusense/edusense/internal/store"
	"github.com/edusense/edusense/internal/ui/theme"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Read and write feedback notes",
}

var notesSetCmd = &cobra.Command{
	Use:   "set <id> <text...>",
	Short: "Save a note for a student",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, rec, err := withStudent(args)
		if err != nil {
			return err
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		notes := feedback.NewNotes(st.NoteRepo(), nil, logger)
		note, err := notes.Save(cmd.Context(), rec.ID, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		writef(cmd, "%s\n", theme.Good.Render(fmt.Sprintf("Saved note #%d for %s", note.ID, rec.ID)))
		return nil
	},
}

var notesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the latest note, or the full history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		history, _ := cmd.Flags().GetBool("history")

		_, rec, err := withStudent(args)
		if err != nil {
			return err
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		notes := feedback.NewNotes(st.NoteRepo(), nil, logger)
		var list []store.Note
		if history {
			list, err = notes.History(cmd.Context(), rec.ID)
			if err != nil {
				return err
			}
		} else {
			latest, err := notes.Latest(cmd.Context(), rec.ID)
			if err != nil {
				return err
			}
			if latest != nil {
				list = append(list, *latest)
			}
		}

		if len(list) == 0 {
			writeln(cmd, "No notes for "+rec.ID+".")
			return nil
		}
		for _, n := range list {
			writeln(cmd, theme.Subtitle.Render(n.Timestamp.Local().Format("2006-01-02 15:04")+"  "+n.Source))
			writeln(cmd, theme.Body.Render(n.Body))
			writeln(cmd)
		}
		return nil
	},
}

func init() {
	notesShowCmd.Flags().Bool("history", false, "Show every note, newest first")

	notesCmd.AddCommand(notesSetCmd)
	notesCmd.AddCommand(notesShowCmd)
}
