package cmd

import (
	"github.com/spf13/cobra"

	"github.com/edusense/edusense/internal/recommend"
	"github.com/edusense/edusense/internal/ui/theme"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <id>",
	Short: "Recommend learning resources for a student's weakest subject",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, rec, err := withStudent(args)
		if err != nil {
			return err
		}

		r, ok := recommend.ForRecord(rec)
		if !ok {
			writeln(cmd, "No scores recorded for "+rec.Name+"; nothing to recommend.")
			return nil
		}

		writeln(cmd, theme.Title.Render("Resources for "+string(r.Subject)))
		writeln(cmd)
		writeln(cmd, theme.Heading.Render("Websites"))
		for _, w := range r.Resources.Websites {
			writef(cmd, "  %s  %s\n", theme.Body.Render(w.Name), theme.Hint.Render(w.URL))
			writef(cmd, "    %s\n", w.Description)
		}
		writeln(cmd, theme.Heading.Render("Videos"))
		for _, v := range r.Resources.Videos {
			writef(cmd, "  %s  %s\n", theme.Body.Render(v.Name), theme.Hint.Render(v.EmbedURL))
		}
		writeln(cmd, theme.Heading.Render("Reading"))
		for _, rd := range r.Resources.Reading {
			writef(cmd, "  %s  %s\n", theme.Body.Render(rd.Name), theme.Hint.Render(rd.Description))
		}

		links := recommend.BelowThreshold(rec, recommend.DefaultThreshold)
		if len(links) > 0 {
			writeln(cmd)
			writeln(cmd, theme.Heading.Render("Quick links"))
			for _, l := range links {
				writef(cmd, "  %-8s %s\n", l.Subject, l.URL)
			}
		}
		return nil
	},
}
