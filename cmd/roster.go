package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/edusense/edusense/internal/roster"
)

func openRoster() (*roster.Repository, error) {
	path, err := dataPath()
	if err != nil {
		return nil, err
	}
	return roster.Open(path, logger)
}

// withStudent opens the roster and resolves args[0] to a record.
func withStudent(args []string) (*roster.Repository, roster.StudentRecord, error) {
	repo, err := openRoster()
	if err != nil {
		return nil, roster.StudentRecord{}, err
	}
	rec, err := repo.Get(args[0])
	if err != nil {
		return nil, roster.StudentRecord{}, err
	}
	return repo, rec, nil
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}

func writeln(cmd *cobra.Command, a ...any) {
	fmt.Fprintln(out(cmd), a...)
}

func writef(cmd *cobra.Command, format string, a ...any) {
	fmt.Fprintf(out(cmd), format, a...)
}
