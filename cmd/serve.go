package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/edusense/edusense/internal/feedback"
	"github.com/edusense/edusense/internal/risk"
	"github.com/edusense/edusense/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
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

		srv := server.New(server.Deps{
			Students: repo,
			Notes:    feedback.NewNotes(st.NoteRepo(), newNarrator(cmd, st), logger),
			Risk:     risk.NewService(st.ModelRepo(), logger),
			Thresholds: risk.Thresholds{
				Score:      cfg.Risk.ScoreThreshold,
				Attendance: cfg.Risk.AttendanceThreshold,
			},
			TopicCount:  cfg.TopicCount,
			CORSOrigins: cfg.Server.CORSOrigins,
			Logger:      logger,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
