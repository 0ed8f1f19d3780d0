package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/edusense/edusense/internal/config"
	"github.com/edusense/edusense/internal/logging"
	"github.com/edusense/edusense/internal/store"
)

var (
	cfg    *config.Config
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "edusense",
	Short: "Student performance dashboard",
	Long:  "EduSense keeps a class roster and turns it into feedback, recommendations, risk flags and topic summaries.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data", "", "Path to the roster CSV file (overrides EDUSENSE_DATA)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EDUSENSE_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (yaml, toml or json)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(studentsCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(riskCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves settings with flags taking precedence over the
// config file, .env and environment.
func loadConfig(cmd *cobra.Command) error {
	v := config.New()
	flags := cmd.Flags()
	for key, flag := range map[string]string{
		config.KeyData:     "data",
		config.KeyDB:       "db",
		config.KeyLogLevel: "log-level",
	} {
		if f := flags.Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind --%s: %w", flag, err)
			}
		}
	}

	file, _ := flags.GetString("config")
	loaded, err := config.Load(v, config.Options{File: file})
	if err != nil {
		return err
	}

	l, err := logging.New(os.Stderr, loaded.Log.Level, loaded.Log.Format)
	if err != nil {
		return err
	}
	cfg, logger = loaded, l
	slog.SetDefault(l)
	return nil
}

// resolveDBPath returns the database path using --db or the db config key,
// then EDUSENSE_DB env var, then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

var errNoConfig = errors.New("configuration not loaded")

func dataPath() (string, error) {
	if cfg == nil {
		return "", errNoConfig
	}
	return cfg.DataPath, nil
}
