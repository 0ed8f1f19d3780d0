// Package config resolves application settings from defaults, an optional
// config file, a .env file and EDUSENSE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/edusense/edusense/internal/topics"
)

// EnvPrefix prefixes every environment override, e.g. EDUSENSE_SERVER_ADDR.
const EnvPrefix = "EDUSENSE"

// Keys.
const (
	KeyData              = "data"
	KeyDB                = "db"
	KeyRiskScore         = "risk.score_threshold"
	KeyRiskAttendance    = "risk.attendance_threshold"
	KeyTopicsCount       = "topics.count"
	KeyServerAddr        = "server.addr"
	KeyServerCORSOrigins = "server.cors_origins"
	KeyLogLevel          = "log.level"
	KeyLogFormat         = "log.format"
)

const (
	defaultDataPath        = "data/students.csv"
	defaultServerAddr      = ":8080"
	defaultCORSOrigins     = "http://localhost:3000"
	defaultScoreThreshold  = 65.0
	defaultAttendanceLimit = 75.0
	defaultTopicCount      = 3
)

// Risk holds the at-risk labelling thresholds.
type Risk struct {
	ScoreThreshold      float64
	AttendanceThreshold float64
}

// Server holds HTTP settings.
type Server struct {
	Addr        string
	CORSOrigins []string
}

// Log holds logger settings.
type Log struct {
	Level  string
	Format string
}

// Config is the resolved application configuration.
type Config struct {
	DataPath   string
	DBPath     string
	Risk       Risk
	TopicCount int
	Server     Server
	Log        Log
}

// Options controls where Load looks for settings.
type Options struct {
	// File is an optional YAML, TOML or JSON config file.
	File string
	// DotEnv is the .env file to load; defaults to ".env" in the working
	// directory. A missing file is ignored.
	DotEnv string
}

// New returns a viper instance with defaults and env binding applied.
func New() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault(KeyData, defaultDataPath)
	v.SetDefault(KeyDB, "")
	v.SetDefault(KeyRiskScore, defaultScoreThreshold)
	v.SetDefault(KeyRiskAttendance, defaultAttendanceLimit)
	v.SetDefault(KeyTopicsCount, defaultTopicCount)
	v.SetDefault(KeyServerAddr, defaultServerAddr)
	v.SetDefault(KeyServerCORSOrigins, defaultCORSOrigins)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the .env file and optional config file into v and resolves
// the result. Pass the viper instance returned by New, with any CLI flags
// already bound, so flags take precedence.
func Load(v *viper.Viper, opts Options) (*Config, error) {
	if err := loadDotEnv(opts.DotEnv); err != nil {
		return nil, err
	}
	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config.ReadInConfig(%s): %w", opts.File, err)
		}
	}

	cfg := &Config{
		DataPath: v.GetString(KeyData),
		DBPath:   v.GetString(KeyDB),
		Risk: Risk{
			ScoreThreshold:      v.GetFloat64(KeyRiskScore),
			AttendanceThreshold: v.GetFloat64(KeyRiskAttendance),
		},
		TopicCount: v.GetInt(KeyTopicsCount),
		Server: Server{
			Addr:        v.GetString(KeyServerAddr),
			CORSOrigins: splitList(v.GetString(KeyServerCORSOrigins)),
		},
		Log: Log{
			Level:  strings.ToLower(v.GetString(KeyLogLevel)),
			Format: strings.ToLower(v.GetString(KeyLogFormat)),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.DataPath == "" {
		return errors.New("config: data path is required")
	}
	if c.Risk.ScoreThreshold < 0 || c.Risk.ScoreThreshold > 100 {
		return fmt.Errorf("config: %s must be within 0-100, got %v", KeyRiskScore, c.Risk.ScoreThreshold)
	}
	if c.Risk.AttendanceThreshold < 0 || c.Risk.AttendanceThreshold > 100 {
		return fmt.Errorf("config: %s must be within 0-100, got %v", KeyRiskAttendance, c.Risk.AttendanceThreshold)
	}
	if c.TopicCount < 1 || c.TopicCount > topics.MaxCount {
		return fmt.Errorf("config: %s must be between 1 and %d, got %d", KeyTopicsCount, topics.MaxCount, c.TopicCount)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown %s %q", KeyLogFormat, c.Log.Format)
	}
	return nil
}

// loadDotEnv loads path (or ./.env) into the process environment without
// overriding variables that are already set.
func loadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config.os.Stat(%s): %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config.godotenv(%s): %w", path, err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
