package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noDotEnv(t *testing.T) Options {
	return Options{DotEnv: filepath.Join(t.TempDir(), "missing.env")}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(), noDotEnv(t))
	require.NoError(t, err)

	assert.Equal(t, "data/students.csv", cfg.DataPath)
	assert.Equal(t, "", cfg.DBPath)
	assert.Equal(t, 65.0, cfg.Risk.ScoreThreshold)
	assert.Equal(t, 75.0, cfg.Risk.AttendanceThreshold)
	assert.Equal(t, 3, cfg.TopicCount)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("EDUSENSE_DATA", "/tmp/roster.csv")
	t.Setenv("EDUSENSE_RISK_SCORE_THRESHOLD", "50")
	t.Setenv("EDUSENSE_TOPICS_COUNT", "5")
	t.Setenv("EDUSENSE_SERVER_CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("EDUSENSE_LOG_FORMAT", "JSON")

	cfg, err := Load(New(), noDotEnv(t))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/roster.csv", cfg.DataPath)
	assert.Equal(t, 50.0, cfg.Risk.ScoreThreshold)
	assert.Equal(t, 5, cfg.TopicCount)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("EDUSENSE_SERVER_ADDR=:9191\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("EDUSENSE_SERVER_ADDR") })

	cfg, err := Load(New(), Options{DotEnv: path})
	require.NoError(t, err)
	assert.Equal(t, ":9191", cfg.Server.Addr)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edusense.yaml")
	body := "data: class.csv\nrisk:\n  attendance_threshold: 80\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	opts := noDotEnv(t)
	opts.File = path
	cfg, err := Load(New(), opts)
	require.NoError(t, err)

	assert.Equal(t, "class.csv", cfg.DataPath)
	assert.Equal(t, 80.0, cfg.Risk.AttendanceThreshold)
	assert.Equal(t, 65.0, cfg.Risk.ScoreThreshold)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	opts := noDotEnv(t)
	opts.File = filepath.Join(t.TempDir(), "nope.yaml")
	_, err := Load(New(), opts)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			DataPath:   "x.csv",
			Risk:       Risk{ScoreThreshold: 65, AttendanceThreshold: 75},
			TopicCount: 3,
			Log:        Log{Level: "info", Format: "text"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"no data path", func(c *Config) { c.DataPath = "" }, true},
		{"score over 100", func(c *Config) { c.Risk.ScoreThreshold = 101 }, true},
		{"negative attendance", func(c *Config) { c.Risk.AttendanceThreshold = -1 }, true},
		{"zero topics", func(c *Config) { c.TopicCount = 0 }, true},
		{"too many topics", func(c *Config) { c.TopicCount = 21 }, true},
		{"max topics", func(c *Config) { c.TopicCount = 20 }, false},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,, b "))
}
