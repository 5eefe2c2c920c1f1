package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	return &Config{
		DatabaseDSN:    "db.sqlite3",
		BusyTimeout:    10 * time.Second,
		AccountTTL:     12 * time.Minute,
		SessionTimeout: 120 * time.Second,
		LoginInterval:  time.Second,
		LoginBurst:     3,
		LogLevel:       "info",
		S3Region:       "us-east-1",
	}
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()
	assert.Empty(t, cmp.Diff(defaults(), &c))
}

func TestLoadConfig_NoArgs(t *testing.T) {
	c, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), c))
}

func TestParseFlags(t *testing.T) {
	c := defaults()
	err := parseFlags(c, []string{
		"-d", "postgres://localhost/postit", "-b", "250", "-t", "60", "-s", "30",
		"-l", "debug", "-n", "-r", "sweeps", "-x", "ignored",
	})
	require.NoError(t, err)

	want := defaults()
	want.DatabaseDSN = "postgres://localhost/postit"
	want.BusyTimeout = 250 * time.Millisecond
	want.AccountTTL = time.Minute
	want.SessionTimeout = 30 * time.Second
	want.LogLevel = "debug"
	want.DryRun = true
	want.S3Bucket = "sweeps"

	assert.Empty(t, cmp.Diff(want, c))
}

func TestParseFlags_BadValue(t *testing.T) {
	err := parseFlags(defaults(), []string{"-t", "soon"})
	require.Error(t, err)
}

func TestParseJson(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"database_dsn":     "/var/lib/postit/db.sqlite3",
		"busy_timeout":     "2s",
		"account_ttl":      "1h",
		"session_timeout":  60_000_000_000,
		"login_interval":   "500ms",
		"login_burst":      5,
		"log_level":        "warn",
		"dry_run":          true,
		"s3_bucket":        "bucket",
		"s3_region":        "eu-west-1",
		"s3_base_endpoint": "http://127.0.0.1:9000",
		"s3_root_user":     "user",
		"s3_root_password": "password",
	})

	c := defaults()
	require.NoError(t, parseJson(c, []string{"-config", path}))

	want := &Config{
		DatabaseDSN:    "/var/lib/postit/db.sqlite3",
		BusyTimeout:    2 * time.Second,
		AccountTTL:     time.Hour,
		SessionTimeout: time.Minute,
		LoginInterval:  500 * time.Millisecond,
		LoginBurst:     5,
		LogLevel:       "warn",
		DryRun:         true,
		S3Bucket:       "bucket",
		S3Region:       "eu-west-1",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3RootUser:     "user",
		S3RootPassword: "password",
	}
	assert.Empty(t, cmp.Diff(want, c))
}

func TestParseJson_PartialKeepsDefaults(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"account_ttl": "30s"})

	c := defaults()
	require.NoError(t, parseJson(c, []string{"-c", path}))

	want := defaults()
	want.AccountTTL = 30 * time.Second
	assert.Empty(t, cmp.Diff(want, c))
}

func TestParseJson_Errors(t *testing.T) {
	err := parseJson(defaults(), []string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"account_ttl": "forever"}`), 0o600))
	err = parseJson(defaults(), []string{"-c", bad})
	require.Error(t, err)
}

func TestLoadConfig_FlagsOverrideJson(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"database_dsn": "from-json.db", "account_ttl": "1h"})

	c, err := LoadConfig([]string{"-c", path, "-d", "from-flag.db"})
	require.NoError(t, err)

	assert.Equal(t, "from-flag.db", c.DatabaseDSN)
	assert.Equal(t, time.Hour, c.AccountTTL)
}
