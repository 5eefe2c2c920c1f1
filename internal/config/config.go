// Package config handles configuration shared by the postit and cleandb
// binaries: defaults, an optional JSON file and command-line flags, applied
// in that order.
package config

import (
	"time"

	"github.com/dmitrijs2005/postit/internal/common"
)

// Config holds runtime settings.
//
// Fields:
//   - DatabaseDSN: SQLite path or file: URI, or a postgres:// URL.
//   - BusyTimeout: how long a statement waits on a locked store.
//   - AccountTTL: age at which cleandb evicts an account.
//   - SessionTimeout: wall-clock limit for one interactive postit session.
//   - LoginInterval / LoginBurst: login attempt throttling.
//   - LogLevel: debug, info, warn or error.
//   - DryRun: cleandb reports stale accounts without deleting them.
//   - S3*: where cleandb archives sweep reports; archiving is off while
//     S3Bucket is empty.
type Config struct {
	DatabaseDSN    string
	BusyTimeout    time.Duration
	AccountTTL     time.Duration
	SessionTimeout time.Duration
	LoginInterval  time.Duration
	LoginBurst     int
	LogLevel       string
	DryRun         bool
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3RootUser     string
	S3RootPassword string
}

// LoadDefaults populates Config with the values the service historically
// ran with.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "db.sqlite3"
	c.BusyTimeout = common.DefaultBusyTimeout
	c.AccountTTL = common.DefaultAccountTTL
	c.SessionTimeout = 120 * time.Second
	c.LoginInterval = time.Second
	c.LoginBurst = 3
	c.LogLevel = "info"
	c.DryRun = false
	c.S3Region = "us-east-1"
}

// LoadConfig builds a Config from defaults, then the JSON file named by -c or
// -config, then the remaining flags in args (usually os.Args[1:]).
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
