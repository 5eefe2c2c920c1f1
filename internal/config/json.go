package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/postit/internal/flagx"
	"github.com/dmitrijs2005/postit/internal/timex"
)

// JsonConfig is the on-disk shape of a config file. Durations accept "12m"
// style strings or integer nanoseconds. Absent fields keep their current
// value.
type JsonConfig struct {
	DatabaseDSN    string          `json:"database_dsn"`
	BusyTimeout    *timex.Duration `json:"busy_timeout"`
	AccountTTL     *timex.Duration `json:"account_ttl"`
	SessionTimeout *timex.Duration `json:"session_timeout"`
	LoginInterval  *timex.Duration `json:"login_interval"`
	LoginBurst     *int            `json:"login_burst"`
	LogLevel       string          `json:"log_level"`
	DryRun         *bool           `json:"dry_run"`
	S3Bucket       string          `json:"s3_bucket"`
	S3Region       string          `json:"s3_region"`
	S3BaseEndpoint string          `json:"s3_base_endpoint"`
	S3RootUser     string          `json:"s3_root_user"`
	S3RootPassword string          `json:"s3_root_password"`
}

// parseJson loads the file named by -c or -config, if any, into config.
func parseJson(config *Config, args []string) error {
	jsonConfigFile := flagx.JsonConfigFlags(args)

	// nothing to load
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", jsonConfigFile, err)
	}

	c.apply(config)
	return nil
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)

	if c.BusyTimeout != nil {
		config.BusyTimeout = c.BusyTimeout.Duration
	}
	if c.AccountTTL != nil {
		config.AccountTTL = c.AccountTTL.Duration
	}
	if c.SessionTimeout != nil {
		config.SessionTimeout = c.SessionTimeout.Duration
	}
	if c.LoginInterval != nil {
		config.LoginInterval = c.LoginInterval.Duration
	}
	if c.LoginBurst != nil {
		config.LoginBurst = *c.LoginBurst
	}
	if c.DryRun != nil {
		config.DryRun = *c.DryRun
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
