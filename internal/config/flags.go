package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/postit/internal/flagx"
)

// parseFlags overlays Config fields given on the command line.
//
// Supported flags:
//
//	-d string   database DSN
//	-b int      busy timeout, milliseconds
//	-t int      account TTL, seconds
//	-s int      interactive session timeout, seconds
//	-l string   log level
//	-n          dry run (cleandb)
//	-r string   S3 bucket for sweep reports
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-b", "-t", "-s", "-l", "-r"}, "-n")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	busy := fs.Int64("b", config.BusyTimeout.Milliseconds(), "busy timeout (in milliseconds)")
	ttl := fs.Int64("t", int64(config.AccountTTL/time.Second), "account TTL (in seconds)")
	session := fs.Int64("s", int64(config.SessionTimeout/time.Second), "session timeout (in seconds)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.BoolVar(&config.DryRun, "n", config.DryRun, "dry run")
	fs.StringVar(&config.S3Bucket, "r", config.S3Bucket, "S3 bucket for sweep reports")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.BusyTimeout = time.Duration(*busy) * time.Millisecond
	config.AccountTTL = time.Duration(*ttl) * time.Second
	config.SessionTimeout = time.Duration(*session) * time.Second
	return nil
}
