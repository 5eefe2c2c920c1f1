package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/postit/internal/app"
	"github.com/dmitrijs2005/postit/internal/config"
)

func main() {

	ctx := context.Background()
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, err := app.NewLogger(os.Stderr, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	c, err := app.NewCleandb(ctx, cfg, logger, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	report, err := c.Run(ctx)
	if err != nil {
		logger.Error(ctx, err.Error())
		os.Exit(1)
	}
	if len(report.Failures) > 0 {
		os.Exit(2)
	}
}
