package main

import (
	"context"
	"errors"
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

	p, err := app.NewPostit(ctx, cfg, logger, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	err = p.Run(ctx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		logger.Error(ctx, err.Error())
		os.Exit(1)
	}
}
