// Command gendb creates the postit schema in an empty store, or upgrades an
// existing one.
package main

import (
	"context"
	"fmt"
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

	db, m, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	v, err := m.SchemaVersion(ctx, db)
	if err != nil {
		log.Printf("%v", err)
		return
	}
	fmt.Printf("%s: schema version %d\n", cfg.DatabaseDSN, v)
}
