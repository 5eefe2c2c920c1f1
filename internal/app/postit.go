package app

import (
	"context"
	"database/sql"
	"io"

	"github.com/dmitrijs2005/postit/internal/cli"
	"github.com/dmitrijs2005/postit/internal/config"
	"github.com/dmitrijs2005/postit/internal/logging"
	"github.com/dmitrijs2005/postit/internal/services"
)

// Postit is the interactive service process.
type Postit struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	cli    *cli.App
}

func NewPostit(ctx context.Context, c *config.Config, logger logging.Logger, in io.Reader, out io.Writer) (*Postit, error) {
	db, m, err := OpenStore(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	as := services.NewAccountService(db, m, logger)
	au := services.NewAuthService(db, m, logger)
	ps := services.NewPostService(db, m, logger)

	app := cli.NewApp(as, au, ps, logger, c.LoginInterval, c.LoginBurst, in, out)

	return &Postit{config: c, logger: logger, db: db, cli: app}, nil
}

// Run serves one interactive session. The session ends after
// config.SessionTimeout regardless of activity.
func (p *Postit) Run(ctx context.Context) error {
	defer p.db.Close()

	ctx, cancel := context.WithTimeout(ctx, p.config.SessionTimeout)
	defer cancel()
	stop := initSignalHandler(cancel)
	defer stop()

	p.logger.Debug(ctx, "session started", "timeout", p.config.SessionTimeout.String())
	return p.cli.Run(ctx)
}
