package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/postit/internal/logging"
	"github.com/dmitrijs2005/postit/internal/models"
	"github.com/dmitrijs2005/postit/internal/services"
	"golang.org/x/time/rate"
)

type App struct {
	accounts services.AccountService
	auth     services.AuthService
	posts    services.PostService
	log      logging.Logger
	limiter  *rate.Limiter
	in       *lineReader
	out      io.Writer
	session  *models.Session
}

// NewApp wires the services to the given input and output. At most burst
// login attempts are allowed at once, refilled one per interval.
func NewApp(
	accounts services.AccountService,
	auth services.AuthService,
	posts services.PostService,
	log logging.Logger,
	loginInterval time.Duration,
	loginBurst int,
	in io.Reader,
	out io.Writer,
) *App {
	return &App{
		accounts: accounts,
		auth:     auth,
		posts:    posts,
		log:      log,
		limiter:  rate.NewLimiter(rate.Every(loginInterval), loginBurst),
		in:       newLineReader(in),
		out:      out,
	}
}

// Run prints the banner and serves commands until the user leaves, input
// ends or ctx is done. A passed deadline prints "time's up!" and returns
// context.DeadlineExceeded.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprint(a.out, banner)

	err := runREPL(ctx, a, a.in, a.out)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintln(a.out, "\ntime's up!")
		return err
	case err != nil:
		return err
	}

	fmt.Fprintln(a.out, "bye!")
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) ask(ctx context.Context, prompt string) (string, error) {
	return Ask(ctx, a.in, a.out, prompt)
}

// fail reports an unexpected error to the user and the log.
func (a *App) fail(ctx context.Context, op string, err error) error {
	if ctx.Err() != nil {
		return err
	}
	a.log.Error(ctx, op+" failed", "error", err)
	fmt.Fprintf(a.out, "Error: %v\n", err)
	return err
}
