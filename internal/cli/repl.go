package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/postit/internal/common"
)

// execIface is the command surface the loop dispatches to. App satisfies
// it; tests use a stub.
type execIface interface {
	Register(ctx context.Context, name string) error
	Users(ctx context.Context) error
	Info(ctx context.Context, name string) error
	Login(ctx context.Context, name string) error
	Post(ctx context.Context) error
	Posts(ctx context.Context) error
	Help(ctx context.Context, command string) error
}

// prompt starts with a carriage return so it overwrites any partial line
// left on the terminal. Scripted clients read up to it.
const prompt = "\r$ "

// runREPL prompts with "\r$ " and runs one command per line. The first word
// is the command and the rest of the line its argument.
//
// It returns nil on exit, quit or end of input. Handlers report their own
// errors to the user; the loop only stops early when the store is
// unavailable or ctx has ended, returning that error.
func runREPL(ctx context.Context, a execIface, in *lineReader, w io.Writer) error {
	for {
		fmt.Fprint(w, prompt)

		line, err := in.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(w)
				return nil
			}
			return err
		}

		cmd, args, _ := strings.Cut(line, " ")
		if cmd == "" {
			continue
		}

		switch cmd {
		case "register":
			err = a.Register(ctx, args)
		case "users":
			err = a.Users(ctx)
		case "info":
			err = a.Info(ctx, args)
		case "login":
			err = a.Login(ctx, args)
		case "post":
			err = a.Post(ctx)
		case "posts":
			err = a.Posts(ctx)
		case "help":
			err = a.Help(ctx, args)
		case "exit", "quit":
			return nil
		default:
			fmt.Fprintf(w, "Unknown command: %s\n", cmd)
		}

		if err != nil && (errors.Is(err, common.ErrStorageUnavailable) || ctx.Err() != nil) {
			return err
		}
	}
}
