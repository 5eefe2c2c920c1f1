package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/postit/internal/common"
	"github.com/dmitrijs2005/postit/internal/cryptox"
)

func (a *App) Register(ctx context.Context, name string) error {
	if name == "" {
		fmt.Fprintln(a.out, "Please supply a username")
		return nil
	}

	if _, err := a.accounts.Info(ctx, name); err == nil {
		fmt.Fprintln(a.out, "A user with that name already exists")
		return nil
	} else if !errors.Is(err, common.ErrUnknownAccount) {
		return a.fail(ctx, "register", err)
	}

	exp, err := a.ask(ctx, "Enter RSA exponent: ")
	if err != nil {
		return err
	}
	if !common.IsNumString(exp) {
		fmt.Fprintln(a.out, "Invalid RSA exponent")
		return nil
	}

	mod, err := a.ask(ctx, "Enter RSA modulus: ")
	if err != nil {
		return err
	}
	if !common.IsNumString(mod) {
		fmt.Fprintln(a.out, "Invalid RSA modulus")
		return nil
	}

	// the name may have been taken while we were asking
	_, err = a.accounts.Register(ctx, name, exp, mod)
	switch {
	case errors.Is(err, common.ErrDuplicateName):
		fmt.Fprintln(a.out, "A user with that name already exists")
		return nil
	case err != nil:
		return a.fail(ctx, "register", err)
	}
	return nil
}

func (a *App) Users(ctx context.Context) error {
	list, err := a.accounts.List(ctx)
	if err != nil {
		return a.fail(ctx, "users", err)
	}
	for _, acc := range list {
		fmt.Fprintf(a.out, "- %s\n", acc.Name)
	}
	return nil
}

func (a *App) Info(ctx context.Context, name string) error {
	if name == "" {
		fmt.Fprintln(a.out, "Please supply a username")
		return nil
	}

	acc, err := a.accounts.Info(ctx, name)
	switch {
	case errors.Is(err, common.ErrUnknownAccount):
		fmt.Fprintln(a.out, "A user with that name does not exist")
		return nil
	case err != nil:
		return a.fail(ctx, "info", err)
	}

	fmt.Fprintf(a.out, "Username: %s\n", acc.Name)
	fmt.Fprintf(a.out, "RSA Exponent: %s\n", acc.Key.Exponent)
	fmt.Fprintf(a.out, "RSA Modulus: %s\n", acc.Key.Modulus)
	fmt.Fprintf(a.out, "Fingerprint: %s\n", cryptox.Fingerprint(acc.Key))
	return nil
}

func (a *App) Login(ctx context.Context, name string) error {
	if name == "" {
		fmt.Fprintln(a.out, "Please supply a username")
		return nil
	}
	if !a.limiter.Allow() {
		fmt.Fprintln(a.out, "Too many login attempts, try again later")
		return nil
	}

	session, err := a.auth.Authenticate(ctx, name, a.respond)
	switch {
	case errors.Is(err, common.ErrUnknownAccount):
		fmt.Fprintln(a.out, "A user with that name does not exist")
		return nil
	case errors.Is(err, common.ErrMalformedSignature):
		fmt.Fprintln(a.out, "Invalid signature format (base 10)")
		return nil
	case errors.Is(err, common.ErrInvalidSignature):
		fmt.Fprintln(a.out, "Invalid signature")
		return nil
	case err != nil:
		return a.fail(ctx, "login", err)
	}

	// success is silent; the next prompt follows the signature directly
	a.session = session
	return nil
}

func (a *App) respond(ctx context.Context, challenge string) (string, error) {
	fmt.Fprintln(a.out, "Please verify your identity.")
	fmt.Fprintf(a.out, "Sign this message: %s\n", challenge)
	return a.ask(ctx, "Signature: ")
}

func (a *App) Post(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in!")
		return nil
	}

	msg, err := a.ask(ctx, "Enter message: ")
	if err != nil {
		return err
	}

	_, err = a.posts.Create(ctx, a.session, msg)
	switch {
	case errors.Is(err, common.ErrEmptyText):
		fmt.Fprintln(a.out, "Message can not be empty")
		return nil
	case errors.Is(err, common.ErrUnknownAccount):
		a.session = nil
		fmt.Fprintln(a.out, "Your account has expired, please register again")
		return nil
	case err != nil:
		return a.fail(ctx, "post", err)
	}
	return nil
}

func (a *App) Posts(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in!")
		return nil
	}

	seq, err := a.posts.List(ctx, a.session)
	if err != nil {
		return a.fail(ctx, "posts", err)
	}
	for text, err := range seq {
		if err != nil {
			return a.fail(ctx, "posts", err)
		}
		fmt.Fprintf(a.out, "> %s\n", text)
	}
	return nil
}

func (a *App) Help(_ context.Context, command string) error {
	if command == "" {
		fmt.Fprintln(a.out, "Supply a command to view usage info")
		return nil
	}

	for _, u := range usages {
		if u.cmd == command {
			sep := ""
			if u.args != "" {
				sep = " "
			}
			fmt.Fprintf(a.out, "%s %s%s: %s\n", u.cmd, u.args, sep, u.desc)
			return nil
		}
	}

	fmt.Fprintf(a.out, "Unknown command: %s\n", command)
	return nil
}
