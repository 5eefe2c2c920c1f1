package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/postit/internal/common"
	"github.com/dmitrijs2005/postit/internal/logging"
	"github.com/dmitrijs2005/postit/internal/models"
	"github.com/dmitrijs2005/postit/internal/repositories/repomanager"
	"github.com/dmitrijs2005/postit/internal/services"
	"github.com/dmitrijs2005/postit/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const challenge = "Xq3tV9mB2kLp8RzW4nYc6HdJ1sFg7aQe"

// fakeAuth accepts the signature "42" for any registered account.
type fakeAuth struct {
	accounts services.AccountService
}

func (f *fakeAuth) Authenticate(ctx context.Context, name string, respond services.Responder) (*models.Session, error) {
	acc, err := f.accounts.Info(ctx, name)
	if err != nil {
		return nil, err
	}
	sig, err := respond(ctx, challenge)
	if err != nil {
		return nil, err
	}
	if !common.IsNumString(sig) {
		return nil, common.ErrMalformedSignature
	}
	if sig != "42" {
		return nil, common.ErrInvalidSignature
	}
	return &models.Session{AccountID: acc.ID, Name: acc.Name}, nil
}

type harness struct {
	accounts services.AccountService
	posts    services.PostService
	auth     services.AuthService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()

	db, dialect, err := storage.Open(ctx, filepath.Join(t.TempDir(), "postit.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rm := repomanager.New(dialect)
	require.NoError(t, rm.RunMigrations(ctx, db))

	log := logging.Discard()
	accounts := services.NewAccountService(db, rm, log)
	return &harness{
		accounts: accounts,
		posts:    services.NewPostService(db, rm, log),
		auth:     &fakeAuth{accounts: accounts},
	}
}

func (h *harness) run(t *testing.T, ctx context.Context, burst int, lines ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := NewApp(h.accounts, h.auth, h.posts, logging.Discard(), time.Hour, burst,
		strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	err := app.Run(ctx)
	return out.String(), err
}

func TestApp_RegisterLoginPostList(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, context.Background(), 3,
		"register alice",
		"65537",
		"3233",
		"users",
		"info alice",
		"posts",
		"login alice",
		"42",
		"post",
		"hello",
		"posts",
		"exit",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Commands: help, register, users")
	assert.Contains(t, out, "Enter RSA exponent: ")
	assert.Contains(t, out, "Enter RSA modulus: ")
	assert.Contains(t, out, "- alice\n")
	assert.Contains(t, out, "Username: alice\nRSA Exponent: 65537\nRSA Modulus: 3233\nFingerprint: ")
	assert.Contains(t, out, "Not logged in!\n")
	assert.Contains(t, out, "Please verify your identity.\nSign this message: "+challenge+"\nSignature: ")
	assert.Contains(t, out, "Signature: \r$ ", "a successful login prints nothing before the next prompt")
	assert.Contains(t, out, "Enter message: ")
	assert.Equal(t, 1, strings.Count(out, "> hello\n"))
	assert.True(t, strings.HasSuffix(out, "bye!\n"))
}

func TestApp_RegisterErrors(t *testing.T) {
	h := newHarness(t)
	_, err := h.accounts.Register(context.Background(), "alice", "3", "55")
	require.NoError(t, err)

	out, err := h.run(t, context.Background(), 3,
		"register",
		"register alice",
		"register bob",
		"0x10",
		"register bob",
		"3",
		"-55",
		"info",
		"info carol",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Please supply a username\n")
	assert.Contains(t, out, "A user with that name already exists\n")
	assert.Contains(t, out, "Invalid RSA exponent\n")
	assert.Contains(t, out, "Invalid RSA modulus\n")
	assert.Contains(t, out, "A user with that name does not exist\n")

	list, err := h.accounts.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestApp_LoginFailures(t *testing.T) {
	h := newHarness(t)
	_, err := h.accounts.Register(context.Background(), "alice", "3", "55")
	require.NoError(t, err)

	out, err := h.run(t, context.Background(), 5,
		"login",
		"login nobody",
		"login alice",
		"abc",
		"login alice",
		"41",
		"post",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Please supply a username\n")
	assert.Contains(t, out, "A user with that name does not exist\n")
	assert.Contains(t, out, "Invalid signature format (base 10)\n")
	assert.Contains(t, out, "Invalid signature\n")
	assert.Contains(t, out, "Not logged in!\n")
	assert.NotContains(t, out, "Signature: \r$ ")
}

func TestApp_LoginRateLimited(t *testing.T) {
	h := newHarness(t)
	_, err := h.accounts.Register(context.Background(), "alice", "3", "55")
	require.NoError(t, err)

	out, err := h.run(t, context.Background(), 1,
		"login alice",
		"41",
		"login alice",
	)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "Sign this message"))
	assert.Contains(t, out, "Too many login attempts, try again later\n")
}

func TestApp_EmptyPostAndHelp(t *testing.T) {
	h := newHarness(t)
	_, err := h.accounts.Register(context.Background(), "alice", "3", "55")
	require.NoError(t, err)

	out, err := h.run(t, context.Background(), 3,
		"login alice",
		"42",
		"post",
		"",
		"posts",
		"help",
		"help register",
		"help users",
		"help nope",
		"quit",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Message can not be empty\n")
	assert.NotContains(t, out, "> ")
	assert.Contains(t, out, "Supply a command to view usage info\n")
	assert.Contains(t, out, "register USER : Create a new user\n")
	assert.Contains(t, out, "users : Lists all registered users\n")
	assert.Contains(t, out, "Unknown command: nope\n")
}

func TestApp_PostAfterAccountSwept(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.accounts.Register(ctx, "alice", "3", "55")
	require.NoError(t, err)

	var out bytes.Buffer
	app := NewApp(h.accounts, h.auth, h.posts, logging.Discard(), time.Hour, 3,
		strings.NewReader("hello\n"), &out)
	app.session = &models.Session{AccountID: 999, Name: "ghost"}

	require.NoError(t, app.Post(ctx))
	assert.Contains(t, out.String(), "Your account has expired")
	assert.False(t, app.isLoggedIn())
}

func TestApp_SessionTimeout(t *testing.T) {
	h := newHarness(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	var out bytes.Buffer
	app := NewApp(h.accounts, h.auth, h.posts, logging.Discard(), time.Hour, 3, blockingReader{}, &out)

	err := app.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, out.String(), "time's up!")
	assert.NotContains(t, out.String(), "bye!")
}

// blockingReader never returns.
type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) {
	select {}
}
