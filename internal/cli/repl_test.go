package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/postit/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	calls []string
	err   error
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeExec) Register(_ context.Context, name string) error { return f.record("register " + name) }
func (f *fakeExec) Users(context.Context) error                   { return f.record("users") }
func (f *fakeExec) Info(_ context.Context, name string) error     { return f.record("info " + name) }
func (f *fakeExec) Login(_ context.Context, name string) error    { return f.record("login " + name) }
func (f *fakeExec) Post(context.Context) error                    { return f.record("post") }
func (f *fakeExec) Posts(context.Context) error                   { return f.record("posts") }
func (f *fakeExec) Help(_ context.Context, cmd string) error      { return f.record("help " + cmd) }

func TestRunREPL_Dispatch(t *testing.T) {
	input := strings.Join([]string{
		"",
		"register alice",
		"users",
		"info alice",
		"login alice",
		"post",
		"posts",
		"help login",
		"register",
		"frobnicate now",
		"exit",
		"users",
	}, "\n")

	exec := &fakeExec{}
	var out bytes.Buffer

	err := runREPL(context.Background(), exec, newLineReader(strings.NewReader(input)), &out)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"register alice", "users", "info alice", "login alice",
		"post", "posts", "help login", "register ",
	}, exec.calls)
	assert.Contains(t, out.String(), "Unknown command: frobnicate\n")
	assert.True(t, strings.HasPrefix(out.String(), "\r$ "))
	assert.Equal(t, 11, strings.Count(out.String(), "\r$ "), "one prompt per line read")
}

func TestRunREPL_QuitAndEOF(t *testing.T) {
	exec := &fakeExec{}
	require.NoError(t, runREPL(context.Background(), exec, newLineReader(strings.NewReader("quit\nusers\n")), &bytes.Buffer{}))
	assert.Empty(t, exec.calls)

	require.NoError(t, runREPL(context.Background(), exec, newLineReader(strings.NewReader("users")), &bytes.Buffer{}))
	assert.Equal(t, []string{"users"}, exec.calls)
}

func TestRunREPL_StopsWhenStoreUnavailable(t *testing.T) {
	exec := &fakeExec{err: fmt.Errorf("%w: database is locked", common.ErrStorageUnavailable)}

	err := runREPL(context.Background(), exec, newLineReader(strings.NewReader("users\nposts\n")), &bytes.Buffer{})
	require.ErrorIs(t, err, common.ErrStorageUnavailable)
	assert.Equal(t, []string{"users"}, exec.calls)
}

func TestRunREPL_OtherErrorsContinue(t *testing.T) {
	exec := &fakeExec{err: common.ErrUnknownAccount}

	err := runREPL(context.Background(), exec, newLineReader(strings.NewReader("users\nposts\n")), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "posts"}, exec.calls)
}

func TestRunREPL_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runREPL(ctx, &fakeExec{}, newLineReader(strings.NewReader("")), &bytes.Buffer{})
	// either the cancellation or the empty input may win the race
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}
