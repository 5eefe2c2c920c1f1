package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReader_Lines(t *testing.T) {
	ctx := context.Background()
	in := newLineReader(strings.NewReader("first\r\nsecond\nlast"))

	for _, want := range []string{"first", "second", "last"} {
		got, err := in.ReadLine(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := in.ReadLine(ctx)
	assert.ErrorIs(t, err, io.EOF)
	_, err = in.ReadLine(ctx)
	assert.ErrorIs(t, err, io.EOF, "EOF must be sticky")
}

func TestLineReader_DeadlineInterruptsWait(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := newLineReader(pr).ReadLine(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAsk(t *testing.T) {
	var out bytes.Buffer
	in := newLineReader(strings.NewReader("65537\n"))

	got, err := Ask(context.Background(), in, &out, "Enter RSA exponent: ")
	require.NoError(t, err)
	assert.Equal(t, "65537", got)
	assert.Equal(t, "Enter RSA exponent: ", out.String())
}

func TestAsk_KeepsInnerSpaces(t *testing.T) {
	in := newLineReader(strings.NewReader("  hello  world \n"))

	got, err := Ask(context.Background(), in, io.Discard, "Enter message: ")
	require.NoError(t, err)
	assert.Equal(t, "  hello  world ", got)
}
