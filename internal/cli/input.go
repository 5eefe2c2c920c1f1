package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// lineReader reads input lines in the background so a wait for input can be
// abandoned when ctx ends. At most one line is read ahead.
type lineReader struct {
	r     *bufio.Reader
	once  sync.Once
	lines chan string
	done  chan struct{}
	err   error
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{
		r:     bufio.NewReader(r),
		lines: make(chan string),
		done:  make(chan struct{}),
	}
}

func (l *lineReader) start() {
	go func() {
		defer close(l.done)
		for {
			line, err := l.r.ReadString('\n')
			if err != nil {
				if errors.Is(err, io.EOF) && len(line) > 0 {
					l.lines <- strings.TrimRight(line, "\r\n")
				}
				l.err = err
				return
			}
			l.lines <- strings.TrimRight(line, "\r\n")
		}
	}()
}

// ReadLine returns the next line without its line ending. Once input is
// exhausted it keeps returning io.EOF.
func (l *lineReader) ReadLine(ctx context.Context) (string, error) {
	l.once.Do(l.start)

	select {
	case line := <-l.lines:
		return line, nil
	case <-l.done:
		return "", l.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Ask prints prompt to w and reads one line of input.
func Ask(ctx context.Context, in *lineReader, w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	return in.ReadLine(ctx)
}
