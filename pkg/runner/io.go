package runner

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
)

// DefaultInputBufferSize is the default number of lines buffered ahead of the reader.
const DefaultInputBufferSize = 64

type inputResult struct {
	text string
	err  error
}

// LineReader reads lines in a background pump so that a blocked read can be
// abandoned when the context is canceled.
type LineReader struct {
	reader *bufio.Reader
	lines  chan inputResult
	once   sync.Once
}

// NewLineReader wraps r (Stdin when nil).
func NewLineReader(r io.Reader) *LineReader {
	if r == nil {
		r = os.Stdin
	}
	return &LineReader{reader: bufio.NewReader(r)}
}

func (l *LineReader) initPump() {
	l.once.Do(func() {
		l.lines = make(chan inputResult, DefaultInputBufferSize)
		go l.pump()
	})
}

func (l *LineReader) pump() {
	defer close(l.lines)
	for {
		text, err := l.reader.ReadString('\n')
		// If we got text (even with EOF), send it
		if text != "" {
			l.lines <- inputResult{text: text}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				l.lines <- inputResult{err: err}
			}
			return
		}
	}
}

// ReadLine returns the next line without its line terminator.
// It returns io.EOF once the input is exhausted.
func (l *LineReader) ReadLine(ctx context.Context) (string, error) {
	l.initPump()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-l.lines:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimRight(res.text, "\r\n"), nil
	}
}
