package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aretw0/nfa/internal/presentation/trace"
	"github.com/aretw0/nfa/pkg/domain"
	"github.com/muesli/termenv"
)

// DefaultConsoleDelay paces the interactive console so each line can be read.
const DefaultConsoleDelay = time.Second

// TextHandler renders traces in δ* notation, one line at a time.
type TextHandler struct {
	Writer io.Writer
	// Delay is waited after each trace line. Zero disables pacing.
	Delay   time.Duration
	profile termenv.Profile
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithDelay paces the output.
func WithDelay(d time.Duration) TextHandlerOption {
	return func(h *TextHandler) {
		h.Delay = d
	}
}

// WithColorProfile overrides the detected terminal color profile.
// termenv.Ascii disables colors.
func WithColorProfile(p termenv.Profile) TextHandlerOption {
	return func(h *TextHandler) {
		h.profile = p
	}
}

// NewTextHandler creates a handler writing to w (Stdout when nil).
func NewTextHandler(w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Writer:  w,
		profile: termenv.EnvColorProfile(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) Trace(ctx context.Context, t *domain.Trace, sep string) error {
	for _, line := range trace.Lines(t, sep) {
		text := line.Text
		switch {
		case line.Kind == trace.KindRejection:
			text = h.red(text)
		case line.Kind == trace.KindVerdict && !line.Accepted:
			text = h.red(text)
		case line.Kind == trace.KindVerdict:
			text = h.green(text)
		}

		if _, err := fmt.Fprintln(h.Writer, text); err != nil {
			return err
		}
		if err := h.wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	_, err := fmt.Fprint(h.Writer, msg)
	return err
}

func (h *TextHandler) Error(ctx context.Context, err error) error {
	_, werr := fmt.Fprintln(h.Writer, h.red(err.Error()))
	return werr
}

func (h *TextHandler) wait(ctx context.Context) error {
	if h.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(h.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (h *TextHandler) red(s string) string {
	return h.profile.String(s).Foreground(h.profile.Color("#ef4444")).String()
}

func (h *TextHandler) green(s string) string {
	return h.profile.String(s).Foreground(h.profile.Color("#22c55e")).String()
}
