package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/aretw0/nfa"
	"github.com/aretw0/nfa/internal/presentation/tui"
	"github.com/aretw0/nfa/pkg/domain"
	"github.com/aretw0/nfa/pkg/runner"
)

// RunOptions configures the interactive console and the trace command.
type RunOptions struct {
	File  string
	Sep   string
	Debug bool
	JSON  bool
	Delay time.Duration

	In  io.Reader
	Out io.Writer
}

func (o RunOptions) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

// Handler builds the trace handler matching the options.
func (o RunOptions) Handler() runner.TraceHandler {
	if o.JSON {
		return runner.NewJSONHandler(o.out())
	}
	return runner.NewTextHandler(o.out(), runner.WithDelay(o.Delay))
}

// RunConsole starts the interactive console. With a file the automaton is loaded
// up front and the five-tuple prompts are skipped.
func RunConsole(ctx context.Context, opts RunOptions) error {
	logger := NewLogger(opts.Debug)

	consoleOpts := []runner.ConsoleOption{
		runner.WithLogger(logger),
		runner.WithSeparator(opts.Sep),
		runner.WithEngineOptions(EngineOptions(logger, opts.Debug)...),
	}

	if opts.File != "" {
		eng, err := LoadEngine(opts.File, logger, opts.Debug)
		if err != nil {
			return err
		}
		consoleOpts = append(consoleOpts, runner.WithEngine(eng))
	}

	if !opts.JSON {
		tui.PrintBanner(opts.out())
	}

	err := runner.NewConsole(opts.In, opts.Handler(), consoleOpts...).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// TraceWord computes word and presents every step. An undefined transition is part
// of the presentation, not a failure.
func TraceWord(ctx context.Context, eng *nfa.Engine, word string, opts RunOptions) (*domain.Trace, error) {
	clean, err := runner.SanitizeLine(word)
	if err != nil {
		return nil, err
	}

	t, err := eng.Trace(ctx, domain.SplitWord(clean, opts.Sep))
	if err != nil && !errors.Is(err, domain.ErrUndefinedTransition) {
		return nil, err
	}
	if err := opts.Handler().Trace(ctx, t, opts.Sep); err != nil {
		return nil, err
	}
	return t, nil
}
