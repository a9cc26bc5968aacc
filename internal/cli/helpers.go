package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/nfa"
	"github.com/aretw0/nfa/internal/logging"
	"github.com/aretw0/nfa/pkg/domain"
	"github.com/aretw0/nfa/pkg/observability"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// NewLogger configures the application logger.
// In debug mode it writes to Stderr so Stdout stays reserved for traces.
func NewLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// EngineOptions builds the engine options shared by every command.
// Debug mode adds step-level logging on top of the given hooks.
func EngineOptions(logger *slog.Logger, debug bool, hooks ...domain.LifecycleHooks) []nfa.Option {
	if debug {
		hooks = append(hooks, debugHooks(logger), observability.AuditHooks(logger))
	}
	opts := []nfa.Option{nfa.WithLogger(logger)}
	if len(hooks) > 0 {
		opts = append(opts, nfa.WithLifecycleHooks(observability.Combine(hooks...)))
	}
	return opts
}

// LoadEngine reads the automaton file at path.
func LoadEngine(path string, logger *slog.Logger, debug bool, hooks ...domain.LifecycleHooks) (*nfa.Engine, error) {
	if path == "" {
		return nil, fmt.Errorf("no automaton file given (use --file)")
	}
	eng, err := nfa.Load(path, EngineOptions(logger, debug, hooks...)...)
	if err != nil {
		return nil, fmt.Errorf("error loading automaton: %w", err)
	}
	return eng, nil
}

func debugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.Debug("Step", "index", e.Index, "symbol", e.Symbol, "from", e.From.String(), "to", e.To.String())
		},
	}
}

// PrintSystemMessage prints a standardized system message.
func PrintSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}
