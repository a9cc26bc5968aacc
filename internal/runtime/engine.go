package runtime

import (
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/nfa/pkg/domain"
)

// Engine is the core NFA stepper. It holds a validated automaton and no other state,
// so one Engine may serve any number of concurrent computations.
type Engine struct {
	automaton *domain.Automaton
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	now       func() time.Time
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger used for debug tracing.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock overrides the clock used to timestamp events.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates a stepper for the given automaton.
func NewEngine(automaton *domain.Automaton, opts ...EngineOption) *Engine {
	e := &Engine{
		automaton: automaton,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Automaton returns the automaton the engine runs.
func (e *Engine) Automaton() *domain.Automaton {
	return e.automaton
}

// Start returns the active set every non-empty word starts from: {S}.
func (e *Engine) Start() domain.StateSet {
	return domain.NewStateSet(e.automaton.Initial())
}
