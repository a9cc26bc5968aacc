package nfa

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aretw0/nfa/internal/runtime"
	"github.com/aretw0/nfa/pkg/adapters/file"
	"github.com/aretw0/nfa/pkg/domain"
)

// Engine is the high-level entry point for the nfa library.
// It wraps the internal stepper and provides a simplified API for consumers.
type Engine struct {
	runtime *runtime.Engine
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	name    string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithName labels the automaton in logs and presentation output.
func WithName(name string) Option {
	return func(e *Engine) {
		e.name = name
	}
}

// New validates the five-tuple and builds an Engine for it.
func New(def domain.Definition, opts ...Option) (*Engine, error) {
	a, err := domain.NewAutomaton(def)
	if err != nil {
		return nil, err
	}
	return FromAutomaton(a, opts...), nil
}

// Load reads a definition file (YAML or JSON) and builds an Engine for it.
// The file name, without extension, becomes the default engine name.
func Load(path string, opts ...Option) (*Engine, error) {
	def, err := file.LoadDefinition(path)
	if err != nil {
		return nil, err
	}

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	eng, err := New(*def, append([]Option{WithName(name)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return eng, nil
}

// FromAutomaton wraps an already validated automaton.
func FromAutomaton(a *domain.Automaton, opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.name != "" {
		eng.logger = eng.logger.With("automaton", eng.name)
	}

	eng.runtime = runtime.NewEngine(a,
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	)
	return eng
}

// Name returns the label given with WithName or derived by Load.
func (e *Engine) Name() string { return e.name }

// Automaton returns the validated automaton.
func (e *Engine) Automaton() *domain.Automaton {
	return e.runtime.Automaton()
}

// Start returns {S}, the active set a computation begins from.
func (e *Engine) Start() domain.StateSet {
	return e.runtime.Start()
}

// Step computes the next active set. See runtime.Engine.Step for the undefined-transition rule.
func (e *Engine) Step(ctx context.Context, active domain.StateSet, symbol string) (domain.StateSet, error) {
	return e.runtime.Step(ctx, active, symbol)
}

// Accepts runs word (a sequence of symbols) and returns its verdict.
func (e *Engine) Accepts(ctx context.Context, word []string) (domain.Verdict, error) {
	return e.runtime.Accepts(ctx, word)
}

// AcceptsString splits word with domain.SplitWord before running it.
func (e *Engine) AcceptsString(ctx context.Context, word, sep string) (domain.Verdict, error) {
	return e.runtime.Accepts(ctx, domain.SplitWord(word, sep))
}

// Trace runs word and returns every intermediate active set.
// When the word is abandoned, the partial trace is returned with the error.
func (e *Engine) Trace(ctx context.Context, word []string) (*domain.Trace, error) {
	return e.runtime.Trace(ctx, word)
}
