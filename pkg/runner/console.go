package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/nfa"
	"github.com/aretw0/nfa/internal/logging"
	"github.com/aretw0/nfa/pkg/adapters/file"
	"github.com/aretw0/nfa/pkg/domain"
)

// Console commands typed in place of a word.
const (
	CommandRedefine = "<<"
	CommandExit     = "exit"
	CommandHelp     = "h"
)

// ErrRedefine is shown when an automaton definition is rejected.
var ErrRedefine = errors.New("you must enter the automaton parameters again")

const helpText = `INSTRUCTIONS:

1- The program starts by asking for the five-tuple M = (Σ, Q, δ, S, F).

2- Whenever a set is requested, separate the items with ',' (spaces are ignored).
   Ex: Q = q0,q1,qf or q0, q1, qf

3- For every production rule enter all the states reachable through it.
   Ex: δ(q0, a) = q0,q1

4- If a state has no transition for a symbol, enter '-'.
   Ex: δ(q0, a) = -

5- Once the automaton is defined, type a word to compute it, 'ε' (or an empty line)
   for the empty word, '<<' to define a new automaton or 'exit' to quit.

`

// Console is the interactive program: it asks for an automaton, then decides words
// until the user exits.
type Console struct {
	input   *LineReader
	handler TraceHandler
	engine  *nfa.Engine
	sep     string
	opts    []nfa.Option
	logger  *slog.Logger
}

// ConsoleOption configures the Console.
type ConsoleOption func(*Console)

// WithEngine starts the console with an automaton already defined.
func WithEngine(eng *nfa.Engine) ConsoleOption {
	return func(c *Console) {
		c.engine = eng
	}
}

// WithSeparator splits words on sep instead of per character.
func WithSeparator(sep string) ConsoleOption {
	return func(c *Console) {
		c.sep = sep
	}
}

// WithEngineOptions are applied to every automaton the user defines.
func WithEngineOptions(opts ...nfa.Option) ConsoleOption {
	return func(c *Console) {
		c.opts = append(c.opts, opts...)
	}
}

// WithLogger configures a logger for the Console.
func WithLogger(logger *slog.Logger) ConsoleOption {
	return func(c *Console) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewConsole creates a console reading answers from r and presenting through h.
func NewConsole(r io.Reader, h TraceHandler, opts ...ConsoleOption) *Console {
	c := &Console{
		input:   NewLineReader(r),
		handler: h,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Engine returns the automaton currently in use, nil before one was defined.
func (c *Console) Engine() *nfa.Engine {
	return c.engine
}

// Run drives the console until "exit", the end of the input or ctx cancellation.
// Reaching the end of the input is a normal way to leave and returns nil.
func (c *Console) Run(ctx context.Context) error {
	err := c.run(ctx)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (c *Console) run(ctx context.Context) error {
	if c.engine == nil {
		if err := c.offerHelp(ctx); err != nil {
			return err
		}
		if err := c.define(ctx); err != nil {
			return err
		}
	}

	for {
		word, err := c.ask(ctx, "\nEnter\nthe word to be computed by the automaton or"+
			"\n'<<' to enter the automaton parameters again or"+
			"\n'exit' to quit the program: ")
		if err != nil {
			return err
		}

		switch word {
		case CommandExit:
			return nil
		case CommandRedefine:
			if err := c.define(ctx); err != nil {
				return err
			}
			continue
		}

		if err := c.compute(ctx, word); err != nil {
			return err
		}
	}
}

func (c *Console) offerHelp(ctx context.Context) error {
	answer, err := c.ask(ctx, "\nEnter 'h' to see the help or [ENTER] to continue: ")
	if err != nil {
		return err
	}
	if answer != CommandHelp {
		return nil
	}
	if err := c.handler.SystemOutput(ctx, helpText); err != nil {
		return err
	}
	_, err = c.ask(ctx, "Press [ENTER] to continue.")
	return err
}

// define asks for the five-tuple until it builds a valid automaton.
func (c *Console) define(ctx context.Context) error {
	for {
		def, err := c.readDefinition(ctx)
		if err != nil {
			if errors.Is(err, file.ErrReservedStateName) {
				if err := c.reject(ctx, err); err != nil {
					return err
				}
				continue
			}
			return err
		}

		eng, err := nfa.New(*def, c.opts...)
		if err != nil {
			c.logger.Debug("automaton rejected", "err", err)
			if err := c.reject(ctx, err); err != nil {
				return err
			}
			continue
		}

		c.engine = eng
		c.logger.Debug("automaton defined",
			"states", len(def.States),
			"rules", len(def.Rules),
		)
		return nil
	}
}

func (c *Console) reject(ctx context.Context, err error) error {
	if herr := c.handler.Error(ctx, err); herr != nil {
		return herr
	}
	return c.handler.Error(ctx, ErrRedefine)
}

func (c *Console) readDefinition(ctx context.Context) (*domain.Definition, error) {
	var def domain.Definition

	answer, err := c.ask(ctx, "\nEnter the symbols of the alphabet Σ = ")
	if err != nil {
		return nil, err
	}
	def.Alphabet = file.ParseList(answer)

	answer, err = c.ask(ctx, "Enter the set of states Q = ")
	if err != nil {
		return nil, err
	}
	def.States = file.ParseList(answer)
	for _, st := range def.States {
		if st == domain.UndefinedToken {
			return nil, file.ErrReservedStateName
		}
	}

	if err := c.handler.SystemOutput(ctx, "Enter the production rules for each state (follow the order shown):\n"); err != nil {
		return nil, err
	}
	for _, st := range def.States {
		for _, sym := range def.Alphabet {
			answer, err := c.ask(ctx, fmt.Sprintf("δ(%s, %s) = ", st, sym))
			if err != nil {
				return nil, err
			}
			def.Rules = append(def.Rules, domain.NewRule(st, sym, file.ParseList(answer)...))
		}
	}

	answer, err = c.ask(ctx, "Enter the initial state S = ")
	if err != nil {
		return nil, err
	}
	def.Initial = answer

	answer, err = c.ask(ctx, "Enter the set of final states F = ")
	if err != nil {
		return nil, err
	}
	def.Finals = file.ParseList(answer)

	return &def, nil
}

func (c *Console) compute(ctx context.Context, word string) error {
	t, err := c.engine.Trace(ctx, domain.SplitWord(word, c.sep))
	if err != nil && !errors.Is(err, domain.ErrUndefinedTransition) {
		return err
	}
	return c.handler.Trace(ctx, t, c.sep)
}

// ask prompts and reads one sanitized answer, re-prompting on unusable input.
func (c *Console) ask(ctx context.Context, prompt string) (string, error) {
	for {
		if err := c.handler.SystemOutput(ctx, prompt); err != nil {
			return "", err
		}
		line, err := c.input.ReadLine(ctx)
		if err != nil {
			return "", err
		}
		clean, err := SanitizeLine(line)
		if err != nil {
			if herr := c.handler.Error(ctx, err); herr != nil {
				return "", herr
			}
			continue
		}
		return clean, nil
	}
}
