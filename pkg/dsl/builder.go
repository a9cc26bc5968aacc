package dsl

import (
	"fmt"

	"github.com/aretw0/nfa"
	"github.com/aretw0/nfa/pkg/domain"
)

// Builder collects the five-tuple of an automaton.
type Builder struct {
	name     string
	alphabet []string
	declared bool
	states   map[string]*StateBuilder
	order    []string
	initial  string
}

// New creates a builder. The name is used as the engine name by Engine.
func New(name string) *Builder {
	return &Builder{
		name:   name,
		states: make(map[string]*StateBuilder),
	}
}

// Alphabet declares Σ in order. Without it, Σ is the set of symbols used
// by the rules, in the order they first appear.
func (b *Builder) Alphabet(symbols ...string) *Builder {
	b.alphabet = append(b.alphabet, symbols...)
	b.declared = true
	return b
}

// State adds a state to Q, or returns the existing builder for it.
// States keep the order of their first mention.
func (b *Builder) State(name string) *StateBuilder {
	if sb, ok := b.states[name]; ok {
		return sb
	}
	sb := &StateBuilder{name: name, builder: b}
	b.states[name] = sb
	b.order = append(b.order, name)
	return sb
}

// States adds several states at once.
func (b *Builder) States(names ...string) *Builder {
	for _, n := range names {
		b.State(n)
	}
	return b
}

// Definition returns the collected five-tuple without validating it.
func (b *Builder) Definition() domain.Definition {
	def := domain.Definition{
		States:  append([]string(nil), b.order...),
		Initial: b.initial,
	}

	seen := make(map[string]bool)
	if b.declared {
		for _, s := range b.alphabet {
			if !seen[s] {
				seen[s] = true
				def.Alphabet = append(def.Alphabet, s)
			}
		}
	}

	for _, name := range b.order {
		sb := b.states[name]
		if sb.final {
			def.Finals = append(def.Finals, name)
		}
		for _, r := range sb.rules {
			def.Rules = append(def.Rules, r)
			if !b.declared && !seen[r.Symbol] {
				seen[r.Symbol] = true
				def.Alphabet = append(def.Alphabet, r.Symbol)
			}
		}
	}
	return def
}

// Build validates the collected five-tuple.
func (b *Builder) Build() (*domain.Automaton, error) {
	if len(b.order) == 0 {
		return nil, fmt.Errorf("automaton %q has no states", b.name)
	}
	if b.initial == "" {
		return nil, fmt.Errorf("automaton %q has no initial state", b.name)
	}
	return domain.NewAutomaton(b.Definition())
}

// Engine builds the automaton and wraps it in an engine named after the builder.
func (b *Builder) Engine(opts ...nfa.Option) (*nfa.Engine, error) {
	a, err := b.Build()
	if err != nil {
		return nil, err
	}
	return nfa.FromAutomaton(a, append([]nfa.Option{nfa.WithName(b.name)}, opts...)...), nil
}

// StateBuilder configures one state and its outgoing rules.
type StateBuilder struct {
	name    string
	final   bool
	rules   []domain.Rule
	builder *Builder
}

// Initial marks the state as S. The last state marked wins.
func (s *StateBuilder) Initial() *StateBuilder {
	s.builder.initial = s.name
	return s
}

// Final adds the state to F.
func (s *StateBuilder) Final() *StateBuilder {
	s.final = true
	return s
}

// On adds δ(state, symbol) = targets. With no targets the transition is
// declared undefined. Targets must be declared with State; Build reports
// the ones that are not.
func (s *StateBuilder) On(symbol string, targets ...string) *StateBuilder {
	r := domain.Rule{Origin: s.name, Symbol: symbol}
	if len(targets) == 0 {
		r.Destinations = []domain.Destination{domain.Undefined()}
	}
	for _, t := range targets {
		r.Destinations = append(r.Destinations, domain.To(t))
	}
	s.rules = append(s.rules, r)
	return s
}

// State switches to another state, for chaining.
func (s *StateBuilder) State(name string) *StateBuilder {
	return s.builder.State(name)
}
