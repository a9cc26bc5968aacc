/*
Package nfa simulates nondeterministic finite automata (NFA) and decides whether words are accepted.

An automaton is the five-tuple M = (Σ, Q, δ, S, F): an alphabet, a set of states, a transition
function mapping (state, symbol) to a set of states, an initial state and a set of final states.
The engine keeps the set of simultaneously active states, folds the word through δ one symbol
at a time and accepts when the last active set meets F.

# Undefined transitions

A production may declare that no transition exists ("-" in the text formats). Such destinations
are dropped from the union. When a step produces no defined destination at all, the word is
abandoned and the step returns *domain.UndefinedTransitionError.

# Usage

	def := domain.Definition{
		Alphabet: []string{"a", "b"},
		States:   []string{"q0", "q1", "qf"},
		Rules: []domain.Rule{
			domain.NewRule("q0", "a", "q0", "q1"),
			domain.NewRule("q0", "b", "q0"),
			domain.NewRule("q1", "b", "qf"),
		},
		Initial: "q0",
		Finals:  []string{"qf"},
	}

	eng, err := nfa.New(def)
	if err != nil {
		log.Fatal(err) // matches domain.ErrInvalidAutomaton
	}

	verdict, err := eng.AcceptsString(ctx, "aab", "")

Definitions can also be loaded from YAML or JSON files with Load. The nfa command in cmd/nfa
wraps the engine with an interactive console, an HTTP API and an MCP server.

The engine is immutable after construction and safe for concurrent use. Every computation owns
its active set; resumable computations are persisted through pkg/session.
*/
package nfa
