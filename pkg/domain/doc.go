/*
Package domain contains the core domain models of the nfa engine.

It defines the five-tuple M = (Σ, Q, δ, S, F) of a nondeterministic finite automaton, the
state sets the computation moves through, and the outcomes and errors of running a word.
This package is kept pure and free of external dependencies like I/O or persistence,
following Hexagonal Architecture principles.

# Key Entities

  - Definition: the raw five-tuple as supplied by a loader, builder or console.
  - Automaton: the validated, immutable form of a Definition.
  - Rule: one production δ(origin, symbol) = {destinations}.
  - Destination: either a defined state or the explicit Undefined marker.
  - StateSet: the set of states a computation simultaneously occupies.
  - Trace: the checkpoints of one word computation, as read by trace renderers.
  - Computation: a resumable word computation fed one symbol at a time.
*/
package domain
