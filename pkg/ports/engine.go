package ports

import (
	"context"

	"github.com/aretw0/nfa/pkg/domain"
)

// Stepper is the stateless view of an engine used by adapters.
// Every call owns its active set, so one Stepper may serve many computations at once.
type Stepper interface {
	// Automaton returns the validated five-tuple being run.
	Automaton() *domain.Automaton

	// Start returns {S}.
	Start() domain.StateSet

	// Step computes the next active set, or fails with *domain.UndefinedTransitionError.
	Step(ctx context.Context, active domain.StateSet, symbol string) (domain.StateSet, error)

	// Trace runs a whole word, returning the partial trace alongside any error.
	Trace(ctx context.Context, word []string) (*domain.Trace, error)
}
