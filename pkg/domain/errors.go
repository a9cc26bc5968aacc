package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAutomaton is matched by every construction-time validation failure.
var ErrInvalidAutomaton = errors.New("invalid automaton")

var (
	// ErrUnknownInitialState is returned when the initial state is not in Q.
	ErrUnknownInitialState = errors.New("unknown initial state")

	// ErrUnknownFinalState is returned when a final state is not in Q.
	ErrUnknownFinalState = errors.New("unknown final state")

	// ErrUnknownDestinationState is returned when a rule points at a state not in Q.
	ErrUnknownDestinationState = errors.New("unknown destination state")
)

// ErrUndefinedTransition is returned when a step collapses to no defined destination.
// The word being computed is rejected.
var ErrUndefinedTransition = errors.New("undefined transition")

// ErrComputationNotFound is returned when a computation ID cannot be found in the store.
var ErrComputationNotFound = errors.New("computation not found")

// ErrComputationHalted is returned when feeding a computation that was already rejected.
var ErrComputationHalted = errors.New("computation halted")

// UnknownInitialStateError reports an initial state missing from Q.
type UnknownInitialStateError struct {
	State string
}

func (e *UnknownInitialStateError) Error() string {
	return fmt.Sprintf("initial state %q is not part of the listed states Q", e.State)
}

func (e *UnknownInitialStateError) Unwrap() []error {
	return []error{ErrInvalidAutomaton, ErrUnknownInitialState}
}

// UnknownFinalStateError reports a final state missing from Q.
type UnknownFinalStateError struct {
	State string
}

func (e *UnknownFinalStateError) Error() string {
	return fmt.Sprintf("final state %q is not part of the listed states Q", e.State)
}

func (e *UnknownFinalStateError) Unwrap() []error {
	return []error{ErrInvalidAutomaton, ErrUnknownFinalState}
}

// UnknownDestinationStateError reports a rule destination missing from Q.
type UnknownDestinationStateError struct {
	State  string
	Origin string
	Symbol string
}

func (e *UnknownDestinationStateError) Error() string {
	return fmt.Sprintf("state %q in rule δ(%s, %s) is not part of the listed states Q", e.State, e.Origin, e.Symbol)
}

func (e *UnknownDestinationStateError) Unwrap() []error {
	return []error{ErrInvalidAutomaton, ErrUnknownDestinationState}
}

// UndefinedTransitionError reports that no active state has a defined arrow for Symbol.
type UndefinedTransitionError struct {
	Active []string // sorted
	Symbol string
}

func (e *UndefinedTransitionError) Error() string {
	if len(e.Active) == 0 {
		return fmt.Sprintf("no active state can read %q: the word is rejected", e.Symbol)
	}
	return fmt.Sprintf("the transition from state(s) %s reading %q is undefined: the word is rejected",
		strings.Join(e.Active, ", "), e.Symbol)
}

func (e *UndefinedTransitionError) Unwrap() error {
	return ErrUndefinedTransition
}
