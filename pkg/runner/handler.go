package runner

import (
	"context"

	"github.com/aretw0/nfa/pkg/domain"
)

// TraceHandler defines how a computed word is presented.
// This allows switching between Text (CLI) and JSON (Structured) modes.
type TraceHandler interface {
	// Trace presents every checkpoint of t and its outcome.
	// sep is the separator used to print remaining symbols.
	Trace(ctx context.Context, t *domain.Trace, sep string) error

	// SystemOutput presents a meta-message to the user (prompts, help, status).
	SystemOutput(ctx context.Context, msg string) error

	// Error presents a failure that does not stop the program.
	Error(ctx context.Context, err error) error
}
