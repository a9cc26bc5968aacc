package ports

import (
	"context"

	"github.com/aretw0/nfa/pkg/domain"
)

// ComputationStore defines the interface for persisting resumable computations.
// This allows a word to be fed one symbol per request, across processes.
type ComputationStore interface {
	// Save persists the computation under its ID.
	Save(ctx context.Context, c *domain.Computation) error

	// Load retrieves the computation with the given ID.
	// Returns domain.ErrComputationNotFound if it does not exist.
	Load(ctx context.Context, id string) (*domain.Computation, error)

	// Delete removes the computation. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored computations.
	List(ctx context.Context) ([]string, error)
}
