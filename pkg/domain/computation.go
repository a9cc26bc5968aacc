package domain

import "time"

// ComputationStatus defines the lifecycle of a resumable computation.
type ComputationStatus string

const (
	StatusRunning  ComputationStatus = "running"  // Symbols may still be fed
	StatusRejected ComputationStatus = "rejected" // An undefined transition abandoned the word
)

// Computation is a word computation fed one symbol at a time.
// It is exclusively owned by one client and never shared between words.
type Computation struct {
	ID        string            `json:"id"`
	Active    StateSet          `json:"active"`
	Consumed  []string          `json:"consumed"`
	Status    ComputationStatus `json:"status"`
	Reason    string            `json:"reason,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewComputation creates a computation positioned at the initial state.
func NewComputation(id, initial string, now time.Time) *Computation {
	return &Computation{
		ID:        id,
		Active:    NewStateSet(initial),
		Consumed:  []string{},
		Status:    StatusRunning,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy safe for independent mutation.
func (c *Computation) Clone() *Computation {
	if c == nil {
		return nil
	}
	next := *c
	next.Active = c.Active.Clone()
	next.Consumed = append([]string{}, c.Consumed...)
	return &next
}
