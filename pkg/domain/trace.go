package domain

// Checkpoint is the active-state set after a prefix of the word was consumed.
type Checkpoint struct {
	// Index is the number of symbols consumed so far. Checkpoint 0 is {initial}.
	Index int `json:"index"`
	// Symbol is the symbol consumed to reach this checkpoint (empty for checkpoint 0).
	Symbol string `json:"symbol,omitempty"`
	// From is the active set the symbol was read from.
	From StateSet `json:"from,omitempty"`
	// Active is the active set after consuming Symbol.
	Active StateSet `json:"active"`
	// Remaining holds the symbols still to be read.
	Remaining []string `json:"remaining"`
	// Diff describes which states were entered and left by this step.
	Diff *StateDiff `json:"diff,omitempty"`
}

// Trace records every checkpoint of one word computation.
type Trace struct {
	Word        []string     `json:"word"`
	Initial     string       `json:"initial"`
	Finals      StateSet     `json:"finals"`
	Checkpoints []Checkpoint `json:"checkpoints"`

	// Verdict is set once the whole word was consumed. It stays empty when the word
	// was abandoned by an undefined transition.
	Verdict Verdict `json:"verdict,omitempty"`

	// Rejection is the undefined transition that abandoned the word, if any.
	Rejection *UndefinedTransitionError `json:"-"`
}

// Final returns the active set of the last checkpoint.
func (t *Trace) Final() StateSet {
	if t == nil || len(t.Checkpoints) == 0 {
		return nil
	}
	return t.Checkpoints[len(t.Checkpoints)-1].Active
}

// Rejected reports whether the word was abandoned before being fully read.
func (t *Trace) Rejected() bool {
	return t != nil && t.Rejection != nil
}
