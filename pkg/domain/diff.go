package domain

// StateDiff represents the change between two consecutive active sets.
// It is designed to be serialized to JSON for step-by-step clients.
type StateDiff struct {
	// Entered holds states that became active.
	Entered []string `json:"entered,omitempty"`

	// Left holds states that stopped being active.
	Left []string `json:"left,omitempty"`

	// Kept holds states active on both sides.
	Kept []string `json:"kept,omitempty"`
}

// Diff calculates the difference between prev and next.
// If prev is nil, it returns a diff where every state of next was entered (initial load).
func Diff(prev, next StateSet) *StateDiff {
	diff := &StateDiff{}

	for _, st := range next.Sorted() {
		if prev.Contains(st) {
			diff.Kept = append(diff.Kept, st)
		} else {
			diff.Entered = append(diff.Entered, st)
		}
	}

	for _, st := range prev.Sorted() {
		if !next.Contains(st) {
			diff.Left = append(diff.Left, st)
		}
	}

	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d == nil || (len(d.Entered) == 0 && len(d.Left) == 0)
}
