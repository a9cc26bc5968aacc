package domain

// Verdict is the terminal outcome of a fully consumed word.
// Rejected is a normal outcome, not an error.
type Verdict string

const (
	Accepted Verdict = "accepted"
	Rejected Verdict = "rejected"
)

// IsAccepted reports whether the verdict is Accepted.
func (v Verdict) IsAccepted() bool { return v == Accepted }
