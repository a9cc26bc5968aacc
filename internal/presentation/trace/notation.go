package trace

import (
	"strings"

	"github.com/aretw0/nfa/pkg/domain"
)

// Kind classifies a rendered line so handlers can style it.
type Kind string

const (
	KindPre       Kind = "pre"       // δ*({q0, q1}, ab) =
	KindPost      Kind = "post"      // δ*(δ(q0, a) ∪ δ(q1, a), b) =
	KindVerdict   Kind = "verdict"   // {q0, qf} ∩ {qf} ≠ Ø
	KindRejection Kind = "rejection" // undefined transition
)

// Line is one line of the δ* derivation.
type Line struct {
	Kind     Kind
	Index    int // checkpoint the line describes
	Text     string
	Accepted bool // only meaningful for KindVerdict
}

// Pre renders δ*(active, rest) =.
func Pre(active domain.StateSet, rest []string, sep string) string {
	return "δ*(" + active.String() + ", " + domain.JoinWord(rest, sep) + ") ="
}

// Post renders δ*(δ(q0, a) ∪ δ(q1, a), rest) = over the sorted active states.
func Post(active domain.StateSet, symbol string, rest []string, sep string) string {
	parts := make([]string, 0, active.Len())
	for _, q := range active.Sorted() {
		parts = append(parts, "δ("+q+", "+symbol+")")
	}
	return "δ*(" + strings.Join(parts, " ∪ ") + ", " + domain.JoinWord(rest, sep) + ") ="
}

// Intersection renders the acceptance test {final} ∩ F followed by its outcome.
func Intersection(final, finals domain.StateSet, accepted bool) string {
	text := final.String() + " ∩ " + finals.String()
	if accepted {
		return text + " ≠ Ø >>>> WORD ACCEPTED"
	}
	return text + " = Ø >>>> WORD REJECTED"
}

// Lines derives the full notation for a trace, up to the verdict or the rejection.
func Lines(t *domain.Trace, sep string) []Line {
	if t == nil || len(t.Checkpoints) == 0 {
		return nil
	}

	var lines []Line
	for i, cp := range t.Checkpoints {
		lines = append(lines, Line{Kind: KindPre, Index: cp.Index, Text: Pre(cp.Active, cp.Remaining, sep)})

		if i+1 < len(t.Checkpoints) {
			next := t.Checkpoints[i+1]
			lines = append(lines, Line{
				Kind:  KindPost,
				Index: next.Index,
				Text:  Post(cp.Active, next.Symbol, next.Remaining, sep),
			})
			continue
		}

		// Last checkpoint: either the word was abandoned while reading the next symbol,
		// or it was fully read.
		if t.Rejection != nil {
			lines = append(lines, Line{
				Kind:  KindPost,
				Index: cp.Index + 1,
				Text:  Post(cp.Active, t.Rejection.Symbol, restAfter(cp.Remaining), sep),
			})
			lines = append(lines, Line{Kind: KindRejection, Index: cp.Index + 1, Text: t.Rejection.Error()})
		}
	}

	if t.Rejection == nil && t.Verdict != "" {
		accepted := t.Verdict.IsAccepted()
		lines = append(lines, Line{
			Kind:     KindVerdict,
			Index:    len(t.Checkpoints) - 1,
			Text:     Intersection(t.Final(), t.Finals, accepted),
			Accepted: accepted,
		})
	}
	return lines
}

func restAfter(remaining []string) []string {
	if len(remaining) == 0 {
		return nil
	}
	return remaining[1:]
}

// Render joins Lines into plain text, one line each.
func Render(t *domain.Trace, sep string) string {
	var b strings.Builder
	for _, l := range Lines(t, sep) {
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}
