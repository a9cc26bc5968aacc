package runtime

import (
	"context"
	"errors"

	"github.com/aretw0/nfa/pkg/domain"
)

// Accepts runs the whole word and returns its verdict.
// An undefined transition aborts the word and is returned as the error.
func (e *Engine) Accepts(ctx context.Context, word []string) (domain.Verdict, error) {
	trace, err := e.Trace(ctx, word)
	if err != nil {
		return "", err
	}
	return trace.Verdict, nil
}

// Trace runs the word and records every intermediate active set.
// On an undefined transition the partial trace is returned together with the error.
func (e *Engine) Trace(ctx context.Context, word []string) (*domain.Trace, error) {
	a := e.automaton
	trace := &domain.Trace{
		Word:    append([]string{}, word...),
		Initial: a.Initial(),
		Finals:  a.Finals(),
	}

	active := e.Start()
	trace.Checkpoints = append(trace.Checkpoints, domain.Checkpoint{
		Index:     0,
		Active:    active,
		Remaining: append([]string{}, word...),
	})

	// The empty word never consults δ.
	if len(word) == 0 {
		trace.Verdict = e.decide(ctx, word, active)
		return trace, nil
	}

	for i, symbol := range word {
		next, err := e.step(ctx, i+1, active, symbol)
		if err != nil {
			var undefined *domain.UndefinedTransitionError
			if errors.As(err, &undefined) {
				trace.Rejection = undefined
			}
			return trace, err
		}

		trace.Checkpoints = append(trace.Checkpoints, domain.Checkpoint{
			Index:     i + 1,
			Symbol:    symbol,
			From:      active,
			Active:    next,
			Remaining: append([]string{}, word[i+1:]...),
			Diff:      domain.Diff(active, next),
		})
		active = next
	}

	trace.Verdict = e.decide(ctx, word, active)
	return trace, nil
}

// decide applies the acceptance condition active ∩ F ≠ ∅.
func (e *Engine) decide(ctx context.Context, word []string, active domain.StateSet) domain.Verdict {
	verdict := domain.Rejected
	if active.Intersects(e.automaton.Finals()) {
		verdict = domain.Accepted
	}
	e.logger.Debug("verdict",
		"word", domain.JoinWord(word, ""),
		"final", active.String(),
		"verdict", string(verdict),
	)
	e.emitVerdict(ctx, word, verdict, active)
	return verdict
}
