package runtime

import (
	"context"

	"github.com/aretw0/nfa/pkg/domain"
)

// Step computes δ*(active, symbol): the union of δ(q, symbol) for every q in active.
//
// Undefined destinations are dropped. If no rule yields a defined destination, because
// every match was undefined or nothing matched at all, the step fails with
// *domain.UndefinedTransitionError and the word must be abandoned.
// The active set passed in is never modified.
func (e *Engine) Step(ctx context.Context, active domain.StateSet, symbol string) (domain.StateSet, error) {
	return e.step(ctx, 0, active, symbol)
}

func (e *Engine) step(ctx context.Context, index int, active domain.StateSet, symbol string) (domain.StateSet, error) {
	next := make(domain.StateSet)
	matched := 0

	for _, state := range active.Sorted() {
		if e.automaton.Transitions(state, symbol, next) {
			matched++
		}
	}

	if next.Len() == 0 {
		err := &domain.UndefinedTransitionError{
			Active: active.Sorted(),
			Symbol: symbol,
		}
		e.logger.Debug("undefined transition",
			"active", active.String(),
			"symbol", symbol,
			"matched_states", matched,
		)
		e.emitReject(ctx, index, symbol, active, err)
		return nil, err
	}

	e.logger.Debug("step",
		"from", active.String(),
		"symbol", symbol,
		"to", next.String(),
	)
	e.emitStep(ctx, index, symbol, active, next)
	return next, nil
}

func (e *Engine) emitStep(ctx context.Context, index int, symbol string, from, to domain.StateSet) {
	if e.hooks.OnStep == nil {
		return
	}
	e.hooks.OnStep(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventStep},
		Index:     index,
		Symbol:    symbol,
		From:      from.Clone(),
		To:        to.Clone(),
	})
}

func (e *Engine) emitReject(ctx context.Context, index int, symbol string, active domain.StateSet, err error) {
	if e.hooks.OnReject == nil {
		return
	}
	e.hooks.OnReject(ctx, &domain.RejectEvent{
		EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventReject},
		Index:     index,
		Symbol:    symbol,
		Active:    active.Clone(),
		Err:       err,
	})
}

func (e *Engine) emitVerdict(ctx context.Context, word []string, verdict domain.Verdict, final domain.StateSet) {
	if e.hooks.OnVerdict == nil {
		return
	}
	e.hooks.OnVerdict(ctx, &domain.VerdictEvent{
		EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventVerdict},
		Word:      append([]string(nil), word...),
		Verdict:   verdict,
		Final:     final.Clone(),
	})
}
