package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/nfa/pkg/domain"
)

// Combine merges hook sets; each event is delivered to every set in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		if h.OnStep != nil {
			prev, next := out.OnStep, h.OnStep
			out.OnStep = func(ctx context.Context, e *domain.StepEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				next(ctx, e)
			}
		}
		if h.OnVerdict != nil {
			prev, next := out.OnVerdict, h.OnVerdict
			out.OnVerdict = func(ctx context.Context, e *domain.VerdictEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				next(ctx, e)
			}
		}
		if h.OnReject != nil {
			prev, next := out.OnReject, h.OnReject
			out.OnReject = func(ctx context.Context, e *domain.RejectEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				next(ctx, e)
			}
		}
	}
	return out
}

// AuditHooks logs every verdict and rejection at info level.
func AuditHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnVerdict: func(ctx context.Context, e *domain.VerdictEvent) {
			logger.InfoContext(ctx, "word decided",
				"word", domain.JoinWord(e.Word, ""),
				"verdict", string(e.Verdict),
				"final", e.Final.String(),
			)
		},
		OnReject: func(ctx context.Context, e *domain.RejectEvent) {
			logger.InfoContext(ctx, "word abandoned",
				"index", e.Index,
				"symbol", e.Symbol,
				"active", e.Active.String(),
				"err", e.Err,
			)
		},
	}
}
