package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/nfa/pkg/domain"
	"github.com/aretw0/nfa/pkg/ports"
)

// Mask replaces redacted symbols.
const Mask = "***"

type redactMiddleware struct {
	next     ports.ComputationStore
	patterns []*regexp.Regexp
}

// NewRedactMiddleware creates a middleware that masks consumed symbols matching any pattern
// before they reach the store. Matches inside the rejection reason are masked too.
// The active set is never touched, so a redacted computation can still be fed.
func NewRedactMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redaction pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.ComputationStore) ports.ComputationStore {
		return &redactMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *redactMiddleware) Save(ctx context.Context, c *domain.Computation) error {
	// Clone so the caller's computation keeps the real word.
	cloned := c.Clone()
	for i, sym := range cloned.Consumed {
		if m.matches(sym) {
			cloned.Consumed[i] = Mask
		}
	}
	for _, p := range m.patterns {
		cloned.Reason = p.ReplaceAllString(cloned.Reason, Mask)
	}
	return m.next.Save(ctx, cloned)
}

func (m *redactMiddleware) matches(sym string) bool {
	for _, p := range m.patterns {
		if p.MatchString(sym) {
			return true
		}
	}
	return false
}

func (m *redactMiddleware) Load(ctx context.Context, id string) (*domain.Computation, error) {
	return m.next.Load(ctx, id)
}

func (m *redactMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *redactMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
