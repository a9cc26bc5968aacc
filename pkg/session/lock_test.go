package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/nfa/internal/testutils"
	"github.com/aretw0/nfa/pkg/adapters/memory"
	"github.com/aretw0/nfa/pkg/domain"
)

type stubEngine struct {
	automaton *domain.Automaton
}

func (s stubEngine) Automaton() *domain.Automaton { return s.automaton }
func (s stubEngine) Start() domain.StateSet       { return domain.NewStateSet(s.automaton.Initial()) }
func (s stubEngine) Step(context.Context, domain.StateSet, string) (domain.StateSet, error) {
	return domain.NewStateSet(s.automaton.Initial()), nil
}
func (s stubEngine) Trace(context.Context, []string) (*domain.Trace, error) { return nil, nil }

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(stubEngine{testutils.ExampleAutomaton(t)}, memory.NewStore())
	ctx := context.Background()
	count := 10000

	for i := 0; i < count; i++ {
		id := fmt.Sprintf("computation-%d", i)
		_, _ = mgr.Start(ctx, id)
		_, _ = mgr.Feed(ctx, id, "a")
		_ = mgr.Delete(ctx, id)
	}

	if lockCount := len(mgr.locks); lockCount != 0 {
		t.Errorf("Memory Leak Detected: %d locks remaining in memory after Delete", lockCount)
	}
}
