package middleware_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/nfa/pkg/adapters/memory"
	"github.com/aretw0/nfa/pkg/domain"
	"github.com/aretw0/nfa/pkg/persistence/middleware"
)

func TestRedactMiddleware_Masking(t *testing.T) {
	underlyingStore := memory.NewStore()
	mw, err := middleware.NewRedactMiddleware([]string{`^[0-9]+$`})
	if err != nil {
		t.Fatalf("NewRedactMiddleware failed: %v", err)
	}
	store := mw(underlyingStore)

	ctx := context.Background()
	c := domain.NewComputation("card", "q0", time.Now())
	c.Active = domain.NewStateSet("q1")
	c.Consumed = []string{"pin", "1234"}
	c.Status = domain.StatusRejected
	c.Reason = "no active state can read \"1234\""

	if err := store.Save(ctx, c); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if c.Consumed[1] != "1234" {
		t.Error("Middleware modified the caller's computation")
	}

	stored, err := underlyingStore.Load(ctx, c.ID)
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if stored.Consumed[0] != "pin" {
		t.Errorf("Symbol 'pin' shouldn't be masked, got %q", stored.Consumed[0])
	}
	if stored.Consumed[1] != middleware.Mask {
		t.Errorf("Symbol '1234' should be masked, got %q", stored.Consumed[1])
	}
	if !stored.Active.Contains("q1") {
		t.Errorf("Active set must survive redaction, got %v", stored.Active)
	}
}

func TestRedactMiddleware_InvalidPattern(t *testing.T) {
	if _, err := middleware.NewRedactMiddleware([]string{"("}); err == nil {
		t.Error("Expected error for an invalid pattern")
	}
}

func TestChain(t *testing.T) {
	redact, err := middleware.NewRedactMiddleware([]string{"secret"})
	if err != nil {
		t.Fatal(err)
	}
	underlyingStore := memory.NewStore()
	store := middleware.Chain(underlyingStore, redact, encrypted(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)}))

	ctx := context.Background()
	c := domain.NewComputation("chained", "q0", time.Now())
	c.Consumed = []string{"secret", "a"}
	if err := store.Save(ctx, c); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(ctx, c.ID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Consumed[0] != middleware.Mask || loaded.Consumed[1] != "a" {
		t.Errorf("Expected redaction to run before encryption, got %v", loaded.Consumed)
	}
}
