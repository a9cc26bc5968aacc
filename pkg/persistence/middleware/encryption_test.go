package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"
	"time"

	"github.com/aretw0/nfa/pkg/adapters/memory"
	"github.com/aretw0/nfa/pkg/domain"
	"github.com/aretw0/nfa/pkg/persistence/middleware"
	"github.com/aretw0/nfa/pkg/ports/tests"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func encrypted(t *testing.T, config middleware.EncryptionConfig) middleware.Middleware {
	t.Helper()
	mw, err := middleware.NewEncryptionMiddleware(config)
	if err != nil {
		t.Fatalf("NewEncryptionMiddleware failed: %v", err)
	}
	return mw
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	store := encrypted(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)})(memory.NewStore())
	tests.RunComputationStoreContract(t, store)
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlyingStore := memory.NewStore()
	secureStore := encrypted(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlyingStore)

	ctx := context.Background()
	c := domain.NewComputation("secret-word", "q0", time.Now())
	c.Active = domain.NewStateSet("q0", "q1")
	c.Consumed = []string{"p", "i", "n"}

	if err := secureStore.Save(ctx, c); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	stored, err := underlyingStore.Load(ctx, c.ID)
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if stored.Active.Len() != 0 {
		t.Errorf("Expected active set to be hidden, found: %v", stored.Active)
	}
	if len(stored.Consumed) != 2 || stored.Consumed[0] != "__encrypted__" {
		t.Fatalf("Expected an encrypted envelope, found: %v", stored.Consumed)
	}
	if stored.Status != domain.StatusRunning {
		t.Errorf("Expected status to stay readable, got %s", stored.Status)
	}

	loaded, err := secureStore.Load(ctx, c.ID)
	if err != nil {
		t.Fatalf("Load via middleware failed: %v", err)
	}
	if !loaded.Active.Equal(c.Active) {
		t.Errorf("Expected active %v, got %v", c.Active, loaded.Active)
	}
	if len(loaded.Consumed) != 3 || loaded.Consumed[2] != "n" {
		t.Errorf("Expected consumed [p i n], got %v", loaded.Consumed)
	}
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlyingStore := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)

	ctx := context.Background()
	c := domain.NewComputation("rotation", "q0", time.Now())

	if err := encrypted(t, middleware.EncryptionConfig{ActiveKey: oldKey})(underlyingStore).Save(ctx, c); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	rotated := encrypted(t, middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlyingStore)
	if _, err := rotated.Load(ctx, c.ID); err != nil {
		t.Fatalf("Load with fallback key failed: %v", err)
	}

	wrong := encrypted(t, middleware.EncryptionConfig{ActiveKey: newKey})(underlyingStore)
	if _, err := wrong.Load(ctx, c.ID); err == nil {
		t.Error("Expected Load to fail without the old key")
	}
}

func TestEncryptionMiddleware_RejectsPlainComputation(t *testing.T) {
	underlyingStore := memory.NewStore()
	ctx := context.Background()
	if err := underlyingStore.Save(ctx, domain.NewComputation("plain", "q0", time.Now())); err != nil {
		t.Fatal(err)
	}

	secureStore := encrypted(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlyingStore)
	if _, err := secureStore.Load(ctx, "plain"); err == nil {
		t.Error("Expected Load to fail for a computation saved without encryption")
	}
}

func TestNewEncryptionMiddleware_KeySize(t *testing.T) {
	if _, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short")}); err == nil {
		t.Error("Expected error for a key that is not 32 bytes")
	}
}
