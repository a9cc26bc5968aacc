package tests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/nfa/pkg/domain"
	"github.com/aretw0/nfa/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunComputationStoreContract runs a suite of tests to verify that a ComputationStore
// implementation adheres to the defined interface contract.
func RunComputationStoreContract(t *testing.T, store ports.ComputationStore) {
	t.Helper()

	ctx := context.Background()
	prefix := fmt.Sprintf("contract-%d", time.Now().UnixNano())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Save and Load", func(t *testing.T) {
		id := prefix + "-save"
		c := domain.NewComputation(id, "q0", now)
		c.Active = domain.NewStateSet("q0", "q1")
		c.Consumed = []string{"a"}

		require.NoError(t, store.Save(ctx, c), "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, id, loaded.ID)
		assert.True(t, c.Active.Equal(loaded.Active))
		assert.Equal(t, []string{"a"}, loaded.Consumed)
		assert.Equal(t, domain.StatusRunning, loaded.Status)
		assert.True(t, now.Equal(loaded.CreatedAt))
	})

	t.Run("Save overwrites", func(t *testing.T) {
		id := prefix + "-overwrite"
		c := domain.NewComputation(id, "q0", now)
		require.NoError(t, store.Save(ctx, c))

		c.Status = domain.StatusRejected
		c.Reason = "undefined"
		require.NoError(t, store.Save(ctx, c))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, loaded.Status)
		assert.Equal(t, "undefined", loaded.Reason)
	})

	t.Run("Loaded copies are independent", func(t *testing.T) {
		id := prefix + "-isolation"
		require.NoError(t, store.Save(ctx, domain.NewComputation(id, "q0", now)))

		first, err := store.Load(ctx, id)
		require.NoError(t, err)
		first.Active.Add("qf")

		second, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.False(t, second.Active.Contains("qf"))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+prefix)
		assert.ErrorIs(t, err, domain.ErrComputationNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		id := prefix + "-delete"
		require.NoError(t, store.Save(ctx, domain.NewComputation(id, "q0", now)))

		require.NoError(t, store.Delete(ctx, id), "Delete should not return error")

		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrComputationNotFound, "Load after Delete should return ErrComputationNotFound")

		assert.NoError(t, store.Delete(ctx, id), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := prefix + "-1"
		id2 := prefix + "-2"
		require.NoError(t, store.Save(ctx, domain.NewComputation(id1, "q0", now)))
		require.NoError(t, store.Save(ctx, domain.NewComputation(id2, "q0", now)))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
