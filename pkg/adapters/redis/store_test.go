package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/nfa/pkg/adapters/redis"
	"github.com/aretw0/nfa/pkg/domain"
	"github.com/aretw0/nfa/pkg/ports"
	"github.com/aretw0/nfa/pkg/ports/tests"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.ComputationStore = (*redis.Store)(nil)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	tests.RunComputationStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	now := time.Now()
	store := redis.NewFromClient(client,
		redis.WithTTL(time.Second),
		redis.WithClock(func() time.Time { return now }),
	)
	ctx := context.Background()
	id := "computation-ttl"

	require.NoError(t, store.Save(ctx, domain.NewComputation(id, "q0", now)))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, id)

	// Expire the key in miniredis and move the index clock past the score.
	mr.FastForward(2 * time.Second)
	now = now.Add(2 * time.Second)

	_, err = store.Load(ctx, id)
	assert.ErrorIs(t, err, domain.ErrComputationNotFound)

	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.NewComputation("my-computation", "q0", time.Now())))

	assert.True(t, mr.Exists("custom:app:my-computation"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, list, "my-computation")
}

func TestRedisStore_Ping(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)

	assert.NoError(t, store.Ping(context.Background()))

	mr.Close()
	assert.Error(t, store.Ping(context.Background()))
}
