package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/nfa/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the store and locker.
const DefaultPrefix = "nfa:computation:"

// Store implements ports.ComputationStore using Redis.
// Each computation is a JSON string key; a ZSET scored by expiry indexes the IDs.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Store)

// WithTTL sets the expiration for computations.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for computations.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithClock overrides the clock used to score the expiry index.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Client exposes the underlying connection, e.g. to build a Locker on it.
func (s *Store) Client() *backend.Client {
	return s.client
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the computation to Redis.
func (s *Store) Save(ctx context.Context, c *domain.Computation) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal computation: %w", err)
	}

	// Score = Now + TTL. Without a TTL the entry never leaves the index.
	score := float64(s.now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(c.ID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: c.ID})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the computation from Redis.
func (s *Store) Load(ctx context.Context, id string) (*domain.Computation, error) {
	val, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrComputationNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var c domain.Computation
	if err := json.Unmarshal(val, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal computation: %w", err)
	}
	return &c, nil
}

// Delete removes the computation and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.indexKey(), id)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns live computation IDs, pruning expired index entries first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(s.now().Unix())

	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired computations: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list computations: %w", err)
	}
	return ids, nil
}

// Ping checks connectivity, used by the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
