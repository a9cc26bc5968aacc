package cli

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strings"

	filestore "github.com/aretw0/nfa/internal/adapters/file"
	"github.com/aretw0/nfa/pkg/adapters/memory"
	"github.com/aretw0/nfa/pkg/adapters/redis"
	"github.com/aretw0/nfa/pkg/persistence/middleware"
	"github.com/aretw0/nfa/pkg/ports"
	"github.com/aretw0/nfa/pkg/session"
)

// DefaultStoreDir is where `nfa session` keeps computations.
const DefaultStoreDir = ".nfa/computations"

const (
	// EnvRedisAddr overrides the --redis flag default.
	EnvRedisAddr = "NFA_REDIS_ADDR"

	// EnvStoreKey holds a hex encoded AES-256 key. When set, computations are encrypted at rest.
	EnvStoreKey = "NFA_STORE_KEY"

	// EnvStoreOldKeys holds comma separated hex keys still accepted for decryption.
	EnvStoreOldKeys = "NFA_STORE_OLD_KEYS"

	// EnvRedact holds comma separated patterns; matching consumed symbols are masked when saved.
	EnvRedact = "NFA_REDACT"
)

// Backend is the computation store selected by the command line, plus its lock.
type Backend struct {
	Store  ports.ComputationStore
	Locker ports.DistributedLocker
	Kind   string
	close  func() error
}

// RedisAddr returns flag when set, otherwise NFA_REDIS_ADDR.
func RedisAddr(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(EnvRedisAddr)
}

// OpenBackend picks Redis when redisAddr is set, the file store when dir is set,
// and memory otherwise. The store is wrapped by StoreMiddleware.
func OpenBackend(ctx context.Context, redisAddr, dir string) (*Backend, error) {
	mws, err := StoreMiddleware()
	if err != nil {
		return nil, err
	}

	b, err := openBackend(ctx, redisAddr, dir)
	if err != nil {
		return nil, err
	}
	b.Store = middleware.Chain(b.Store, mws...)
	return b, nil
}

// StoreMiddleware builds the store decorators configured by NFA_REDACT and NFA_STORE_KEY.
// Redaction runs before encryption.
func StoreMiddleware() ([]middleware.Middleware, error) {
	var mws []middleware.Middleware

	if patterns := splitEnv(EnvRedact); len(patterns) > 0 {
		mw, err := middleware.NewRedactMiddleware(patterns)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvRedact, err)
		}
		mws = append(mws, mw)
	}

	if raw := os.Getenv(EnvStoreKey); raw != "" {
		key, err := hex.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("%s must be hex encoded: %w", EnvStoreKey, err)
		}
		config := middleware.EncryptionConfig{ActiveKey: key}
		for _, old := range splitEnv(EnvStoreOldKeys) {
			k, err := hex.DecodeString(old)
			if err != nil {
				return nil, fmt.Errorf("%s must be hex encoded: %w", EnvStoreOldKeys, err)
			}
			config.FallbackKeys = append(config.FallbackKeys, k)
		}
		mw, err := middleware.NewEncryptionMiddleware(config)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvStoreKey, err)
		}
		mws = append(mws, mw)
	}
	return mws, nil
}

func splitEnv(name string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(name), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func openBackend(ctx context.Context, redisAddr, dir string) (*Backend, error) {
	switch {
	case redisAddr != "":
		store := redis.New(redisAddr, "", 0)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", redisAddr, err)
		}
		return &Backend{
			Store:  store,
			Locker: redis.NewLocker(store.Client(), redis.DefaultPrefix),
			Kind:   "redis",
			close:  store.Close,
		}, nil
	case dir != "":
		return &Backend{Store: filestore.New(dir), Kind: "file"}, nil
	default:
		return &Backend{Store: memory.NewStore(), Kind: "memory"}, nil
	}
}

// Manager wraps the backend in a session manager for engine.
func (b *Backend) Manager(engine ports.Stepper, logger *slog.Logger) *session.Manager {
	opts := []session.Option{session.WithLogger(logger)}
	if b.Locker != nil {
		opts = append(opts, session.WithLocker(b.Locker))
	}
	return session.NewManager(engine, b.Store, opts...)
}

// Close releases the backend connection, if any.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}
