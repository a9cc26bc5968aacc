package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/nfa/internal/logging"
	"github.com/aretw0/nfa/pkg/domain"
	"github.com/aretw0/nfa/pkg/ports"
	"github.com/google/uuid"
)

// DefaultLockTTL bounds how long a distributed lock outlives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates computation access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
//
// One Manager must own a store for the life of the process: per-id locks live in the
// Manager, so hot reloads swap the engine with SetEngine instead of building a new one.
type Manager struct {
	engine atomic.Pointer[stepperRef]
	store  ports.ComputationStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

type stepperRef struct {
	ports.Stepper
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the lease of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock overrides the clock used for CreatedAt/UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a Manager running engine and persisting to store.
func NewManager(engine ports.Stepper, store ports.ComputationStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
		now:     time.Now,
	}
	m.engine.Store(&stepperRef{engine})
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Engine returns the stepper currently used for new steps.
func (m *Manager) Engine() ports.Stepper {
	return m.engine.Load().Stepper
}

// SetEngine swaps the stepper. A Feed already holding a computation's lock finishes
// with the engine it started with; the next Feed on that id sees the new one.
func (m *Manager) SetEngine(engine ports.Stepper) {
	m.engine.Store(&stepperRef{engine})
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// Start creates a computation positioned at {S}. An empty id gets a random UUID.
// Starting an ID that already exists resets it.
func (m *Manager) Start(ctx context.Context, id string) (*domain.Computation, error) {
	if id == "" {
		id = uuid.NewString()
	}

	c := domain.NewComputation(id, m.Engine().Automaton().Initial(), m.now())
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		if err := m.store.Save(ctx, c); err != nil {
			return fmt.Errorf("failed to initialize computation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Debug("computation started", "computation_id", id)
	return c, nil
}

// Feed reads one symbol into the computation.
//
// When the step hits an undefined transition the computation is persisted as rejected and
// the *domain.UndefinedTransitionError is returned along with it. Feeding a rejected
// computation returns domain.ErrComputationHalted.
func (m *Manager) Feed(ctx context.Context, id, symbol string) (*domain.Computation, error) {
	var result *domain.Computation
	var stepErr error

	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		c, err := m.store.Load(ctx, id)
		if err != nil {
			return err
		}
		if c.Status == domain.StatusRejected {
			result = c
			return fmt.Errorf("%w: %s", domain.ErrComputationHalted, c.Reason)
		}

		next, err := m.Engine().Step(ctx, c.Active, symbol)
		var undefined *domain.UndefinedTransitionError
		switch {
		case errors.As(err, &undefined):
			c.Status = domain.StatusRejected
			c.Reason = undefined.Error()
			stepErr = err
		case err != nil:
			return err
		default:
			c.Active = next
		}
		c.Consumed = append(c.Consumed, symbol)
		c.UpdatedAt = m.now()

		if err := m.store.Save(ctx, c); err != nil {
			return fmt.Errorf("failed to persist computation: %w", err)
		}
		result = c
		return nil
	})
	if err != nil {
		return result, err
	}

	m.logger.Debug("computation fed",
		"computation_id", id,
		"symbol", symbol,
		"active", result.Active.String(),
		"status", string(result.Status),
	)
	return result, stepErr
}

// Verdict decides the computation as if the word ended now.
// A computation abandoned by an undefined transition is rejected.
func (m *Manager) Verdict(ctx context.Context, id string) (domain.Verdict, *domain.Computation, error) {
	c, err := m.Load(ctx, id)
	if err != nil {
		return "", nil, err
	}
	if c.Status == domain.StatusRejected {
		return domain.Rejected, c, nil
	}
	if c.Active.Intersects(m.Engine().Automaton().Finals()) {
		return domain.Accepted, c, nil
	}
	return domain.Rejected, c, nil
}

// Load retrieves an existing computation from the store.
func (m *Manager) Load(ctx context.Context, id string) (*domain.Computation, error) {
	var c *domain.Computation
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		c, err = m.store.Load(ctx, id)
		return err
	})
	return c, err
}

// Delete removes the computation from the store.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.store.Delete(ctx, id)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying computation store.
func (m *Manager) Store() ports.ComputationStore {
	return m.store
}

// WithLock executes fn while holding the lock for the computation.
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, id, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"computation_id", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
