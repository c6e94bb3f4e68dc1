package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"CalmTrader/internal/domain/models"
	"CalmTrader/pkg/cache"
)

var (
	// ErrQuotaExceeded means the session used up its question quota.
	ErrQuotaExceeded = errors.New("session: question quota exceeded")
	// ErrBusy means another request for the same session holds the lock.
	ErrBusy = errors.New("session: request already in flight")
)

// CooldownError means the session must wait before the next question.
type CooldownError struct {
	WaitSeconds int
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("session: cooldown active, wait %ds", e.WaitSeconds)
}

const lockTTL = 90 * time.Second

// Registry owns per-session usage state keyed by session id. State lives in
// a cache.Service (memory or Redis) with a TTL, so sessions evict themselves
// when idle. Check-then-act sequences must run under Lock/Unlock: two
// browser tabs sharing a session id would otherwise race the guard.
type Registry struct {
	store  cache.Service
	limits Limits
	ttl    time.Duration
	now    func() time.Time
}

// NewRegistry creates a session registry over the given store.
func NewRegistry(store cache.Service, limits Limits, ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Registry{
		store:  store,
		limits: limits,
		ttl:    ttl,
		now:    time.Now,
	}
}

// SetClock overrides the time source. Tests only.
func (r *Registry) SetClock(now func() time.Time) { r.now = now }

// Limits returns the configured guard constants.
func (r *Registry) Limits() Limits { return r.limits }

// Lock takes the per-session lock. Returns ErrBusy when a concurrent
// request for the same session already holds it.
func (r *Registry) Lock(ctx context.Context, id string) error {
	ok, err := r.store.TryLock(ctx, lockKey(id), lockTTL)
	if err != nil {
		return fmt.Errorf("session lock: %w", err)
	}
	if !ok {
		return ErrBusy
	}
	return nil
}

// Unlock releases the per-session lock.
func (r *Registry) Unlock(ctx context.Context, id string) {
	_ = r.store.Unlock(ctx, lockKey(id))
}

// State loads the session's usage state; unknown sessions are fresh.
func (r *Registry) State(ctx context.Context, id string) (UsageState, error) {
	var s UsageState
	err := r.store.Get(ctx, stateKey(id), &s)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return UsageState{}, nil
		}
		return UsageState{}, fmt.Errorf("session state: %w", err)
	}
	return s, nil
}

// Check enforces quota before cooldown, in that order. A nil return means
// the next call may proceed.
func (r *Registry) Check(ctx context.Context, id string) error {
	s, err := r.State(ctx, id)
	if err != nil {
		return err
	}
	if !r.limits.HasQuotaRemaining(s) {
		return ErrQuotaExceeded
	}
	if ok, wait := r.limits.CooldownStatus(s, r.now()); !ok {
		return &CooldownError{WaitSeconds: wait}
	}
	return nil
}

// RecordGranted increments the question counter and stamps the call time.
// Call it exactly once per granted advice call, after the upstream request
// returned successfully.
func (r *Registry) RecordGranted(ctx context.Context, id string) error {
	s, err := r.State(ctx, id)
	if err != nil {
		return err
	}
	s.Record(r.now())
	if err := r.store.Set(ctx, stateKey(id), s, r.ttl); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

// Usage returns the UI-facing view of a session's guard state.
func (r *Registry) Usage(ctx context.Context, id string) (models.SessionUsage, error) {
	s, err := r.State(ctx, id)
	if err != nil {
		return models.SessionUsage{}, err
	}
	remaining := r.limits.Quota - s.Questions
	if remaining < 0 {
		remaining = 0
	}
	_, wait := r.limits.CooldownStatus(s, r.now())
	return models.SessionUsage{
		SessionID:          id,
		QuestionsUsed:      s.Questions,
		QuestionsRemaining: remaining,
		CooldownSeconds:    wait,
	}, nil
}

func stateKey(id string) string { return "session:" + id }
func lockKey(id string) string  { return "session:" + id + ":lock" }
