package rate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vetcare/vetcare/storage"
)

const keyPrefix = "login_attempts:"

// Config holds rate limiter tuning parameters.
type Config struct {
	Enabled     bool
	MaxAttempts int
	Cooldown    time.Duration
}

// Limiter enforces a per-email failed-login budget using counters in the
// client storage capability.
type Limiter struct {
	backend storage.Store
	config  Config
	now     func() time.Time
}

type window struct {
	Count   int   `json:"count"`
	ResetAt int64 `json:"resetAt"`
}

// New creates a login attempt [Limiter] backed by the given store.
func New(backend storage.Store, cfg Config) *Limiter {
	return &Limiter{
		backend: backend,
		config:  cfg,
		now:     time.Now,
	}
}

// WithClock overrides the limiter clock. Test hook.
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

func attemptKey(email string) string {
	return keyPrefix + strings.ToLower(strings.TrimSpace(email))
}

// Check reports whether the email is within its login attempt budget.
// Returns ErrRateLimited when the budget is exhausted and the cooldown
// window is still open.
func (l *Limiter) Check(ctx context.Context, email string) error {
	if !l.config.Enabled {
		return nil
	}

	w, err := l.load(ctx, email)
	if err != nil || w == nil {
		return err
	}

	if l.now().Unix() >= w.ResetAt {
		return nil
	}
	if w.Count >= l.config.MaxAttempts {
		return ErrRateLimited
	}
	return nil
}

// Fail records a failed login attempt. The first failure in a window opens
// the cooldown; an expired window starts over.
func (l *Limiter) Fail(ctx context.Context, email string) error {
	if !l.config.Enabled {
		return nil
	}

	w, err := l.load(ctx, email)
	if err != nil {
		return err
	}

	now := l.now()
	if w == nil || now.Unix() >= w.ResetAt {
		w = &window{ResetAt: now.Add(l.config.Cooldown).Unix()}
	}
	w.Count++

	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := l.backend.Set(ctx, attemptKey(email), string(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Reset clears the failed-login counter for the email. Called after a
// successful login.
func (l *Limiter) Reset(ctx context.Context, email string) error {
	if !l.config.Enabled {
		return nil
	}
	if err := l.backend.Remove(ctx, attemptKey(email)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Attempts returns the current counter for an email. Missing or expired
// windows return zero.
func (l *Limiter) Attempts(ctx context.Context, email string) (int, error) {
	if !l.config.Enabled {
		return 0, nil
	}

	w, err := l.load(ctx, email)
	if err != nil || w == nil {
		return 0, err
	}
	if l.now().Unix() >= w.ResetAt {
		return 0, nil
	}
	return w.Count, nil
}

func (l *Limiter) load(ctx context.Context, email string) (*window, error) {
	raw, err := l.backend.Get(ctx, attemptKey(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	var w window
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		// A mangled counter fails open; it only guards retry pacing.
		return nil, nil
	}
	return &w, nil
}
