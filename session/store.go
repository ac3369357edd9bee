package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/vetcare/vetcare/storage"
)

// Store persists one session at a time in a [storage.Store]. The serialized
// document under [KeyUser] is authoritative; the denormalized keys exist for
// embedders that read single fields and are repaired on load when they
// drift.
//
//	Docs: docs/session.md
type Store struct {
	backend storage.Store
	codec   *Codec
}

// NewStore creates a session store over the given backend and codec.
func NewStore(backend storage.Store, codec *Codec) *Store {
	return &Store{
		backend: backend,
		codec:   codec,
	}
}

// Save persists the session and its denormalized keys. The remember flag is
// written only when set; an unset flag removes any stale marker.
func (st *Store) Save(ctx context.Context, s *Session, remember bool) error {
	encoded, err := st.codec.Encode(s)
	if err != nil {
		return err
	}

	if err := st.backend.Set(ctx, KeyUser, encoded); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if err := st.backend.Set(ctx, KeyEmail, s.Email); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if err := st.backend.Set(ctx, KeyName, s.FirstName); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if err := st.backend.Set(ctx, KeyUserType, string(s.UserType)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	if remember {
		if err := st.backend.Set(ctx, KeyRemember, "true"); err != nil {
			return fmt.Errorf("persist session: %w", err)
		}
		return nil
	}
	if err := st.backend.Remove(ctx, KeyRemember); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Load restores the persisted session. A missing session returns (nil, nil)
// with no side effects. A corrupt payload clears every session key and
// returns [ErrCorrupt] so a bad store never yields a half-authenticated
// state. Backend failures are reported as-is.
func (st *Store) Load(ctx context.Context) (*Session, error) {
	raw, err := st.backend.Get(ctx, KeyUser)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	s, err := st.codec.Decode(raw)
	if err != nil {
		_ = st.Clear(ctx)
		return nil, err
	}

	st.heal(ctx, s)
	return s, nil
}

// heal rewrites denormalized keys that are missing or disagree with the
// serialized session. Best effort: a failed repair never fails the load.
func (st *Store) heal(ctx context.Context, s *Session) {
	if v, err := st.backend.Get(ctx, KeyEmail); err != nil || v != s.Email {
		_ = st.backend.Set(ctx, KeyEmail, s.Email)
	}
	if v, err := st.backend.Get(ctx, KeyName); err != nil || v != s.FirstName {
		_ = st.backend.Set(ctx, KeyName, s.FirstName)
	}
	if v, err := st.backend.Get(ctx, KeyUserType); err != nil || v != string(s.UserType) {
		_ = st.backend.Set(ctx, KeyUserType, string(s.UserType))
	}
}

// Remembered reports whether the stay-signed-in marker is set.
func (st *Store) Remembered(ctx context.Context) bool {
	v, err := st.backend.Get(ctx, KeyRemember)
	return err == nil && v == "true"
}

// Clear removes every session key. Clearing an empty store is a no-op.
func (st *Store) Clear(ctx context.Context) error {
	var firstErr error
	for _, key := range Keys() {
		if err := st.backend.Remove(ctx, key); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("clear session: %w", err)
		}
	}
	return firstErr
}
