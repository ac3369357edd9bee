package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when the requested key holds no value.
	ErrNotFound = errors.New("storage key not found")
	// ErrUnavailable is returned when the backing store cannot be reached.
	ErrUnavailable = errors.New("storage backend unavailable")
)

// Store is the persisted key-value capability. Values are opaque strings;
// callers own serialization. Implementations must be safe for concurrent use.
//
// Get returns ErrNotFound when the key holds no value. Remove of a missing
// key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
