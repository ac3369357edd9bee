// Package storage defines the persisted key-value capability used for
// session state and cart contents, together with memory, file, and Redis
// backed implementations.
package storage
