package internal

import "github.com/google/uuid"

// NewRequestID returns the correlation ID attached to outbound backend
// requests as X-Request-ID.
func NewRequestID() string {
	return uuid.NewString()
}
