package rate

import "errors"

var (
	// ErrRateLimited is an exported constant or variable used by the storefront client.
	ErrRateLimited = errors.New("rate limited")
	// ErrStorageUnavailable is an exported constant or variable used by the storefront client.
	ErrStorageUnavailable = errors.New("rate limit storage unavailable")
)
