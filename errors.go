package vetcare

import (
	"errors"

	"github.com/vetcare/vetcare/session"
)

var (
	// ErrInvalidCredentials is an exported constant or variable used by the storefront client.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is an exported constant or variable used by the storefront client.
	ErrEmailTaken = errors.New("email already registered")
	// ErrValidation is an exported constant or variable used by the storefront client.
	ErrValidation = errors.New("invalid input")
	// ErrRemoteUnavailable is an exported constant or variable used by the storefront client.
	ErrRemoteUnavailable = errors.New("backend unavailable")
	// ErrSessionCorrupt is an exported constant or variable used by the storefront client.
	ErrSessionCorrupt = session.ErrCorrupt
	// ErrNotAuthenticated is an exported constant or variable used by the storefront client.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrRoleDenied is an exported constant or variable used by the storefront client.
	ErrRoleDenied = errors.New("role denied")
	// ErrRouteNotFound is an exported constant or variable used by the storefront client.
	ErrRouteNotFound = errors.New("route not found")
	// ErrNavigationSuperseded is an exported constant or variable used by the storefront client.
	ErrNavigationSuperseded = errors.New("navigation superseded by a newer one")
	// ErrViewUnavailable is an exported constant or variable used by the storefront client.
	ErrViewUnavailable = errors.New("view could not be loaded")
	// ErrLoginRateLimited is an exported constant or variable used by the storefront client.
	ErrLoginRateLimited = errors.New("login rate limited")
	// ErrClientClosed is an exported constant or variable used by the storefront client.
	ErrClientClosed = errors.New("client closed")
)
