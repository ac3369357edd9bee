package vetcare

import (
	"context"

	"github.com/vetcare/vetcare/api"
	"github.com/vetcare/vetcare/session"
)

// Session defines a public type used by vetcare APIs.
//
// Session instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Session = session.Session

// Role identifies the authorization class of a signed-in user.
type Role = session.Role

const (
	// RoleAdmin is an exported constant or variable used by the storefront client.
	RoleAdmin = session.RoleAdmin
	// RoleCustomer is an exported constant or variable used by the storefront client.
	RoleCustomer = session.RoleCustomer
)

// UserDirectory is the backend capability the authorization manager needs:
// exact-email lookup and user creation. [api.Client] satisfies it.
type UserDirectory interface {
	FindUserByEmail(ctx context.Context, email string) (*api.User, error)
	CreateUser(ctx context.Context, u api.User) (*api.User, error)
}

// LoginResult defines a public type used by vetcare APIs.
//
// LoginResult instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LoginResult struct {
	Success bool
	Session *Session
	Message string

	// Err classifies the failure for programmatic callers: one of
	// ErrValidation, ErrInvalidCredentials, ErrLoginRateLimited, or
	// ErrRemoteUnavailable. Message stays the only user-facing text.
	Err error
}

// RegisterResult defines a public type used by vetcare APIs.
//
// RegisterResult instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RegisterResult struct {
	Success bool
	Session *Session
	Message string

	// Err classifies the failure: one of ErrValidation, ErrEmailTaken, or
	// ErrRemoteUnavailable.
	Err error
}

// RegistrationProfile carries the sign-up form fields. Every field except
// the role is caller-provided; the role is always customer.
type RegistrationProfile struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
	AcceptedTerms   bool
}

// Notifier receives user-facing messages. Level is "success" or "error".
type Notifier interface {
	Notify(message, level string)
}

// NoOpNotifier discards every message.
type NoOpNotifier struct{}

// Notify implements [Notifier].
func (NoOpNotifier) Notify(string, string) {}

// History mirrors the host environment's navigation history. Push records
// a new entry; Replace rewrites the current one.
type History interface {
	Push(path string)
	Replace(path string)
}

// NoOpHistory discards history updates.
type NoOpHistory struct{}

// Push implements [History].
func (NoOpHistory) Push(string) {}

// Replace implements [History].
func (NoOpHistory) Replace(string) {}

// ViewSource fetches page content for a route target.
type ViewSource interface {
	Load(ctx context.Context, target string) (string, error)
}
