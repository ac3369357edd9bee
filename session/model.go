package session

import (
	"strings"
	"time"
)

// Role identifies the authorization class of a signed-in user.
type Role string

const (
	// RoleAdmin is the clinic staff role with access to the admin surfaces.
	RoleAdmin Role = "admin"
	// RoleCustomer is the storefront customer role.
	RoleCustomer Role = "customer"
)

// Valid reports whether the role is one of the known authorization classes.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

// ParseRole normalizes a stored role string. Unknown values map to
// RoleCustomer so a stale store never grants elevated access.
func ParseRole(s string) Role {
	if Role(strings.ToLower(strings.TrimSpace(s))) == RoleAdmin {
		return RoleAdmin
	}
	return RoleCustomer
}

// Session defines a public type used by vetcare APIs.
//
// Session instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Session struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`

	UserType Role `json:"userType"`

	LoginTime        time.Time `json:"loginTime"`
	RegistrationDate string    `json:"registrationDate,omitempty"`
}

// FullName returns the display name persisted under [KeyName].
func (s *Session) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.UserType == RoleAdmin
}
