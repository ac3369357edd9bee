package vetcare

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/vetcare/vetcare/api"
	"github.com/vetcare/vetcare/internal/rate"
	"github.com/vetcare/vetcare/session"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Auth is the session and authorization manager. It owns the current
// session, the login and registration flows, and the built-in staff
// allow-list.
//
//	Docs: docs/auth.md
type Auth struct {
	cfg      Config
	users    UserDirectory
	sessions *session.Store
	limiter  *rate.Limiter
	audit    *auditDispatcher
	metrics  *Metrics
	clock    func() time.Time

	mu      sync.RWMutex
	current *Session
}

func newAuth(cfg Config, users UserDirectory, sessions *session.Store, limiter *rate.Limiter, audit *auditDispatcher, metrics *Metrics) *Auth {
	return &Auth{
		cfg:      cfg,
		users:    users,
		sessions: sessions,
		limiter:  limiter,
		audit:    audit,
		metrics:  metrics,
		clock:    time.Now,
	}
}

// ValidateEmail reports whether the address has the shape the sign-up and
// sign-in forms accept.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePassword reports whether the password meets the minimum length.
func ValidatePassword(password string) bool {
	return len(password) >= 6
}

// Login describes the login operation and its observable behavior.
//
// The staff allow-list is consulted first and a match never touches the
// backend. All credential failures share one message so callers cannot
// distinguish a wrong password from an unknown email; the audit stream
// carries the distinct reason.
//
//	Docs: docs/auth.md
func (a *Auth) Login(ctx context.Context, email, password string, remember bool) LoginResult {
	if strings.TrimSpace(email) == "" || password == "" {
		return LoginResult{Message: MsgCompleteAllFields, Err: ErrValidation}
	}
	if !ValidateEmail(email) {
		return LoginResult{Message: MsgInvalidEmail, Err: ErrValidation}
	}

	// Limiter storage trouble never blocks login; only an exhausted budget does.
	if err := a.limiter.Check(ctx, email); errors.Is(err, rate.ErrRateLimited) {
		a.metrics.Inc(MetricLoginRateLimited)
		a.emit(ctx, AuditEvent{EventType: AuditLogin, Email: email, Error: "rate limited"})
		return LoginResult{Message: MsgLoginRateLimited, Err: ErrLoginRateLimited}
	}

	if cred, ok := a.matchAdmin(email, password); ok {
		s := &Session{
			Email:     cred.Email,
			FirstName: a.cfg.AdminAccess.DisplayFirstName,
			LastName:  a.cfg.AdminAccess.DisplayLastName,
			UserType:  RoleAdmin,
			LoginTime: a.clock(),
		}
		if err := a.SetSession(ctx, s, remember); err != nil {
			a.metrics.Inc(MetricRemoteError)
			a.emit(ctx, AuditEvent{EventType: AuditLogin, Email: email, Error: err.Error()})
			return LoginResult{Message: MsgLoginError, Err: fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)}
		}
		_ = a.limiter.Reset(ctx, email)
		a.metrics.Inc(MetricLoginSuccess)
		a.metrics.Inc(MetricLoginAdminFallback)
		a.emit(ctx, AuditEvent{EventType: AuditLoginFallback, Email: cred.Email, Success: true})
		return LoginResult{Success: true, Session: a.CurrentUser(), Message: MsgWelcomeAdmin}
	}

	user, err := a.users.FindUserByEmail(ctx, email)
	if err != nil {
		a.metrics.Inc(MetricRemoteError)
		a.emit(ctx, AuditEvent{EventType: AuditLogin, Email: email, Error: err.Error()})
		return LoginResult{Message: MsgLoginError, Err: fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)}
	}

	if user == nil || user.Password != password {
		_ = a.limiter.Fail(ctx, email)
		a.metrics.Inc(MetricLoginFailure)
		reason := "password mismatch"
		if user == nil {
			reason = "unknown email"
		}
		a.emit(ctx, AuditEvent{EventType: AuditLogin, Email: email, Error: reason})
		return LoginResult{Message: MsgInvalidCredentials, Err: ErrInvalidCredentials}
	}

	s := sessionFromUser(user, a.clock())
	if err := a.SetSession(ctx, s, remember); err != nil {
		a.metrics.Inc(MetricRemoteError)
		a.emit(ctx, AuditEvent{EventType: AuditLogin, Email: email, Error: err.Error()})
		return LoginResult{Message: MsgLoginError, Err: fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)}
	}

	_ = a.limiter.Reset(ctx, email)
	a.metrics.Inc(MetricLoginSuccess)
	a.emit(ctx, AuditEvent{EventType: AuditLogin, Email: user.Email, Success: true})
	return LoginResult{Success: true, Session: a.CurrentUser(), Message: MsgWelcomeCustomer}
}

// Register describes the register operation and its observable behavior.
//
// Validation mirrors the sign-up form: all fields required, matching
// passwords, minimum password length, accepted terms, well-formed email.
// A successful registration signs the new customer in immediately.
//
//	Docs: docs/auth.md
func (a *Auth) Register(ctx context.Context, p RegistrationProfile) RegisterResult {
	if msg := validateProfile(p); msg != "" {
		return RegisterResult{Message: msg, Err: ErrValidation}
	}

	existing, err := a.users.FindUserByEmail(ctx, p.Email)
	if err != nil {
		a.metrics.Inc(MetricRemoteError)
		a.emit(ctx, AuditEvent{EventType: AuditRegister, Email: p.Email, Error: err.Error()})
		return RegisterResult{Message: MsgRegisterError, Err: fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)}
	}
	if existing != nil {
		a.metrics.Inc(MetricRegisterDuplicate)
		a.emit(ctx, AuditEvent{EventType: AuditRegister, Email: p.Email, Error: "email taken"})
		return RegisterResult{Message: MsgEmailTaken, Err: ErrEmailTaken}
	}

	created, err := a.users.CreateUser(ctx, api.User{
		Email:            p.Email,
		Password:         p.Password,
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		Phone:            p.Phone,
		UserType:         string(RoleCustomer),
		RegistrationDate: a.clock().UTC().Format(time.RFC3339),
	})
	if err != nil {
		a.metrics.Inc(MetricRegisterFailure)
		a.emit(ctx, AuditEvent{EventType: AuditRegister, Email: p.Email, Error: err.Error()})
		return RegisterResult{Message: MsgRegisterError, Err: fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)}
	}

	s := sessionFromUser(created, a.clock())
	if err := a.SetSession(ctx, s, false); err != nil {
		a.metrics.Inc(MetricRegisterFailure)
		a.emit(ctx, AuditEvent{EventType: AuditRegister, Email: p.Email, Error: err.Error()})
		return RegisterResult{Message: MsgRegisterError, Err: fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)}
	}

	a.metrics.Inc(MetricRegisterSuccess)
	a.emit(ctx, AuditEvent{EventType: AuditRegister, Email: created.Email, Success: true})
	return RegisterResult{Success: true, Session: a.CurrentUser(), Message: MsgRegisterSuccess}
}

func validateProfile(p RegistrationProfile) string {
	if strings.TrimSpace(p.FirstName) == "" ||
		strings.TrimSpace(p.LastName) == "" ||
		strings.TrimSpace(p.Email) == "" ||
		strings.TrimSpace(p.Phone) == "" ||
		p.Password == "" || p.ConfirmPassword == "" {
		return MsgCompleteAllFields
	}
	if p.Password != p.ConfirmPassword {
		return MsgPasswordsDoNotMatch
	}
	if !ValidatePassword(p.Password) {
		return MsgPasswordTooShort
	}
	if !p.AcceptedTerms {
		return MsgAcceptTerms
	}
	if !ValidateEmail(p.Email) {
		return MsgInvalidEmail
	}
	return ""
}

// CheckSession restores the persisted session, if any. A missing session
// returns (nil, nil). A corrupt store is cleared and reported as
// [ErrSessionCorrupt]; the client stays signed out.
//
//	Docs: docs/auth.md
func (a *Auth) CheckSession(ctx context.Context) (*Session, error) {
	s, err := a.sessions.Load(ctx)
	if err != nil {
		if errors.Is(err, session.ErrCorrupt) {
			a.setCurrent(nil)
			a.metrics.Inc(MetricSessionCorrupt)
			a.emit(ctx, AuditEvent{EventType: AuditSessionRestore, Error: "corrupt payload"})
			return nil, ErrSessionCorrupt
		}
		return nil, err
	}
	if s == nil {
		a.setCurrent(nil)
		return nil, nil
	}

	a.setCurrent(s)
	a.metrics.Inc(MetricSessionRestored)
	a.emit(ctx, AuditEvent{EventType: AuditSessionRestore, Email: s.Email, Success: true})
	return a.CurrentUser(), nil
}

// Logout clears the persisted session and the in-memory state. Logging
// out while signed out is a no-op.
func (a *Auth) Logout(ctx context.Context) error {
	a.mu.Lock()
	email := ""
	if a.current != nil {
		email = a.current.Email
	}
	a.current = nil
	a.mu.Unlock()

	if err := a.sessions.Clear(ctx); err != nil {
		return err
	}

	a.metrics.Inc(MetricLogout)
	a.emit(ctx, AuditEvent{EventType: AuditLogout, Email: email, Success: true})
	return nil
}

// CurrentUser returns a copy of the signed-in session, or nil.
func (a *Auth) CurrentUser() *Session {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.current == nil {
		return nil
	}
	s := *a.current
	return &s
}

// IsAuthenticated reports whether a session is active.
func (a *Auth) IsAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current != nil
}

// IsAdmin reports whether the active session carries the admin role.
func (a *Auth) IsAdmin() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current != nil && a.current.UserType == RoleAdmin
}

// IsCustomer reports whether the active session carries the customer role.
func (a *Auth) IsCustomer() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current != nil && a.current.UserType == RoleCustomer
}

// Remembered reports whether the stay-signed-in marker is set.
func (a *Auth) Remembered(ctx context.Context) bool {
	return a.sessions.Remembered(ctx)
}

func (a *Auth) matchAdmin(email, password string) (AdminCredential, bool) {
	if !a.cfg.AdminAccess.Enabled {
		return AdminCredential{}, false
	}
	for _, cred := range a.cfg.AdminAccess.Credentials {
		if strings.EqualFold(cred.Email, email) && cred.Password == password {
			return cred, true
		}
	}
	return AdminCredential{}, false
}

// SetSession describes the setsession operation and its observable behavior.
//
// SetSession may return an error when input validation, dependency calls, or security checks fail.
// SetSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Every transition into the authenticated state goes through here; it is the
// single writer of the session and its denormalized storage keys.
//
//	Docs: docs/auth.md
func (a *Auth) SetSession(ctx context.Context, s *Session, remember bool) error {
	if s == nil {
		return fmt.Errorf("%w: nil session", ErrSessionCorrupt)
	}
	if err := a.sessions.Save(ctx, s, remember); err != nil {
		return err
	}
	a.setCurrent(s)
	return nil
}

func (a *Auth) setCurrent(s *Session) {
	a.mu.Lock()
	a.current = s
	a.mu.Unlock()
}

func (a *Auth) emit(ctx context.Context, event AuditEvent) {
	if a.audit == nil {
		return
	}
	event.Timestamp = a.clock()
	a.audit.Emit(ctx, event)
}

func sessionFromUser(u *api.User, now time.Time) *Session {
	return &Session{
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Phone:            u.Phone,
		UserType:         session.ParseRole(u.UserType),
		LoginTime:        now,
		RegistrationDate: u.RegistrationDate,
	}
}
