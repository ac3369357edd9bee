package vetcare

import (
	"errors"
	"fmt"
	"time"

	"github.com/vetcare/vetcare/cart"
	"github.com/vetcare/vetcare/session"
)

// Config defines a public type used by vetcare APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	API         APIConfig
	Session     SessionConfig
	Router      RouterConfig
	AdminAccess AdminAccessConfig
	Security    SecurityConfig
	Cart        CartConfig
	Audit       AuditConfig
	Metrics     MetricsConfig
}

/*
====================================
API CONFIG
====================================
*/

// APIConfig defines a public type used by vetcare APIs.
//
// APIConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type APIConfig struct {
	Endpoint string
	Timeout  time.Duration
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by vetcare APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	Encoding   string // "json" (default) or "signed"
	SigningKey []byte
}

/*
====================================
ROUTER CONFIG
====================================
*/

// RouteKind defines a public type used by vetcare APIs.
//
// RouteKind instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RouteKind string

const (
	// KindPage is an exported constant or variable used by the storefront client.
	KindPage RouteKind = "page"
	// KindAPI is an exported constant or variable used by the storefront client.
	KindAPI RouteKind = "api"
)

// RouteEntry defines a public type used by vetcare APIs.
//
// RouteEntry instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RouteEntry struct {
	Path      string
	Target    string
	Kind      RouteKind
	Protected bool
	Role      Role // empty means any authenticated user
	Title     string
}

// RouterConfig defines a public type used by vetcare APIs.
//
// RouterConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RouterConfig struct {
	FallbackRoute     string
	LoginRoute        string
	AdminHome         string
	CustomerHome      string
	AccessDeniedDelay time.Duration
	ViewBaseURL       string
	DefaultTitle      string
	Routes            []RouteEntry
}

/*
====================================
ADMIN ACCESS CONFIG
====================================
*/

// AdminCredential defines a public type used by vetcare APIs.
//
// AdminCredential instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AdminCredential struct {
	Email    string
	Password string
}

// AdminAccessConfig holds the built-in staff allow-list. Matching
// credentials sign in without any backend call. Must be disabled in
// production; Validate enforces that.
type AdminAccessConfig struct {
	Enabled          bool
	Credentials      []AdminCredential
	DisplayFirstName string
	DisplayLastName  string
}

/*
====================================
SECURITY CONFIG
====================================
*/

// SecurityConfig defines a public type used by vetcare APIs.
//
// SecurityConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SecurityConfig struct {
	ProductionMode      bool
	EnableLoginThrottle bool
	MaxLoginAttempts    int
	LoginCooldown       time.Duration
}

/*
====================================
CART CONFIG
====================================
*/

// CartConfig defines a public type used by vetcare APIs.
//
// CartConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CartConfig struct {
	StorageKey       string
	ShippingFlatRate float64
}

// AuditConfig defines a public type used by vetcare APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by vetcare APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

func defaultRoutes() []RouteEntry {
	return []RouteEntry{
		{Path: "/", Target: "/index.html", Kind: KindPage, Title: "VetCare - Veterinary Management System"},
		{Path: "/login", Target: "/src/views/login.html", Kind: KindPage, Title: "Login - VetCare"},
		{Path: "/register", Target: "/src/views/register.html", Kind: KindPage, Title: "Register - VetCare"},

		{Path: "/dashboard", Target: "/src/views/dashboard.html", Kind: KindPage, Protected: true, Role: RoleAdmin, Title: "Admin Dashboard - VetCare"},
		{Path: "/dashboard-customer", Target: "/src/views/dashboardCustomer.html", Kind: KindPage, Protected: true, Role: RoleCustomer, Title: "Customer Dashboard - VetCare"},
		{Path: "/admin", Target: "/src/views/dashboard.html", Kind: KindPage, Protected: true, Role: RoleAdmin, Title: "Admin Dashboard - VetCare"},
		{Path: "/customer", Target: "/src/views/dashboardCustomer.html", Kind: KindPage, Protected: true, Role: RoleCustomer, Title: "Customer Dashboard - VetCare"},

		{Path: "/api/users", Target: "/users", Kind: KindAPI},
		{Path: "/api/pets", Target: "/pets", Kind: KindAPI},
		{Path: "/api/products", Target: "/products", Kind: KindAPI},
		{Path: "/api/appointments", Target: "/appointments", Kind: KindAPI},
	}
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig may return an error when input validation, dependency calls, or security checks fail.
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			Endpoint: "http://localhost:3000",
			Timeout:  10 * time.Second,
		},
		Session: SessionConfig{
			Encoding: session.EncodingJSON,
		},
		Router: RouterConfig{
			FallbackRoute:     "/",
			LoginRoute:        "/login",
			AdminHome:         "/dashboard",
			CustomerHome:      "/dashboard-customer",
			AccessDeniedDelay: 2 * time.Second,
			DefaultTitle:      "VetCare",
			Routes:            defaultRoutes(),
		},
		AdminAccess: AdminAccessConfig{
			Enabled: true,
			Credentials: []AdminCredential{
				{Email: "admin@vetcare.com", Password: "admin123"},
				{Email: "administrador@vetcare.com", Password: "admin123"},
				{Email: "vet@vetcare.com", Password: "vet123"},
			},
			DisplayFirstName: "Administrator",
			DisplayLastName:  "VetCare",
		},
		Security: SecurityConfig{
			ProductionMode:      false,
			EnableLoginThrottle: false,
			MaxLoginAttempts:    5,
			LoginCooldown:       15 * time.Minute,
		},
		Cart: CartConfig{
			StorageKey:       cart.DefaultStorageKey,
			ShippingFlatRate: cart.DefaultShippingFlatRate,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Session.SigningKey = cloneBytes(cfg.Session.SigningKey)
	if cfg.Router.Routes != nil {
		out.Router.Routes = make([]RouteEntry, len(cfg.Router.Routes))
		copy(out.Router.Routes, cfg.Router.Routes)
	}
	if cfg.AdminAccess.Credentials != nil {
		out.AdminAccess.Credentials = make([]AdminCredential, len(cfg.AdminAccess.Credentials))
		copy(out.AdminAccess.Credentials, cfg.AdminAccess.Credentials)
	}
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// API
	if c.API.Endpoint == "" {
		return errors.New("API Endpoint must be set")
	}
	if c.API.Timeout <= 0 {
		return errors.New("API Timeout must be > 0")
	}

	// Session
	if c.Session.Encoding != session.EncodingJSON && c.Session.Encoding != session.EncodingSigned {
		return errors.New("Session Encoding must be 'json' or 'signed'")
	}
	if c.Session.Encoding == session.EncodingSigned && len(c.Session.SigningKey) == 0 {
		return errors.New("Session Encoding 'signed' requires SigningKey")
	}

	// Router
	if len(c.Router.Routes) == 0 {
		return errors.New("Router Routes must not be empty")
	}
	if c.Router.AccessDeniedDelay < 0 {
		return errors.New("Router AccessDeniedDelay must be >= 0")
	}

	seen := make(map[string]struct{}, len(c.Router.Routes))
	for _, r := range c.Router.Routes {
		if r.Path == "" {
			return errors.New("Router route with empty path")
		}
		if _, dup := seen[r.Path]; dup {
			return fmt.Errorf("Router duplicate route %q", r.Path)
		}
		seen[r.Path] = struct{}{}

		if r.Kind != KindPage && r.Kind != KindAPI {
			return fmt.Errorf("Router route %q has invalid kind %q", r.Path, r.Kind)
		}
		if r.Target == "" {
			return fmt.Errorf("Router route %q has no target", r.Path)
		}
		if r.Role != "" && !r.Role.Valid() {
			return fmt.Errorf("Router route %q has invalid role %q", r.Path, r.Role)
		}
		if r.Kind == KindAPI && r.Protected {
			return fmt.Errorf("Router route %q: api routes carry no guard state", r.Path)
		}
	}

	for name, path := range map[string]string{
		"FallbackRoute": c.Router.FallbackRoute,
		"LoginRoute":    c.Router.LoginRoute,
		"AdminHome":     c.Router.AdminHome,
		"CustomerHome":  c.Router.CustomerHome,
	} {
		if path == "" {
			return fmt.Errorf("Router %s must be set", name)
		}
		if _, ok := seen[path]; !ok {
			return fmt.Errorf("Router %s %q is not a registered route", name, path)
		}
	}

	// AdminAccess
	if c.AdminAccess.Enabled {
		if c.Security.ProductionMode {
			return errors.New("AdminAccess must be disabled when ProductionMode is true")
		}
		if len(c.AdminAccess.Credentials) == 0 {
			return errors.New("AdminAccess enabled with no credentials")
		}
		for _, cred := range c.AdminAccess.Credentials {
			if cred.Email == "" || cred.Password == "" {
				return errors.New("AdminAccess credential with empty email or password")
			}
		}
	}

	// Security
	if c.Security.EnableLoginThrottle {
		if c.Security.MaxLoginAttempts <= 0 {
			return errors.New("Security MaxLoginAttempts must be > 0 when throttling is enabled")
		}
		if c.Security.LoginCooldown <= 0 {
			return errors.New("Security LoginCooldown must be > 0 when throttling is enabled")
		}
	}

	// Cart
	if c.Cart.StorageKey == "" {
		return errors.New("Cart StorageKey must be set")
	}
	if c.Cart.ShippingFlatRate < 0 {
		return errors.New("Cart ShippingFlatRate must be >= 0")
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when audit is enabled")
	}

	return nil
}
