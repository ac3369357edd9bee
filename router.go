package vetcare

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// NavigationAction defines a public type used by vetcare APIs.
//
// NavigationAction instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type NavigationAction uint8

const (
	// ActionLoadView is an exported constant or variable used by the storefront client.
	ActionLoadView NavigationAction = iota
	// ActionRedirectLogin is an exported constant or variable used by the storefront client.
	ActionRedirectLogin
	// ActionAccessDenied is an exported constant or variable used by the storefront client.
	ActionAccessDenied
	// ActionAPITarget is an exported constant or variable used by the storefront client.
	ActionAPITarget
)

// Navigation is the outcome of one routing decision. Exactly one of the
// action-specific fields is meaningful, selected by Action.
type Navigation struct {
	Path   string
	Action NavigationAction

	// ActionLoadView
	Content string
	Title   string

	// ActionRedirectLogin and ActionAccessDenied
	RedirectTo    string
	RedirectAfter time.Duration

	// ActionAPITarget
	APIURL string

	// Reason classifies a guard or fallback outcome for programmatic
	// callers: ErrRouteNotFound when an unknown path degraded to the
	// fallback route, ErrNotAuthenticated on a login redirect,
	// ErrRoleDenied on an access denial. Nil on a plainly loaded view.
	Reason error
}

// NavigateOptions defines a public type used by vetcare APIs.
//
// NavigateOptions instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type NavigateOptions struct {
	Replace bool
}

// Router resolves paths to views, enforces session and role guards, and
// mirrors successful page loads into the navigation history.
//
//	Docs: docs/router.md
type Router struct {
	cfg      RouterConfig
	apiBase  string
	auth     *Auth
	views    ViewSource
	history  History
	notifier Notifier
	audit    *auditDispatcher
	metrics  *Metrics
	clock    func() time.Time

	routes map[string]RouteEntry
	seq    atomic.Uint64

	mu      sync.RWMutex
	current string
}

func newRouter(cfg Config, auth *Auth, views ViewSource, history History, notifier Notifier, audit *auditDispatcher, metrics *Metrics) *Router {
	routes := make(map[string]RouteEntry, len(cfg.Router.Routes))
	for _, r := range cfg.Router.Routes {
		routes[r.Path] = r
	}

	return &Router{
		cfg:      cfg.Router,
		apiBase:  cfg.API.Endpoint,
		auth:     auth,
		views:    views,
		history:  history,
		notifier: notifier,
		audit:    audit,
		metrics:  metrics,
		clock:    time.Now,
		routes:   routes,
	}
}

// Navigate resolves path and returns the resulting navigation. Guard order
// is fixed: authentication before role, so an anonymous caller learns only
// that sign-in is required, never whether the role would have passed.
//
// Unknown paths fall back to the configured fallback route. When a newer
// Navigate call starts before this one finishes its view load, this one
// returns [ErrNavigationSuperseded] and leaves history and the current
// route untouched.
//
//	Docs: docs/router.md
func (r *Router) Navigate(ctx context.Context, path string, opts NavigateOptions) (*Navigation, error) {
	seq := r.seq.Add(1)
	start := r.clock()

	var reason error

	route, ok := r.routes[path]
	if !ok {
		r.metrics.Inc(MetricRouteUnknown)
		r.emit(ctx, AuditEvent{EventType: AuditNavigate, Route: path, Error: ErrRouteNotFound.Error()})
		reason = ErrRouteNotFound
		path = r.cfg.FallbackRoute
		route = r.routes[path]
	}

	if route.Kind == KindAPI {
		r.metrics.Inc(MetricAPIResolved)
		return &Navigation{
			Path:   path,
			Action: ActionAPITarget,
			APIURL: r.apiBase + route.Target,
		}, nil
	}

	if route.Protected {
		if !r.auth.IsAuthenticated() {
			r.metrics.Inc(MetricRouteLoginRedirect)
			r.emit(ctx, AuditEvent{EventType: AuditNavigate, Route: path, Error: "not authenticated"})
			return &Navigation{
				Path:       path,
				Action:     ActionRedirectLogin,
				RedirectTo: r.cfg.LoginRoute,
				Reason:     ErrNotAuthenticated,
			}, nil
		}

		if route.Role != "" && !r.hasRole(route.Role) {
			r.notifier.Notify(MsgAccessDenied, "error")
			r.metrics.Inc(MetricRouteAccessDenied)
			r.emit(ctx, AuditEvent{
				EventType: AuditAccessDenied,
				Email:     r.currentEmail(),
				Route:     path,
			})
			return &Navigation{
				Path:          path,
				Action:        ActionAccessDenied,
				RedirectTo:    r.roleHome(),
				RedirectAfter: r.cfg.AccessDeniedDelay,
				Reason:        ErrRoleDenied,
			}, nil
		}
	}

	content, err := r.loadView(ctx, route)
	if err != nil {
		if path == r.cfg.FallbackRoute {
			return nil, err
		}
		// Mirror the 404 behavior: a page that will not load lands on the
		// fallback route instead of a dead end.
		path = r.cfg.FallbackRoute
		route = r.routes[path]
		content, err = r.loadView(ctx, route)
		if err != nil {
			return nil, err
		}
	}

	if r.seq.Load() != seq {
		r.metrics.Inc(MetricRouteSuperseded)
		return nil, ErrNavigationSuperseded
	}

	if opts.Replace {
		r.history.Replace(path)
	} else {
		r.history.Push(path)
	}

	r.mu.Lock()
	r.current = path
	r.mu.Unlock()

	r.metrics.Inc(MetricRouteView)
	r.metrics.Observe(MetricNavigateLatency, r.clock().Sub(start))
	r.emit(ctx, AuditEvent{EventType: AuditNavigate, Route: path, Success: true})

	title := route.Title
	if title == "" {
		title = r.cfg.DefaultTitle
	}

	return &Navigation{
		Path:    path,
		Action:  ActionLoadView,
		Content: content,
		Title:   title,
		Reason:  reason,
	}, nil
}

// HandleInitialRoute resolves the path the client starts on. An already
// authenticated user landing on the root is sent to the home route of
// their role; everything else resolves like a normal replace navigation.
func (r *Router) HandleInitialRoute(ctx context.Context, path string) (*Navigation, error) {
	if path == "" {
		path = r.cfg.FallbackRoute
	}

	if (path == r.cfg.FallbackRoute || path == "/index.html") && r.auth.IsAuthenticated() {
		return r.Navigate(ctx, r.roleHome(), NavigateOptions{Replace: true})
	}
	return r.Navigate(ctx, path, NavigateOptions{Replace: true})
}

// CurrentRoute returns the last successfully loaded route path.
func (r *Router) CurrentRoute() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// IsCurrentRouteProtected reports whether the current route carries a guard.
func (r *Router) IsCurrentRouteProtected() bool {
	r.mu.RLock()
	path := r.current
	r.mu.RUnlock()

	route, ok := r.routes[path]
	return ok && route.Protected
}

// Routes returns a copy of the route table.
func (r *Router) Routes() []RouteEntry {
	out := make([]RouteEntry, 0, len(r.routes))
	for _, route := range r.routes {
		out = append(out, route)
	}
	return out
}

// ProtectedRoutes returns the paths that require authentication.
func (r *Router) ProtectedRoutes() []string {
	out := make([]string, 0, len(r.routes))
	for path, route := range r.routes {
		if route.Protected {
			out = append(out, path)
		}
	}
	return out
}

// AdminRoutes returns the paths reserved for administrator sessions.
func (r *Router) AdminRoutes() []string {
	return r.routesForRole(RoleAdmin)
}

// CustomerRoutes returns the paths reserved for customer sessions.
func (r *Router) CustomerRoutes() []string {
	return r.routesForRole(RoleCustomer)
}

func (r *Router) routesForRole(role Role) []string {
	out := make([]string, 0, len(r.routes))
	for path, route := range r.routes {
		if route.Protected && route.Role == role {
			out = append(out, path)
		}
	}
	return out
}

func (r *Router) loadView(ctx context.Context, route RouteEntry) (string, error) {
	content, err := r.views.Load(ctx, r.cfg.ViewBaseURL+route.Target)
	if err != nil {
		r.metrics.Inc(MetricViewLoadFailure)
		r.emit(ctx, AuditEvent{EventType: AuditNavigate, Route: route.Path, Error: err.Error()})
		return "", fmt.Errorf("%w: %v", ErrViewUnavailable, err)
	}
	return content, nil
}

func (r *Router) hasRole(role Role) bool {
	switch role {
	case RoleAdmin:
		return r.auth.IsAdmin()
	case RoleCustomer:
		return r.auth.IsCustomer()
	default:
		return false
	}
}

// roleHome picks the dashboard for the active session's role. Anonymous
// callers never reach this; guarded paths redirect to login first.
func (r *Router) roleHome() string {
	if r.auth.IsAdmin() {
		return r.cfg.AdminHome
	}
	return r.cfg.CustomerHome
}

func (r *Router) currentEmail() string {
	if s := r.auth.CurrentUser(); s != nil {
		return s.Email
	}
	return ""
}

func (r *Router) emit(ctx context.Context, event AuditEvent) {
	if r.audit == nil {
		return
	}
	event.Timestamp = r.clock()
	r.audit.Emit(ctx, event)
}
