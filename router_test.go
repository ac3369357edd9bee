package vetcare

import (
	"context"
	"errors"
	"testing"
	"time"
)

func loginAdmin(t *testing.T, f *testFixture) {
	t.Helper()
	if res := f.client.Auth.Login(context.Background(), "admin@vetcare.com", "admin123", false); !res.Success {
		t.Fatalf("admin login failed: %v", res.Message)
	}
}

func loginCustomer(t *testing.T, f *testFixture) {
	t.Helper()
	seedCustomer(f, "ana@example.com", "secret1")
	if res := f.client.Auth.Login(context.Background(), "ana@example.com", "secret1", false); !res.Success {
		t.Fatalf("customer login failed: %v", res.Message)
	}
}

func TestNavigatePublicRouteLoadsView(t *testing.T) {
	f := newTestClient(t, nil)

	nav, err := f.client.Router.Navigate(context.Background(), "/login", NavigateOptions{})
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if nav.Action != ActionLoadView {
		t.Fatalf("expected ActionLoadView, got %v", nav.Action)
	}
	if nav.Content != "<html>login</html>" {
		t.Fatalf("unexpected content %q", nav.Content)
	}
	if nav.Title != "Login - VetCare" {
		t.Fatalf("unexpected title %q", nav.Title)
	}

	pushed, replaced := f.history.entries()
	if len(pushed) != 1 || pushed[0] != "/login" || len(replaced) != 0 {
		t.Fatalf("unexpected history pushed=%v replaced=%v", pushed, replaced)
	}
	if f.client.Router.CurrentRoute() != "/login" {
		t.Fatalf("unexpected current route %q", f.client.Router.CurrentRoute())
	}
}

func TestNavigateReplaceUsesReplaceHistory(t *testing.T) {
	f := newTestClient(t, nil)

	if _, err := f.client.Router.Navigate(context.Background(), "/register", NavigateOptions{Replace: true}); err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}

	pushed, replaced := f.history.entries()
	if len(pushed) != 0 || len(replaced) != 1 || replaced[0] != "/register" {
		t.Fatalf("unexpected history pushed=%v replaced=%v", pushed, replaced)
	}
}

func TestNavigateUnknownPathFallsBack(t *testing.T) {
	f := newTestClient(t, nil)

	nav, err := f.client.Router.Navigate(context.Background(), "/no-such-page", NavigateOptions{})
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if nav.Path != "/" || nav.Content != "<html>home</html>" {
		t.Fatalf("expected fallback route, got path %q content %q", nav.Path, nav.Content)
	}
	if !errors.Is(nav.Reason, ErrRouteNotFound) {
		t.Fatalf("expected ErrRouteNotFound reason, got %v", nav.Reason)
	}

	snap := f.client.MetricsSnapshot()
	if snap.Counters[MetricRouteUnknown] != 1 {
		t.Fatalf("expected one unknown-route count, got %d", snap.Counters[MetricRouteUnknown])
	}
}

func TestNavigateProtectedWithoutSessionRedirectsToLogin(t *testing.T) {
	f := newTestClient(t, nil)

	nav, err := f.client.Router.Navigate(context.Background(), "/dashboard", NavigateOptions{})
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if nav.Action != ActionRedirectLogin {
		t.Fatalf("expected ActionRedirectLogin, got %v", nav.Action)
	}
	if nav.RedirectTo != "/login" {
		t.Fatalf("expected redirect to /login, got %q", nav.RedirectTo)
	}
	if !errors.Is(nav.Reason, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated reason, got %v", nav.Reason)
	}

	// The guard fires before any role check or view load: no history entry,
	// no notification.
	pushed, replaced := f.history.entries()
	if len(pushed) != 0 || len(replaced) != 0 {
		t.Fatalf("expected no history writes, got pushed=%v replaced=%v", pushed, replaced)
	}
	if notes := f.notifier.all(); len(notes) != 0 {
		t.Fatalf("expected no notifications, got %v", notes)
	}
}

func TestNavigateWrongRoleDeniedWithRedirectHome(t *testing.T) {
	f := newTestClient(t, nil)
	loginCustomer(t, f)

	nav, err := f.client.Router.Navigate(context.Background(), "/dashboard", NavigateOptions{})
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if nav.Action != ActionAccessDenied {
		t.Fatalf("expected ActionAccessDenied, got %v", nav.Action)
	}
	if nav.RedirectTo != "/dashboard-customer" {
		t.Fatalf("expected redirect to customer home, got %q", nav.RedirectTo)
	}
	if nav.RedirectAfter != 2*time.Second {
		t.Fatalf("expected 2s redirect delay, got %v", nav.RedirectAfter)
	}
	if !errors.Is(nav.Reason, ErrRoleDenied) {
		t.Fatalf("expected ErrRoleDenied reason, got %v", nav.Reason)
	}

	notes := f.notifier.all()
	if len(notes) != 1 || notes[0] != "error: "+MsgAccessDenied {
		t.Fatalf("expected exactly one access-denied notification, got %v", notes)
	}
	if pushed, replaced := f.history.entries(); len(pushed) != 0 || len(replaced) != 0 {
		t.Fatalf("expected no history writes, got pushed=%v replaced=%v", pushed, replaced)
	}
}

func TestNavigateAdminDeniedOnCustomerRoute(t *testing.T) {
	f := newTestClient(t, nil)
	loginAdmin(t, f)

	nav, err := f.client.Router.Navigate(context.Background(), "/dashboard-customer", NavigateOptions{})
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if nav.Action != ActionAccessDenied {
		t.Fatalf("expected ActionAccessDenied, got %v", nav.Action)
	}
	if nav.RedirectTo != "/dashboard" {
		t.Fatalf("expected redirect to admin home, got %q", nav.RedirectTo)
	}
}

func TestNavigateMatchingRoleLoadsDashboard(t *testing.T) {
	f := newTestClient(t, nil)
	loginAdmin(t, f)

	nav, err := f.client.Router.Navigate(context.Background(), "/admin", NavigateOptions{})
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if nav.Action != ActionLoadView || nav.Content != "<html>admin dashboard</html>" {
		t.Fatalf("expected admin dashboard, got action %v content %q", nav.Action, nav.Content)
	}
	if nav.Title != "Admin Dashboard - VetCare" {
		t.Fatalf("unexpected title %q", nav.Title)
	}
}

func TestNavigateProtectedRouteWithoutRoleAcceptsAnySession(t *testing.T) {
	f := newTestClient(t, func(cfg *Config) {
		cfg.Router.Routes = append(cfg.Router.Routes, RouteEntry{
			Path:      "/account",
			Target:    "/src/views/login.html",
			Kind:      KindPage,
			Protected: true,
		})
	})
	loginCustomer(t, f)

	nav, err := f.client.Router.Navigate(context.Background(), "/account", NavigateOptions{})
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if nav.Action != ActionLoadView {
		t.Fatalf("expected ActionLoadView for any authenticated role, got %v", nav.Action)
	}
	if nav.Title != "VetCare" {
		t.Fatalf("expected default title, got %q", nav.Title)
	}
}

func TestNavigateAPIRouteResolvesEndpointURL(t *testing.T) {
	f := newTestClient(t, nil)

	nav, err := f.client.Router.Navigate(context.Background(), "/api/pets", NavigateOptions{})
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if nav.Action != ActionAPITarget {
		t.Fatalf("expected ActionAPITarget, got %v", nav.Action)
	}
	if nav.APIURL != "http://localhost:3000/pets" {
		t.Fatalf("unexpected API URL %q", nav.APIURL)
	}
	if pushed, replaced := f.history.entries(); len(pushed) != 0 || len(replaced) != 0 {
		t.Fatalf("expected no history writes for API routes, got pushed=%v replaced=%v", pushed, replaced)
	}
}

func TestNavigateViewLoadFailureFallsBack(t *testing.T) {
	f := newTestClient(t, func(cfg *Config) {
		cfg.Router.Routes = append(cfg.Router.Routes, RouteEntry{
			Path:   "/broken",
			Target: "/missing.html",
			Kind:   KindPage,
			Title:  "Broken",
		})
	})

	nav, err := f.client.Router.Navigate(context.Background(), "/broken", NavigateOptions{})
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if nav.Path != "/" || nav.Content != "<html>home</html>" {
		t.Fatalf("expected fallback view, got path %q content %q", nav.Path, nav.Content)
	}

	snap := f.client.MetricsSnapshot()
	if snap.Counters[MetricViewLoadFailure] != 1 {
		t.Fatalf("expected one view-load failure, got %d", snap.Counters[MetricViewLoadFailure])
	}
}

func TestNavigateFallbackLoadFailureReturnsError(t *testing.T) {
	dir := &mockDirectory{}
	client, err := New().
		WithStorage(newTestStore(t)).
		WithUsers(dir).
		WithViewSource(StaticViewSource{}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer client.Close()

	if _, err := client.Router.Navigate(context.Background(), "/login", NavigateOptions{}); !errors.Is(err, ErrViewUnavailable) {
		t.Fatalf("expected ErrViewUnavailable, got %v", err)
	}
}

type hookViews struct {
	inner  ViewSource
	onLoad func(target string)
}

func (v hookViews) Load(ctx context.Context, target string) (string, error) {
	if v.onLoad != nil {
		v.onLoad(target)
	}
	return v.inner.Load(ctx, target)
}

func TestNavigateSupersededByNewerNavigation(t *testing.T) {
	var client *Client
	fired := false

	views := hookViews{
		inner: testViews(),
		onLoad: func(target string) {
			if fired || target != "/src/views/login.html" {
				return
			}
			fired = true
			if _, err := client.Router.Navigate(context.Background(), "/register", NavigateOptions{}); err != nil {
				t.Errorf("inner Navigate failed: %v", err)
			}
		},
	}

	client = mustBuild(t, New().
		WithStorage(newTestStore(t)).
		WithUsers(&mockDirectory{}).
		WithViewSource(views).
		WithMetricsEnabled(true))

	_, err := client.Router.Navigate(context.Background(), "/login", NavigateOptions{})
	if !errors.Is(err, ErrNavigationSuperseded) {
		t.Fatalf("expected ErrNavigationSuperseded, got %v", err)
	}
	if client.Router.CurrentRoute() != "/register" {
		t.Fatalf("expected the newer navigation to win, got %q", client.Router.CurrentRoute())
	}

	snap := client.MetricsSnapshot()
	if snap.Counters[MetricRouteSuperseded] != 1 {
		t.Fatalf("expected one superseded navigation, got %d", snap.Counters[MetricRouteSuperseded])
	}
}

func TestHandleInitialRouteRedirectsActiveSessionByRole(t *testing.T) {
	f := newTestClient(t, nil)
	loginAdmin(t, f)

	nav, err := f.client.Router.HandleInitialRoute(context.Background(), "/")
	if err != nil {
		t.Fatalf("HandleInitialRoute failed: %v", err)
	}
	if nav.Path != "/dashboard" {
		t.Fatalf("expected admin home, got %q", nav.Path)
	}

	pushed, replaced := f.history.entries()
	if len(pushed) != 0 || len(replaced) != 1 || replaced[0] != "/dashboard" {
		t.Fatalf("expected one replace entry, got pushed=%v replaced=%v", pushed, replaced)
	}
}

func TestHandleInitialRouteAnonymousLoadsRequestedPath(t *testing.T) {
	f := newTestClient(t, nil)

	nav, err := f.client.Router.HandleInitialRoute(context.Background(), "/login")
	if err != nil {
		t.Fatalf("HandleInitialRoute failed: %v", err)
	}
	if nav.Path != "/login" || nav.Action != ActionLoadView {
		t.Fatalf("expected login view, got path %q action %v", nav.Path, nav.Action)
	}
}

func TestHandleInitialRouteIndexAliasRedirects(t *testing.T) {
	f := newTestClient(t, nil)
	loginCustomer(t, f)

	nav, err := f.client.Router.HandleInitialRoute(context.Background(), "/index.html")
	if err != nil {
		t.Fatalf("HandleInitialRoute failed: %v", err)
	}
	if nav.Path != "/dashboard-customer" {
		t.Fatalf("expected customer home, got %q", nav.Path)
	}
}

func TestProtectedRoutesIntrospection(t *testing.T) {
	f := newTestClient(t, nil)

	protected := f.client.Router.ProtectedRoutes()
	want := map[string]bool{
		"/dashboard":          false,
		"/admin":              false,
		"/dashboard-customer": false,
		"/customer":           false,
	}
	for _, path := range protected {
		if _, ok := want[path]; !ok {
			t.Fatalf("unexpected protected route %q", path)
		}
		want[path] = true
	}
	for path, seen := range want {
		if !seen {
			t.Fatalf("missing protected route %q", path)
		}
	}

	admin := f.client.Router.AdminRoutes()
	if len(admin) != 2 {
		t.Fatalf("expected 2 admin routes, got %v", admin)
	}
	customer := f.client.Router.CustomerRoutes()
	if len(customer) != 2 {
		t.Fatalf("expected 2 customer routes, got %v", customer)
	}
	for _, path := range admin {
		if path != "/dashboard" && path != "/admin" {
			t.Fatalf("unexpected admin route %q", path)
		}
	}
	for _, path := range customer {
		if path != "/dashboard-customer" && path != "/customer" {
			t.Fatalf("unexpected customer route %q", path)
		}
	}
}
