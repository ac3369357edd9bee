package internaldefs

import (
	vetcare "github.com/vetcare/vetcare"
)

// CounterDef defines a public type used by vetcare APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   vetcare.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by vetcare APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   vetcare.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the storefront client.
var CounterDefs = []CounterDef{
	{ID: vetcare.MetricLoginSuccess, Name: "vetcare_login_success_total", Help: "Successful login attempts."},
	{ID: vetcare.MetricLoginFailure, Name: "vetcare_login_failure_total", Help: "Failed login attempts."},
	{ID: vetcare.MetricLoginAdminFallback, Name: "vetcare_login_admin_fallback_total", Help: "Logins resolved against the configured admin allow-list."},
	{ID: vetcare.MetricLoginRateLimited, Name: "vetcare_login_rate_limited_total", Help: "Rate-limited login attempts."},
	{ID: vetcare.MetricRegisterSuccess, Name: "vetcare_register_success_total", Help: "Successful registrations."},
	{ID: vetcare.MetricRegisterDuplicate, Name: "vetcare_register_duplicate_total", Help: "Registrations rejected for an already registered email."},
	{ID: vetcare.MetricRegisterFailure, Name: "vetcare_register_failure_total", Help: "Failed registrations."},
	{ID: vetcare.MetricSessionRestored, Name: "vetcare_session_restored_total", Help: "Sessions restored from persistent storage."},
	{ID: vetcare.MetricSessionCorrupt, Name: "vetcare_session_corrupt_total", Help: "Persisted sessions discarded as corrupt."},
	{ID: vetcare.MetricLogout, Name: "vetcare_logout_total", Help: "Logout operations."},
	{ID: vetcare.MetricRouteView, Name: "vetcare_route_view_total", Help: "Successfully loaded views."},
	{ID: vetcare.MetricRouteUnknown, Name: "vetcare_route_unknown_total", Help: "Navigations to unregistered paths."},
	{ID: vetcare.MetricRouteLoginRedirect, Name: "vetcare_route_login_redirect_total", Help: "Guarded navigations redirected to login."},
	{ID: vetcare.MetricRouteAccessDenied, Name: "vetcare_route_access_denied_total", Help: "Navigations denied by role guards."},
	{ID: vetcare.MetricRouteSuperseded, Name: "vetcare_route_superseded_total", Help: "Navigations abandoned for a newer one."},
	{ID: vetcare.MetricViewLoadFailure, Name: "vetcare_view_load_failure_total", Help: "View fetches that failed."},
	{ID: vetcare.MetricAPIResolved, Name: "vetcare_api_resolved_total", Help: "API route resolutions."},
	{ID: vetcare.MetricRemoteError, Name: "vetcare_remote_error_total", Help: "Directory calls that failed."},
	{ID: vetcare.MetricCartCheckout, Name: "vetcare_cart_checkout_total", Help: "Completed cart checkouts."},
}

// HistogramDefs is an exported constant or variable used by the storefront client.
var HistogramDefs = []HistogramDef{
	{ID: vetcare.MetricNavigateLatency, Name: "vetcare_navigate_latency_seconds", Help: "Navigate latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the storefront client.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the storefront client.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
