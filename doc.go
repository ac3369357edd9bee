// Package vetcare provides the client-side core of a veterinary clinic
// storefront: session and authorization management, path routing with role
// guards, a REST directory client, and a persisted shopping cart.
//
// The package is designed for concurrent UI workloads: Client methods are safe
// to call from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// vetcare is the public surface. It exposes [Client], [Builder], [Config], and
// value types (Navigation, LoginResult, MetricsSnapshot, etc.). Session
// encoding and login throttling live under session/ and internal/ and are
// coordinated here, never re-exported.
//
// # What this package must NOT do
//
//   - Expose storage backends, session envelopes, or encoding details in its
//     public API.
//   - Perform I/O outside of Client methods (construction via Builder reads
//     only the persisted cart).
//   - Import any sub-package that re-imports vetcare (no import cycles).
//
// # Performance contract
//
// Navigate is the hot path. Route resolution and guard checks complete without
// storage or network round-trips; only the view fetch leaves the process.
// Login and Register are allowed one directory round-trip per call.
package vetcare
