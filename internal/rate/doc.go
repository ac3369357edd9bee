// Package rate provides the storage-backed login attempt limiter used to
// slow credential guessing against the backend.
//
// # Window semantics
//
// Fixed-window counters: the first failed attempt opens a window of the
// configured cooldown; attempts past the budget inside the window are
// rejected. Counter state lives under the "login_attempts:" key prefix in
// the client storage capability.
//
// # What this package must NOT do
//
//   - Decide login outcomes (that belongs to the client core).
//   - Be imported outside the vetcare module.
package rate
