// Package cart implements the client-local shopping cart persisted through
// the storage capability. Totals include a flat shipping fee whenever the
// cart is non-empty.
package cart
