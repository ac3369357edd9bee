// Package session holds the client session model, its storage codec, and the
// fan-out store that persists a session across the well-known storage keys
// used by the storefront.
//
// # Storage layout
//
// The serialized session lives under [KeyUser]. The email, display name, and
// role are additionally denormalized under [KeyEmail], [KeyName], and
// [KeyUserType] so embedders can read them without decoding the full
// document. [Store.Load] treats the serialized key as the source of truth
// and repairs the denormalized keys when they drift.
//
// # Architecture boundaries
//
// This package owns the [Session] model, the [Codec], and the [Store]. It
// does NOT decide who may log in or which routes a session may visit; those
// responsibilities belong to the client core.
package session
