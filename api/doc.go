// Package api is the typed REST client for the clinic backend. It covers
// the users, pets, products, and appointments collections and tags every
// request with a correlation ID.
package api
