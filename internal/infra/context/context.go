// Package context defines typed context keys used to pass request-scoped
// values (trace id, authenticated identity) between middleware and handlers.
package context

type contextKey string
