package session

import (
	"context"
)

type contextKey struct{}

// WithManager returns a context carrying the session manager. The manager is
// installed once near the application root and read by everything below it.
func WithManager(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, contextKey{}, m)
}

// FromContext returns the session manager installed in ctx, if any.
func FromContext(ctx context.Context) (*Manager, bool) {
	m, ok := ctx.Value(contextKey{}).(*Manager)
	return m, ok
}

// MustFromContext returns the session manager installed in ctx and panics
// when none is present. Reaching for the session outside the scope that owns
// it is a programming error, not a runtime condition to paper over.
func MustFromContext(ctx context.Context) *Manager {
	m, ok := FromContext(ctx)
	if !ok {
		panic("session: no manager installed in context")
	}
	return m
}
