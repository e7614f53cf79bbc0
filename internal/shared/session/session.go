package session

import (
	"context"
	"errors"
)

// Session is the authenticated caller's identity, carried explicitly
// through the request context instead of ambient storage. Engines read
// it from here; nothing reads tokens or usernames from globals.
type Session struct {
	UserID   string
	Username string
	FullName string
}

type contextKey struct{}

var ErrNoSession = errors.New("no session in context")

// WithSession returns a context carrying the session.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext extracts the session set by the auth middleware.
func FromContext(ctx context.Context) (*Session, error) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	if !ok || s == nil {
		return nil, ErrNoSession
	}
	return s, nil
}
