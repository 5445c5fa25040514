package api

import "context"

type ctxKey string

const ctxSession ctxKey = "session"

// Session is the authenticated caller, materialized from JWT claims by the
// auth middleware and passed explicitly through the request context. Role
// checks are pure functions of the session, never ambient lookups.
type Session struct {
	UserID string
	Email  string
	Role   string
}

// HasRole is the session-local equivalent of the store's has_role predicate.
func (s *Session) HasRole(role string) bool {
	return s != nil && s.Role == role
}

// IsAdmin mirrors the store's is_admin convenience predicate.
func (s *Session) IsAdmin() bool {
	return s.HasRole("admin")
}

// SessionFromContext returns the session installed by the auth middleware.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxSession).(*Session)
	return s, ok
}

// ContextWithSession installs a session; exported for handler tests.
func ContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxSession, s)
}
