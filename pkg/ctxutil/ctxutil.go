// Package ctxutil carries request-scoped values (caller identity, request
// id) through context.Context.
package ctxutil

import "context"

type ctxKey int

const (
	identityKey ctxKey = iota
	requestIDKey
)

// RoleAdmin is the role claim that unlocks the system views.
const RoleAdmin = "admin"

// Identity is the caller resolved from a bearer token. The zero value is
// an anonymous visitor.
type Identity struct {
	UserID int64
	Role   string
}

// Authenticated reports whether the identity names a user.
func (id Identity) Authenticated() bool { return id.UserID > 0 }

// Admin reports whether the identity may open the system views.
func (id Identity) Admin() bool { return id.Authenticated() && id.Role == RoleAdmin }

// WithIdentity stores the caller identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromCtx returns the caller identity, anonymous when absent.
func IdentityFromCtx(ctx context.Context) Identity {
	id, _ := ctx.Value(identityKey).(Identity)
	return id
}

// WithRequestID stores the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx returns the request id, or "" outside a request.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
