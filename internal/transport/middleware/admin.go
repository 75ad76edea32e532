package middleware

import (
	"context"
	"net/http"

	"github.com/heartmarshall/sapl-backend/internal/domain"
	"github.com/heartmarshall/sapl-backend/pkg/ctxutil"
)

// RequireAdmin returns domain.ErrForbidden if the context user is not admin.
func RequireAdmin(ctx context.Context) error {
	if !ctxutil.IdentityFromCtx(ctx).Admin() {
		return domain.ErrForbidden
	}
	return nil
}

// AdminOnly rejects requests that do not carry an admin token.
// Anonymous requests get 401, authenticated non-admins get 403.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ctxutil.IdentityFromCtx(r.Context()).Authenticated() {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeAuthError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if err := RequireAdmin(r.Context()); err != nil {
			writeAuthError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
