package dataloader

import (
	"log/slog"
	"net/http"
	"strings"
)

// Middleware gives each page request its own label and author cache.
// Websocket upgrades are skipped: a connection outlives any page and must
// not pin a cache for its whole lifetime.
func Middleware(repos *Repos, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isUpgrade(r) {
				next.ServeHTTP(w, r)
				return
			}
			ctx := WithLoaders(r.Context(), NewLoaders(repos, logger))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func isUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}
