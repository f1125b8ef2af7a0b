package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/kozaktomas/photo-archive/internal/gallery"
)

type contextKey string

const scopeContextKey contextKey = "scope"

// bearerToken extracts the token of an "Authorization: Bearer" header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

// WithScope stores the caller's scope in the request context. Requests
// bearing apiToken may see private photos. An empty apiToken authorizes
// nobody.
func WithScope(apiToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope := gallery.Public
			if token := bearerToken(r); apiToken != "" && token != "" &&
				subtle.ConstantTimeCompare([]byte(token), []byte(apiToken)) == 1 {
				scope = gallery.Scope{Authorized: true}
			}
			next.ServeHTTP(w, r.WithContext(SetScopeInContext(r.Context(), scope)))
		})
	}
}

// RequireAuthorized rejects requests whose scope is not authorized. It must
// run after WithScope.
func RequireAuthorized(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !GetScopeFromContext(r.Context()).Authorized {
			w.Header().Set("Content-Type", "application/json")
			http.Error(w, `{"error": "unauthorized"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetScopeFromContext retrieves the scope from the request context. Without
// one the caller is anonymous.
func GetScopeFromContext(ctx context.Context) gallery.Scope {
	scope, ok := ctx.Value(scopeContextKey).(gallery.Scope)
	if !ok {
		return gallery.Public
	}
	return scope
}

// SetScopeInContext adds a scope to the context.
// This is primarily for testing - use WithScope middleware in production.
func SetScopeInContext(ctx context.Context, scope gallery.Scope) context.Context {
	return context.WithValue(ctx, scopeContextKey, scope)
}
