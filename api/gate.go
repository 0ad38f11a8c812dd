package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/linesmerrill/lifeline-api/policy"
)

// RequireNavigation only lets a request through when the principal's role
// may open the navigation item at path. It mirrors what the menu shows so a
// hidden page is also closed on the server.
func RequireNavigation(path string) func(http.Handler) http.Handler {
	item, ok := policy.ItemForPath(path)
	if !ok {
		panic("api: no navigation item for " + path)
	}
	return RequireRole(func(role policy.Role) bool {
		return policy.IsAllowed(role, item)
	})
}

// RequireRole only lets a request through when allowed returns true for the
// principal's role.
func RequireRole(allowed func(policy.Role) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error": "unauthorized"}`))
				return
			}
			if !allowed(p.Role) {
				zap.S().Warnw("forbidden",
					"url", r.URL.Path,
					"user_id", p.ID,
					"role", p.Role)
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error": "forbidden"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
