package middleware

import (
	"net/http"

	"perfeval/internal/transport/http/api"
)

// RequireRole rejects unauthenticated requests and requests whose role is
// not in the allow list. An empty list means any authenticated user.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", GetRequestID(r.Context()))
				return
			}

			if len(allowed) > 0 {
				if _, ok := allowed[user.Role]; !ok {
					api.Fail(w, http.StatusForbidden, "FORBIDDEN", "insufficient role", GetRequestID(r.Context()))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
