package middleware

import (
	"net/http"

	"github.com/job-portal-api/internal/domain"
)

// RequireRole returns middleware that allows access only to callers whose
// token role matches one of the provided roles. Services still re-check the
// role themselves; this is a first gate, not the authorization decision.
func RequireRole(allowedRoles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			for _, role := range allowedRoles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			// Role mismatches map to 401 everywhere else in the API, so the
			// gate answers the same way the services do.
			writeJSONError(w, http.StatusUnauthorized, "access denied")
		})
	}
}
