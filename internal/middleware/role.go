package middleware

import (
	"fmt"
	"net/http"

	"github.com/workhive/workhive/internal/auth"
	"github.com/workhive/workhive/internal/model"
)

// RequireRole returns middleware that enforces a caller role.
// Must be applied after Auth middleware.
func RequireRole(required model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := auth.IdentityFromContext(r.Context())
			if id == nil {
				writeRoleError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
				return
			}

			if id.Role != required {
				writeRoleError(w, http.StatusForbidden, "FORBIDDEN",
					fmt.Sprintf("requires %s role", required))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireEmployer is a convenience middleware for employer-only routes.
func RequireEmployer() func(http.Handler) http.Handler {
	return RequireRole(model.RoleEmployer)
}

// RequireEmployee is a convenience middleware for employee-only routes.
func RequireEmployee() func(http.Handler) http.Handler {
	return RequireRole(model.RoleEmployee)
}

// writeRoleError writes a role-related error response.
func writeRoleError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(fmt.Sprintf(`{"error":%q,"code":%q}`, message, code)))
}
