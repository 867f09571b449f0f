// File: internal/middleware/admin_middleware.go
package middleware

import (
	"log"
	"net/http"

	userrepo "github.com/astraid/astraid/internal/repository/user"
)

// RequireAdmin checks that the authenticated user holds the admin role.
// It MUST be used AFTER the standard JWT authentication middleware.
func RequireAdmin(userRepo userrepo.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok || userID == 0 {
				log.Printf("[AdminMiddleware] Forbidden: no valid userID in context for path %s", r.URL.Path)
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			// The role lives in the database, not the token, so a demotion
			// takes effect without waiting for token expiry.
			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				log.Printf("[AdminMiddleware] Forbidden: could not load user %d: %v", userID, err)
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			if !user.IsAdmin() {
				log.Printf("[AdminMiddleware] FORBIDDEN: non-admin user %d attempted admin route: %s", user.ID, r.URL.Path)
				http.Error(w, "Forbidden: You do not have permission to access this page.", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
