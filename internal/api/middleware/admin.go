package middleware

import (
	"crypto/subtle"
	"net/http"
)

// RequireAdminToken guards privileged routes with a static shared token sent
// as "Authorization: Bearer <token>"
func RequireAdminToken(token string) func(http.Handler) http.Handler {
	expected := []byte(token)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided, ok := bearerToken(r)
			if !ok || len(expected) == 0 || subtle.ConstantTimeCompare([]byte(provided), expected) != 1 {
				writeJSONError(w, http.StatusUnauthorized, "AdminAuthRequired", "A valid admin token is required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
