// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"strings"

	"github.com/formiq/formiq/auth"
	"github.com/formiq/formiq/identity"
)

// OptionalAuth resolves a Bearer token into an authenticated user in
// the request context. An absent or invalid token is not an error:
// the request continues as a guest.
func OptionalAuth(secret string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimPrefix(header, "Bearer ")
			if userID, err := auth.ParseToken(token, secret); err == nil {
				r = r.WithContext(identity.WithUser(r.Context(), userID))
			}
			// Invalid token: continue as guest
		}
		next(w, r)
	}
}

// RequireAuth is OptionalAuth plus a 401 when no valid user resulted.
func RequireAuth(secret string, next http.HandlerFunc) http.HandlerFunc {
	return OptionalAuth(secret, func(w http.ResponseWriter, r *http.Request) {
		if _, ok := identity.UserFrom(r.Context()); !ok {
			ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next(w, r)
	})
}
