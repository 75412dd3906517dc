// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"context"
	"net"
	"net/http"
)

// Identity describes one respondent: an optional authenticated user ID
// and a best-effort network address. It is the sole input to duplicate
// detection.
type Identity struct {
	UserID  *string
	Address string
}

// Key collapses the identity to its dedup key: the user ID when
// present, otherwise the address.
func (id Identity) Key() string {
	if id.UserID != nil {
		return *id.UserID
	}
	return id.Address
}

type contextKey struct{}

var userKey contextKey

// WithUser returns a context carrying an authenticated user ID.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey, userID)
}

// UserFrom returns the authenticated user ID from the context, if any.
func UserFrom(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userKey).(string)
	return userID, ok
}

// FromRequest resolves the respondent identity for a request: the user
// ID placed in the context by the auth middleware (absent for guests)
// plus the client network address.
func FromRequest(r *http.Request) Identity {
	var userID *string
	if id, ok := UserFrom(r.Context()); ok {
		userID = &id
	}
	return Identity{UserID: userID, Address: ClientAddress(r)}
}

// ClientAddress extracts the client network address.
// Checks X-Forwarded-For, X-Real-IP, then falls back to RemoteAddr.
func ClientAddress(r *http.Request) string {
	// Check X-Forwarded-For (load balancers)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Take first IP in chain
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' || xff[i] == ' ' {
				return xff[:i]
			}
		}
		return xff
	}

	// Check X-Real-IP (nginx)
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Fall back to RemoteAddr. SplitHostPort also strips the brackets
	// from an IPv6 host, so the dedup axis sees one spelling per address.
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
