// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP helpers shared by all handlers.

# Helpers

  - WithLogging: slog request/completion logging
  - WithMetrics: request-latency observation per route
  - JSONResponse / ErrorResponse: JSON encoding with status
  - ParseJSONBody: request body decoding
  - CORS: permissive cross-origin handling for the frontend

# Authentication

OptionalAuth verifies an HS256 Bearer token and, on success, stores the
user ID in the request context via the identity package. Invalid or
missing tokens are not rejected; the request proceeds as a guest, which
is what lets anonymous respondents vote. RequireAuth layers a 401 on
top for owner-only endpoints.
*/
package middleware
