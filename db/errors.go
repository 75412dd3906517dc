// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// pq error code for unique_violation
const pqUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a uniqueness-constraint
// violation from either supported driver. Postgres exposes a typed
// error code; modernc sqlite only exposes the message text.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
