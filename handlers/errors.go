// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/formiq/formiq/middleware"
	"github.com/formiq/formiq/store"
)

// writeStoreError maps the store's error taxonomy onto HTTP statuses.
// Unexpected errors are logged in full but surface as a fixed message.
func writeStoreError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, store.ErrValidation):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrDuplicateSubmission):
		middleware.ErrorResponse(w, http.StatusBadRequest, "You have already submitted this poll")
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
	case errors.Is(err, store.ErrForbidden):
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the poll owner may do this")
	default:
		slog.Error(logMsg, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
