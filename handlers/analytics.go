// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/formiq/formiq/cliparse"
	"github.com/formiq/formiq/identity"
	"github.com/formiq/formiq/middleware"
	"github.com/formiq/formiq/store"
)

type AnalyticsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAnalyticsHandler(db *sql.DB, cfg cliparse.Config) *AnalyticsHandler {
	return &AnalyticsHandler{db: db, cfg: cfg}
}

// GetResponses handles GET /polls/{id}/responses
// Owner-only: lists a survey's raw responses with their answers, so
// free-text answers can be reviewed per respondent.
func (h *AnalyticsHandler) GetResponses(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}
	userID, _ := identity.UserFrom(r.Context())

	poll, err := store.GetPollByID(h.db, pollID)
	if err != nil {
		writeStoreError(w, err, "failed to query poll")
		return
	}

	responses, err := store.GetResponses(h.db, poll, userID)
	if err != nil {
		writeStoreError(w, err, "failed to list responses")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, responses)
}

// GetQuestionAnalytics handles GET /polls/{id}/questions/{questionId}/analytics
// Owner-only: returns per-answer counts for one survey question.
func (h *AnalyticsHandler) GetQuestionAnalytics(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	questionID := r.PathValue("questionId")
	if pollID == "" || questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id and question_id are required")
		return
	}
	userID, _ := identity.UserFrom(r.Context())

	poll, err := store.GetPollByID(h.db, pollID)
	if err != nil {
		writeStoreError(w, err, "failed to query poll")
		return
	}

	tally, err := store.TallyQuestion(h.db, poll, questionID, userID)
	if err != nil {
		writeStoreError(w, err, "failed to compute question tally")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, tally)
}
