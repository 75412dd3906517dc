// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/formiq/formiq/cliparse"
	"github.com/formiq/formiq/identity"
	"github.com/formiq/formiq/metrics"
	"github.com/formiq/formiq/middleware"
	"github.com/formiq/formiq/models"
	"github.com/formiq/formiq/store"
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	m   *metrics.Metrics
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config, m *metrics.Metrics) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg, m: m}
}

// SubmitVote handles POST /polls/{id}/votes
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ident := identity.FromRequest(r)

	poll, err := store.GetVisiblePollByID(h.db, pollID, ident.UserID)
	if err != nil {
		writeStoreError(w, err, "failed to query poll")
		return
	}

	vote, err := store.RecordVote(h.db, poll, req.Option, ident)
	if err != nil {
		h.observe("vote", err)
		writeStoreError(w, err, "failed to record vote")
		return
	}
	h.observe("vote", nil)

	slog.Info("vote recorded", "poll_id", poll.ID, "vote_id", vote.ID, "authenticated", ident.UserID != nil)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		VoteID:  vote.ID,
		Message: "Vote recorded",
	})
}

// SubmitResponse handles POST /polls/{id}/responses
func (h *VotingHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	var req models.SubmitResponseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ident := identity.FromRequest(r)

	poll, err := store.GetVisiblePollByID(h.db, pollID, ident.UserID)
	if err != nil {
		writeStoreError(w, err, "failed to query poll")
		return
	}

	resp, err := store.RecordResponse(h.db, poll, req.Answers, ident)
	if err != nil {
		h.observe("response", err)
		writeStoreError(w, err, "failed to record response")
		return
	}
	h.observe("response", nil)

	slog.Info("response recorded", "poll_id", poll.ID, "response_id", resp.ID, "answers", len(resp.Answers))

	middleware.JSONResponse(w, http.StatusCreated, models.MessageResponse{Message: "Response recorded"})
}

// observe updates the submission counters for one outcome.
func (h *VotingHandler) observe(kind string, err error) {
	if h.m == nil {
		return
	}
	switch {
	case err == nil:
		h.m.SubmissionsAccepted.WithLabelValues(kind).Inc()
	case errors.Is(err, store.ErrDuplicateSubmission):
		h.m.SubmissionsDuplicate.WithLabelValues(kind).Inc()
	case errors.Is(err, store.ErrValidation):
		h.m.SubmissionsRejected.WithLabelValues(kind).Inc()
	}
}
