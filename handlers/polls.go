// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/formiq/formiq/cliparse"
	"github.com/formiq/formiq/identity"
	"github.com/formiq/formiq/middleware"
	"github.com/formiq/formiq/models"
	"github.com/formiq/formiq/store"
)

type PollHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPollHandler(db *sql.DB, cfg cliparse.Config) *PollHandler {
	return &PollHandler{db: db, cfg: cfg}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserFrom(r.Context())

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	poll, err := store.CreatePoll(h.db, userID, req)
	if err != nil {
		writeStoreError(w, err, "failed to create poll")
		return
	}

	slog.Info("poll created", "poll_id", poll.ID, "slug", poll.Slug, "owner", userID, "kind", poll.Kind)

	middleware.JSONResponse(w, http.StatusCreated, poll)
}

// GetPoll handles GET /polls/{slug}
// Returns the public poll view: fields, tally (choice polls only), and
// whether the calling identity already submitted.
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	ident := identity.FromRequest(r)

	poll, err := store.GetPollBySlug(h.db, slug, ident.UserID)
	if err != nil {
		writeStoreError(w, err, "failed to query poll")
		return
	}

	hasSubmitted, err := store.HasSubmitted(h.db, poll, ident)
	if err != nil {
		writeStoreError(w, err, "failed to check prior submission")
		return
	}

	view := models.PollView{Poll: poll, HasSubmitted: hasSubmitted}
	if poll.Kind == models.KindChoice {
		tally, err := store.TallyVotes(h.db, poll)
		if err != nil {
			writeStoreError(w, err, "failed to compute tally")
			return
		}
		view.Tally = &tally
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

// GetMyPolls handles GET /polls/mine
func (h *PollHandler) GetMyPolls(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserFrom(r.Context())

	polls, err := store.GetPollsByOwner(h.db, userID)
	if err != nil {
		writeStoreError(w, err, "failed to list polls")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// UpdatePoll handles PUT /polls/{id}
func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}
	userID, _ := identity.UserFrom(r.Context())

	var req models.UpdatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	poll, err := store.UpdatePoll(h.db, pollID, userID, req)
	if err != nil {
		writeStoreError(w, err, "failed to update poll")
		return
	}

	slog.Info("poll updated", "poll_id", poll.ID, "owner", userID)

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// DeletePoll handles DELETE /polls/{id}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}
	userID, _ := identity.UserFrom(r.Context())

	if err := store.DeletePoll(h.db, pollID, userID); err != nil {
		writeStoreError(w, err, "failed to delete poll")
		return
	}

	slog.Info("poll deleted", "poll_id", pollID, "owner", userID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Poll deleted"})
}

// DuplicatePoll handles POST /polls/{id}/duplicate
func (h *PollHandler) DuplicatePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}
	userID, _ := identity.UserFrom(r.Context())

	poll, err := store.DuplicatePoll(h.db, pollID, userID)
	if err != nil {
		writeStoreError(w, err, "failed to duplicate poll")
		return
	}

	slog.Info("poll duplicated", "source_poll_id", pollID, "poll_id", poll.ID, "owner", userID)

	middleware.JSONResponse(w, http.StatusCreated, poll)
}
