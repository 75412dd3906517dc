// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/formiq/formiq/cliparse"
	"github.com/formiq/formiq/models"
	"github.com/formiq/formiq/router"
	"github.com/formiq/formiq/testutil"
)

// setupServer builds a router over a fresh in-memory database. Metrics
// and question generation are left unset; both are optional.
func setupServer(t *testing.T) (*sql.DB, cliparse.Config, *http.ServeMux) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { db.Close() })
	cfg := testutil.GetTestConfig()
	return db, cfg, router.NewRouter(db, cfg, nil, nil)
}

func TestCreatePollEndpoint(t *testing.T) {
	_, cfg, mux := setupServer(t)

	body := models.CreatePollRequest{
		Title:   "Team lunch",
		Options: []string{"Pizza", "Tacos"},
	}

	// Without a token the endpoint is off-limits
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/polls", body, nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	// With a token the poll is created
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/polls", body, testutil.AuthHeader(t, cfg, "u1")))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var poll models.Poll
	testutil.AssertJSON(t, w, &poll)
	if poll.Slug == "" {
		t.Error("Expected a generated slug")
	}
	if poll.OwnerID != "u1" {
		t.Errorf("OwnerID = %q, want u1", poll.OwnerID)
	}
	if poll.Kind != models.KindChoice {
		t.Errorf("Kind = %q, want choice", poll.Kind)
	}
}

func TestCreatePollEndpoint_Invalid(t *testing.T) {
	_, cfg, mux := setupServer(t)

	body := models.CreatePollRequest{
		Title:     "Both kinds",
		Options:   []string{"A"},
		Questions: []models.QuestionInput{{Text: "Q", Options: []string{"Yes"}}},
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/polls", body, testutil.AuthHeader(t, cfg, "u1")))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestGetPollEndpoint(t *testing.T) {
	db, _, mux := setupServer(t)

	poll := testutil.CreateChoicePoll(t, db, "u1", "Team lunch", []string{"Pizza", "Tacos"})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/polls/"+poll.Slug, nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var view models.PollView
	testutil.AssertJSON(t, w, &view)
	if view.ID != poll.ID {
		t.Errorf("ID = %q, want %q", view.ID, poll.ID)
	}
	if view.HasSubmitted {
		t.Error("Expected has_submitted to be false for a fresh guest")
	}
	if view.Tally == nil {
		t.Fatal("Expected a tally on a choice poll view")
	}
	if view.Tally.Total != 0 {
		t.Errorf("Tally.Total = %d, want 0", view.Tally.Total)
	}
}

func TestGetPollEndpoint_Private(t *testing.T) {
	db, cfg, mux := setupServer(t)

	poll := testutil.CreateChoicePoll(t, db, "u1", "Internal", []string{"A", "B"})
	private := false
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("PUT", "/polls/"+poll.ID, models.UpdatePollRequest{
		Title:   poll.Title,
		Public:  &private,
		Options: poll.Options,
	}, testutil.AuthHeader(t, cfg, "u1")))
	testutil.AssertStatus(t, w, http.StatusOK)

	// A guest cannot even learn the poll exists
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/polls/"+poll.Slug, nil, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	// Neither can another user
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/polls/"+poll.Slug, nil, testutil.AuthHeader(t, cfg, "u2")))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	// The owner still can
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/polls/"+poll.Slug, nil, testutil.AuthHeader(t, cfg, "u1")))
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestGetMyPollsEndpoint(t *testing.T) {
	db, cfg, mux := setupServer(t)

	testutil.CreateChoicePoll(t, db, "u1", "First", []string{"A", "B"})
	testutil.CreateChoicePoll(t, db, "u2", "Other", []string{"A", "B"})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/polls/mine", nil, testutil.AuthHeader(t, cfg, "u1")))
	testutil.AssertStatus(t, w, http.StatusOK)

	var polls []models.OwnerPoll
	testutil.AssertJSON(t, w, &polls)
	if len(polls) != 1 {
		t.Fatalf("Expected 1 poll, got %d", len(polls))
	}
	if polls[0].Title != "First" {
		t.Errorf("Title = %q, want First", polls[0].Title)
	}
}

func TestUpdatePollEndpoint_Forbidden(t *testing.T) {
	db, cfg, mux := setupServer(t)

	poll := testutil.CreateChoicePoll(t, db, "u1", "Team lunch", []string{"A", "B"})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("PUT", "/polls/"+poll.ID, models.UpdatePollRequest{
		Title:   "Hijacked",
		Options: []string{"X"},
	}, testutil.AuthHeader(t, cfg, "u2")))
	testutil.AssertStatus(t, w, http.StatusForbidden)
}

func TestDeletePollEndpoint(t *testing.T) {
	db, cfg, mux := setupServer(t)

	poll := testutil.CreateChoicePoll(t, db, "u1", "Short-lived", []string{"A", "B"})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("DELETE", "/polls/"+poll.ID, nil, testutil.AuthHeader(t, cfg, "u1")))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/polls/"+poll.Slug, nil, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestDuplicatePollEndpoint(t *testing.T) {
	db, cfg, mux := setupServer(t)

	poll := testutil.CreateChoicePoll(t, db, "u1", "Original", []string{"A", "B"})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/polls/"+poll.ID+"/duplicate", nil, testutil.AuthHeader(t, cfg, "u2")))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var dup models.Poll
	testutil.AssertJSON(t, w, &dup)
	if dup.Title != "Original (copy)" {
		t.Errorf("Title = %q, want %q", dup.Title, "Original (copy)")
	}
	if dup.OwnerID != "u2" {
		t.Errorf("OwnerID = %q, want u2", dup.OwnerID)
	}
	if dup.Slug == poll.Slug {
		t.Error("Expected the copy to have its own slug")
	}
}
