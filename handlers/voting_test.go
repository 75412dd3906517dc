// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/formiq/formiq/models"
	"github.com/formiq/formiq/testutil"
)

// guestFrom returns headers that pin the caller's address, so tests
// can play multiple guests against one server.
func guestFrom(addr string) map[string]string {
	return map[string]string{"X-Forwarded-For": addr}
}

func TestSubmitVoteEndpoint(t *testing.T) {
	db, _, mux := setupServer(t)

	poll := testutil.CreateChoicePoll(t, db, "u1", "Team lunch", []string{"Pizza", "Tacos"})

	// First vote from a guest is recorded
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/polls/"+poll.ID+"/votes",
		models.SubmitVoteRequest{Option: "Pizza"}, guestFrom("1.1.1.1")))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var voted models.SubmitVoteResponse
	testutil.AssertJSON(t, w, &voted)
	if voted.VoteID == "" {
		t.Error("Expected a vote id in the response")
	}

	// The same guest voting again is turned away
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/polls/"+poll.ID+"/votes",
		models.SubmitVoteRequest{Option: "Tacos"}, guestFrom("1.1.1.1")))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	// The poll view reflects one pizza vote and the guest's submission
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/polls/"+poll.Slug, nil, guestFrom("1.1.1.1")))
	testutil.AssertStatus(t, w, http.StatusOK)

	var view models.PollView
	testutil.AssertJSON(t, w, &view)
	if !view.HasSubmitted {
		t.Error("Expected has_submitted to be true after voting")
	}
	want := []models.OptionCount{{Option: "Pizza", Count: 1}, {Option: "Tacos", Count: 0}}
	if view.Tally == nil {
		t.Fatal("Expected a tally")
	}
	for i, expected := range want {
		if view.Tally.Options[i] != expected {
			t.Errorf("Tally.Options[%d] = %+v, want %+v", i, view.Tally.Options[i], expected)
		}
	}

	// An uninvolved guest sees the tally but no submission flag
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/polls/"+poll.Slug, nil, guestFrom("2.2.2.2")))
	testutil.AssertStatus(t, w, http.StatusOK)
	view = models.PollView{}
	testutil.AssertJSON(t, w, &view)
	if view.HasSubmitted {
		t.Error("Expected has_submitted to be false for an uninvolved guest")
	}
}

func TestSubmitVoteEndpoint_InvalidOption(t *testing.T) {
	db, _, mux := setupServer(t)

	poll := testutil.CreateChoicePoll(t, db, "u1", "Team lunch", []string{"Pizza", "Tacos"})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/polls/"+poll.ID+"/votes",
		models.SubmitVoteRequest{Option: "Sushi"}, guestFrom("1.1.1.1")))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestSubmitVoteEndpoint_PrivatePoll(t *testing.T) {
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

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/polls/"+poll.ID+"/votes",
		models.SubmitVoteRequest{Option: "A"}, guestFrom("1.1.1.1")))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestSubmitResponseEndpoint(t *testing.T) {
	db, cfg, mux := setupServer(t)

	poll := testutil.CreateSurveyPoll(t, db, "u1", "Onboarding", []models.QuestionInput{
		{Text: "How was setup?", Options: []string{"Smooth", "Rough"}},
		{Text: "Docs quality?", Options: []string{"Good", "Bad"}},
	})

	body := models.SubmitResponseRequest{Answers: []models.Answer{
		{QuestionID: poll.Questions[0].ID, Answer: "Smooth"},
		{QuestionID: poll.Questions[1].ID, Answer: "Good"},
	}}

	// An authenticated respondent submits once
	headers := testutil.AuthHeader(t, cfg, "respondent")
	headers["X-Forwarded-For"] = "1.1.1.1"
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/polls/"+poll.ID+"/responses", body, headers))
	testutil.AssertStatus(t, w, http.StatusCreated)

	// A second submission by the same user is blocked, even from a
	// different address
	headers = testutil.AuthHeader(t, cfg, "respondent")
	headers["X-Forwarded-For"] = "9.9.9.9"
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/polls/"+poll.ID+"/responses", body, headers))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	// An unrelated guest can still respond
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/polls/"+poll.ID+"/responses", body, guestFrom("3.3.3.3")))
	testutil.AssertStatus(t, w, http.StatusCreated)
}

func TestSubmitResponseEndpoint_UnknownQuestion(t *testing.T) {
	db, _, mux := setupServer(t)

	poll := testutil.CreateSurveyPoll(t, db, "u1", "Onboarding", []models.QuestionInput{
		{Text: "How was setup?", Options: []string{"Smooth", "Rough"}},
	})

	body := models.SubmitResponseRequest{Answers: []models.Answer{
		{QuestionID: "not-a-question", Answer: "Smooth"},
	}}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/polls/"+poll.ID+"/responses", body, guestFrom("1.1.1.1")))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestSubmitVoteEndpoint_MissingPoll(t *testing.T) {
	_, _, mux := setupServer(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/polls/no-such-poll/votes",
		models.SubmitVoteRequest{Option: "A"}, guestFrom("1.1.1.1")))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
