// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/formiq/formiq/models"
	"github.com/formiq/formiq/store"
	"github.com/formiq/formiq/testutil"
)

func TestTallyVotes_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	poll := testutil.CreateChoicePoll(t, db, "owner", "Lunch", []string{"A", "B", "C"})

	tally, err := store.TallyVotes(db, poll)
	if err != nil {
		t.Fatalf("TallyVotes() error = %v", err)
	}
	if tally.Total != 0 {
		t.Errorf("Total = %d, want 0", tally.Total)
	}
	if len(tally.Options) != 3 {
		t.Fatalf("Options = %d entries, want 3", len(tally.Options))
	}
	// Every declared option appears with a zero count, in order
	for i, want := range []string{"A", "B", "C"} {
		if tally.Options[i].Option != want {
			t.Errorf("Options[%d].Option = %q, want %q", i, tally.Options[i].Option, want)
		}
		if tally.Options[i].Count != 0 {
			t.Errorf("Options[%d].Count = %d, want 0", i, tally.Options[i].Count)
		}
	}
}

func TestTallyVotes_Counts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	poll := testutil.CreateChoicePoll(t, db, "owner", "Lunch", []string{"A", "B"})

	for i := 0; i < 3; i++ {
		addr := fmt.Sprintf("10.0.0.%d", i)
		if _, err := store.RecordVote(db, poll, "A", testutil.GuestIdentity(addr)); err != nil {
			t.Fatalf("RecordVote() error = %v", err)
		}
	}
	if _, err := store.RecordVote(db, poll, "B", testutil.GuestIdentity("10.0.1.1")); err != nil {
		t.Fatalf("RecordVote() error = %v", err)
	}

	tally, err := store.TallyVotes(db, poll)
	if err != nil {
		t.Fatalf("TallyVotes() error = %v", err)
	}
	if tally.Total != 4 {
		t.Errorf("Total = %d, want 4", tally.Total)
	}
	want := []models.OptionCount{{Option: "A", Count: 3}, {Option: "B", Count: 1}}
	for i, w := range want {
		if tally.Options[i] != w {
			t.Errorf("Options[%d] = %+v, want %+v", i, tally.Options[i], w)
		}
	}
}

func TestTallyQuestion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	poll := testutil.CreateSurveyPoll(t, db, "owner", "Survey", []models.QuestionInput{
		{Text: "Q1", Options: []string{"Yes", "No"}},
		{Text: "Q2", Options: []string{"Often", "Rarely"}},
	})
	q1 := poll.Questions[0].ID

	submissions := []struct {
		answer string
		addr   string
	}{
		{"Yes", "10.0.0.1"},
		{"Yes", "10.0.0.2"},
		{"No", "10.0.0.3"},
	}
	for _, s := range submissions {
		answers := []models.Answer{{QuestionID: q1, Answer: s.answer}}
		if _, err := store.RecordResponse(db, poll, answers, testutil.GuestIdentity(s.addr)); err != nil {
			t.Fatalf("RecordResponse() error = %v", err)
		}
	}

	qt, err := store.TallyQuestion(db, poll, q1, "owner")
	if err != nil {
		t.Fatalf("TallyQuestion() error = %v", err)
	}
	if qt.Question != "Q1" {
		t.Errorf("Question = %q, want Q1", qt.Question)
	}
	if len(qt.Options) != 2 {
		t.Errorf("Options = %v, want the question's two labels", qt.Options)
	}
	if qt.Counts["Yes"] != 2 || qt.Counts["No"] != 1 {
		t.Errorf("Counts = %v, want Yes:2 No:1", qt.Counts)
	}
}

func TestTallyQuestion_Forbidden(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	poll := testutil.CreateSurveyPoll(t, db, "owner", "Survey", []models.QuestionInput{
		{Text: "Q1", Options: []string{"Yes", "No"}},
	})

	if _, err := store.TallyQuestion(db, poll, poll.Questions[0].ID, "intruder"); !errors.Is(err, store.ErrForbidden) {
		t.Errorf("TallyQuestion() as non-owner error = %v, want ErrForbidden", err)
	}

	// Once private, the poll's existence is hidden from non-owners
	public := false
	if _, err := store.UpdatePoll(db, poll.ID, "owner", models.UpdatePollRequest{
		Title:     poll.Title,
		Public:    &public,
		Questions: []models.QuestionInput{{Text: "Q1", Options: []string{"Yes", "No"}}},
	}); err != nil {
		t.Fatalf("UpdatePoll() error = %v", err)
	}
	poll, err := store.GetPollByID(db, poll.ID)
	if err != nil {
		t.Fatalf("GetPollByID() error = %v", err)
	}
	if _, err := store.TallyQuestion(db, poll, poll.Questions[0].ID, "intruder"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("TallyQuestion() on private poll error = %v, want ErrNotFound", err)
	}
}

func TestTallyQuestion_UnknownQuestion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	poll := testutil.CreateSurveyPoll(t, db, "owner", "Survey", []models.QuestionInput{
		{Text: "Q1", Options: []string{"Yes", "No"}},
	})

	if _, err := store.TallyQuestion(db, poll, "missing", "owner"); !errors.Is(err, store.ErrValidation) {
		t.Errorf("TallyQuestion() with unknown question error = %v, want ErrValidation", err)
	}
}
