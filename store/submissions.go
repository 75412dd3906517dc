// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/formiq/formiq/db"
	"github.com/formiq/formiq/identity"
	"github.com/formiq/formiq/models"
)

// RecordVote appends one vote to the ledger. The option must be one of
// the poll's declared labels at submit time. There is no existence
// pre-check: the insert itself is the duplicate guard, and a unique
// violation on either identity axis (user ID or address) is reported
// as ErrDuplicateSubmission.
func RecordVote(dbc *sql.DB, poll models.Poll, option string, ident identity.Identity) (models.Vote, error) {
	if poll.Kind != models.KindChoice {
		return models.Vote{}, fmt.Errorf("%w: poll does not accept votes", ErrValidation)
	}
	if option == "" {
		return models.Vote{}, fmt.Errorf("%w: option is required", ErrValidation)
	}

	declared := false
	for _, label := range poll.Options {
		if label == option {
			declared = true
			break
		}
	}
	if !declared {
		return models.Vote{}, fmt.Errorf("%w: option %q is not on this poll", ErrValidation, option)
	}

	vote := models.Vote{
		ID:          uuid.NewString(),
		PollID:      poll.ID,
		Option:      option,
		UserID:      ident.UserID,
		Address:     ident.Address,
		SubmittedAt: time.Now(),
	}

	_, err := dbc.Exec(`
		INSERT INTO vote (id, poll_id, option_label, user_id, address, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, vote.ID, vote.PollID, vote.Option, vote.UserID, vote.Address, vote.SubmittedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return models.Vote{}, ErrDuplicateSubmission
		}
		return models.Vote{}, fmt.Errorf("failed to insert vote: %w", err)
	}
	return vote, nil
}

// RecordResponse appends one survey response with its answers. Every
// answer must reference a question currently on the poll; validation
// happens before anything is written. The response insert carries the
// same insert-only duplicate guard as votes.
func RecordResponse(dbc *sql.DB, poll models.Poll, answers []models.Answer, ident identity.Identity) (models.Response, error) {
	if poll.Kind != models.KindSurvey {
		return models.Response{}, fmt.Errorf("%w: poll does not accept responses", ErrValidation)
	}
	if len(answers) == 0 {
		return models.Response{}, fmt.Errorf("%w: answers are required", ErrValidation)
	}

	known := make(map[string]bool, len(poll.Questions))
	for _, q := range poll.Questions {
		known[q.ID] = true
	}
	seen := make(map[string]bool, len(answers))
	for _, a := range answers {
		if !known[a.QuestionID] {
			return models.Response{}, fmt.Errorf("%w: question %q is not on this poll", ErrValidation, a.QuestionID)
		}
		if seen[a.QuestionID] {
			return models.Response{}, fmt.Errorf("%w: question %q answered twice", ErrValidation, a.QuestionID)
		}
		seen[a.QuestionID] = true
	}

	resp := models.Response{
		ID:          uuid.NewString(),
		PollID:      poll.ID,
		UserID:      ident.UserID,
		Address:     ident.Address,
		Answers:     answers,
		SubmittedAt: time.Now(),
	}

	tx, err := dbc.Begin()
	if err != nil {
		return models.Response{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO response (id, poll_id, user_id, address, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
	`, resp.ID, resp.PollID, resp.UserID, resp.Address, resp.SubmittedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return models.Response{}, ErrDuplicateSubmission
		}
		return models.Response{}, fmt.Errorf("failed to insert response: %w", err)
	}

	for i, a := range answers {
		_, err = tx.Exec(`
			INSERT INTO answer (response_id, question_id, position, answer_text)
			VALUES ($1, $2, $3, $4)
		`, resp.ID, a.QuestionID, i, a.Answer)
		if err != nil {
			return models.Response{}, fmt.Errorf("failed to insert answer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Response{}, fmt.Errorf("failed to commit response: %w", err)
	}
	return resp, nil
}

// GetResponses returns a survey's recorded responses with their
// answers, newest first. Owner-only; respondent identities stay out of
// the result.
func GetResponses(dbc *sql.DB, poll models.Poll, callerID string) ([]models.Response, error) {
	if poll.OwnerID != callerID {
		if !poll.Public {
			return nil, ErrNotFound
		}
		return nil, ErrForbidden
	}
	if poll.Kind != models.KindSurvey {
		return nil, fmt.Errorf("%w: poll has no responses", ErrValidation)
	}

	rows, err := dbc.Query(`
		SELECT id, submitted_at FROM response
		WHERE poll_id = $1
		ORDER BY submitted_at DESC, id
	`, poll.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}
	defer rows.Close()

	responses := []models.Response{}
	for rows.Next() {
		resp := models.Response{PollID: poll.ID}
		if err := rows.Scan(&resp.ID, &resp.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		responses = append(responses, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range responses {
		answers, err := loadAnswers(dbc, responses[i].ID)
		if err != nil {
			return nil, err
		}
		responses[i].Answers = answers
	}
	return responses, nil
}

func loadAnswers(dbc *sql.DB, responseID string) ([]models.Answer, error) {
	rows, err := dbc.Query(`
		SELECT question_id, answer_text FROM answer
		WHERE response_id = $1
		ORDER BY position
	`, responseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers: %w", err)
	}
	defer rows.Close()

	answers := []models.Answer{}
	for rows.Next() {
		var a models.Answer
		if err := rows.Scan(&a.QuestionID, &a.Answer); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

// HasSubmitted reports whether the identity already has a ledger entry
// for the poll, on either dedup axis. Informational only: the write
// path never consults this.
func HasSubmitted(dbc *sql.DB, poll models.Poll, ident identity.Identity) (bool, error) {
	table := "vote"
	if poll.Kind == models.KindSurvey {
		table = "response"
	}

	var userID any
	if ident.UserID != nil {
		userID = *ident.UserID
	}

	var exists bool
	err := dbc.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM `+table+`
			WHERE poll_id = $1 AND (address = $2 OR user_id = $3)
		)
	`, poll.ID, ident.Address, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check prior submission: %w", err)
	}
	return exists, nil
}

// CountResponses returns the number of responses recorded for a poll.
func CountResponses(dbc *sql.DB, pollID string) (int, error) {
	var count int
	err := dbc.QueryRow(`SELECT COUNT(*) FROM response WHERE poll_id = $1`, pollID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return count, nil
}
