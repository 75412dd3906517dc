// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/formiq/formiq/models"
)

// Error taxonomy. Handlers map these to HTTP status codes; anything
// else coming out of the store is an unexpected persistence failure.
var (
	ErrValidation          = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrDuplicateSubmission = errors.New("duplicate submission")
)

// visibleTo reports whether a poll can be seen by the caller. Private
// polls are only visible to their owner; lookups by others report
// not-found rather than forbidden, to avoid leaking existence.
func visibleTo(p models.Poll, callerID *string) bool {
	if p.Public {
		return true
	}
	return callerID != nil && *callerID == p.OwnerID
}

func loadOptions(dbc *sql.DB, pollID string) ([]string, error) {
	rows, err := dbc.Query(`
		SELECT label FROM poll_option
		WHERE poll_id = $1
		ORDER BY position
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	options := []string{}
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, label)
	}
	return options, rows.Err()
}

func loadQuestions(dbc *sql.DB, pollID string) ([]models.Question, error) {
	rows, err := dbc.Query(`
		SELECT id, text, option_labels FROM question
		WHERE poll_id = $1
		ORDER BY position
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		var labels string
		if err := rows.Scan(&q.ID, &q.Text, &labels); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		if err := json.Unmarshal([]byte(labels), &q.Options); err != nil {
			return nil, fmt.Errorf("failed to decode question options: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
