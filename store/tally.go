// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"

	"github.com/formiq/formiq/models"
)

// TallyVotes aggregates a choice poll's votes per declared option, in
// declared order, defaulting missing counts to zero. Votes whose label
// was edited off the poll are not listed. The result is a best-effort
// snapshot: it is not transactional with concurrent submissions.
func TallyVotes(dbc *sql.DB, poll models.Poll) (models.Tally, error) {
	if poll.Kind != models.KindChoice {
		return models.Tally{}, fmt.Errorf("%w: poll has no vote tally", ErrValidation)
	}

	rows, err := dbc.Query(`
		SELECT option_label, COUNT(*)
		FROM vote
		WHERE poll_id = $1
		GROUP BY option_label
	`, poll.ID)
	if err != nil {
		return models.Tally{}, fmt.Errorf("failed to query tally: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var label string
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return models.Tally{}, fmt.Errorf("failed to scan tally row: %w", err)
		}
		counts[label] = count
	}
	if err := rows.Err(); err != nil {
		return models.Tally{}, err
	}

	tally := models.Tally{Options: make([]models.OptionCount, 0, len(poll.Options))}
	for _, label := range poll.Options {
		count := counts[label]
		tally.Options = append(tally.Options, models.OptionCount{Option: label, Count: count})
		tally.Total += count
	}
	return tally, nil
}

// TallyQuestion aggregates one survey question's answers per literal
// answer text. Only the poll owner may read it; free-text or stale
// answers show up as keys beyond the declared option labels.
func TallyQuestion(dbc *sql.DB, poll models.Poll, questionID, callerID string) (models.QuestionTally, error) {
	if poll.OwnerID != callerID {
		if !poll.Public {
			return models.QuestionTally{}, ErrNotFound
		}
		return models.QuestionTally{}, ErrForbidden
	}

	var question *models.Question
	for i := range poll.Questions {
		if poll.Questions[i].ID == questionID {
			question = &poll.Questions[i]
			break
		}
	}
	if question == nil {
		return models.QuestionTally{}, fmt.Errorf("%w: question %q is not on this poll", ErrValidation, questionID)
	}

	rows, err := dbc.Query(`
		SELECT a.answer_text, COUNT(*)
		FROM answer a
		JOIN response r ON a.response_id = r.id
		WHERE r.poll_id = $1 AND a.question_id = $2
		GROUP BY a.answer_text
	`, poll.ID, questionID)
	if err != nil {
		return models.QuestionTally{}, fmt.Errorf("failed to query question tally: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var text string
		var count int
		if err := rows.Scan(&text, &count); err != nil {
			return models.QuestionTally{}, fmt.Errorf("failed to scan answer count: %w", err)
		}
		counts[text] = count
	}
	if err := rows.Err(); err != nil {
		return models.QuestionTally{}, err
	}

	return models.QuestionTally{
		Question: question.Text,
		Options:  question.Options,
		Counts:   counts,
	}, nil
}
