// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/formiq/formiq/auth"
	"github.com/formiq/formiq/db"
	"github.com/formiq/formiq/models"
)

// maxSlugAttempts bounds the retry loop on slug collisions. With 48
// bits of slug entropy a second attempt is already extremely rare.
const maxSlugAttempts = 5

// CreatePoll persists a new poll owned by ownerID. Exactly one of
// options or questions must be provided; the poll is public by
// default and its slug is generated here, retrying on collision.
func CreatePoll(dbc *sql.DB, ownerID string, req models.CreatePollRequest) (models.Poll, error) {
	if req.Title == "" {
		return models.Poll{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(req.Options) == 0 && len(req.Questions) == 0 {
		return models.Poll{}, fmt.Errorf("%w: options or questions are required", ErrValidation)
	}
	if len(req.Options) > 0 && len(req.Questions) > 0 {
		return models.Poll{}, fmt.Errorf("%w: a poll has either options or questions, not both", ErrValidation)
	}
	for _, opt := range req.Options {
		if opt == "" {
			return models.Poll{}, fmt.Errorf("%w: option labels must not be empty", ErrValidation)
		}
	}
	for _, q := range req.Questions {
		if q.Text == "" {
			return models.Poll{}, fmt.Errorf("%w: question text must not be empty", ErrValidation)
		}
	}

	kind := models.KindChoice
	if len(req.Questions) > 0 {
		kind = models.KindSurvey
	}

	now := time.Now()
	poll := models.Poll{
		ID:        uuid.NewString(),
		Title:     req.Title,
		OwnerID:   ownerID,
		Kind:      kind,
		Public:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		slug, err := auth.GenerateSlug()
		if err != nil {
			return models.Poll{}, err
		}
		poll.Slug = slug

		tx, err := dbc.Begin()
		if err != nil {
			return models.Poll{}, fmt.Errorf("failed to begin transaction: %w", err)
		}

		_, err = tx.Exec(`
			INSERT INTO poll (id, title, slug, owner_id, kind, public, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, poll.ID, poll.Title, poll.Slug, poll.OwnerID, poll.Kind, poll.Public, poll.CreatedAt, poll.UpdatedAt)
		if err != nil {
			tx.Rollback()
			if db.IsUniqueViolation(err) {
				// Slug collision; try a fresh one
				continue
			}
			return models.Poll{}, fmt.Errorf("failed to insert poll: %w", err)
		}

		if kind == models.KindChoice {
			if err := insertOptions(tx, poll.ID, req.Options); err != nil {
				tx.Rollback()
				return models.Poll{}, err
			}
			poll.Options = req.Options
		} else {
			questions, err := insertQuestions(tx, poll.ID, req.Questions)
			if err != nil {
				tx.Rollback()
				return models.Poll{}, err
			}
			poll.Questions = questions
		}

		if err := tx.Commit(); err != nil {
			return models.Poll{}, fmt.Errorf("failed to commit poll: %w", err)
		}
		return poll, nil
	}

	return models.Poll{}, fmt.Errorf("failed to generate a unique slug after %d attempts", maxSlugAttempts)
}

func insertOptions(tx *sql.Tx, pollID string, options []string) error {
	for i, label := range options {
		_, err := tx.Exec(`
			INSERT INTO poll_option (poll_id, position, label)
			VALUES ($1, $2, $3)
		`, pollID, i, label)
		if err != nil {
			return fmt.Errorf("failed to insert option: %w", err)
		}
	}
	return nil
}

func insertQuestions(tx *sql.Tx, pollID string, inputs []models.QuestionInput) ([]models.Question, error) {
	questions := make([]models.Question, 0, len(inputs))
	for _, in := range inputs {
		questions = append(questions, models.Question{
			ID:      uuid.NewString(),
			Text:    in.Text,
			Options: in.Options,
		})
	}
	if err := writeQuestions(tx, pollID, questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func writeQuestions(tx *sql.Tx, pollID string, questions []models.Question) error {
	for i, q := range questions {
		labels, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("failed to encode question options: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO question (id, poll_id, position, text, option_labels)
			VALUES ($1, $2, $3, $4, $5)
		`, q.ID, pollID, i, q.Text, string(labels))
		if err != nil {
			return fmt.Errorf("failed to insert question: %w", err)
		}
	}
	return nil
}

// retainQuestionIDs maps an update's question list onto the poll's
// current questions. A question whose text survives the edit keeps its
// id, so answers already recorded against it stay attached; only
// genuinely new questions get fresh ids. Matching prefers the same
// position, then falls back to the same text anywhere in the list.
func retainQuestionIDs(existing []models.Question, inputs []models.QuestionInput) []models.Question {
	questions := make([]models.Question, len(inputs))
	claimed := make([]bool, len(existing))

	for i, in := range inputs {
		if i < len(existing) && !claimed[i] && existing[i].Text == in.Text {
			questions[i] = models.Question{ID: existing[i].ID, Text: in.Text, Options: in.Options}
			claimed[i] = true
		}
	}
	for i, in := range inputs {
		if questions[i].ID != "" {
			continue
		}
		for j := range existing {
			if !claimed[j] && existing[j].Text == in.Text {
				questions[i] = models.Question{ID: existing[j].ID, Text: in.Text, Options: in.Options}
				claimed[j] = true
				break
			}
		}
		if questions[i].ID == "" {
			questions[i] = models.Question{ID: uuid.NewString(), Text: in.Text, Options: in.Options}
		}
	}
	return questions
}

func getPoll(dbc *sql.DB, column, value string) (models.Poll, error) {
	var poll models.Poll
	err := dbc.QueryRow(`
		SELECT id, title, slug, owner_id, kind, public, created_at, updated_at
		FROM poll
		WHERE `+column+` = $1
	`, value).Scan(
		&poll.ID, &poll.Title, &poll.Slug, &poll.OwnerID,
		&poll.Kind, &poll.Public, &poll.CreatedAt, &poll.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Poll{}, ErrNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query poll: %w", err)
	}

	if poll.Kind == models.KindChoice {
		poll.Options, err = loadOptions(dbc, poll.ID)
	} else {
		poll.Questions, err = loadQuestions(dbc, poll.ID)
	}
	if err != nil {
		return models.Poll{}, err
	}
	return poll, nil
}

// GetPollByID fetches a poll without any visibility filtering. Callers
// that act on behalf of a respondent must apply visibleTo themselves
// or use GetPollBySlug.
func GetPollByID(dbc *sql.DB, id string) (models.Poll, error) {
	return getPoll(dbc, "id", id)
}

// GetVisiblePollByID fetches a poll by id on behalf of a respondent,
// applying the same visibility rule as slug lookup.
func GetVisiblePollByID(dbc *sql.DB, id string, callerID *string) (models.Poll, error) {
	poll, err := getPoll(dbc, "id", id)
	if err != nil {
		return models.Poll{}, err
	}
	if !visibleTo(poll, callerID) {
		return models.Poll{}, ErrNotFound
	}
	return poll, nil
}

// GetPollBySlug fetches a poll by its public slug. A private poll is
// reported as not found to anyone but its owner.
func GetPollBySlug(dbc *sql.DB, slug string, callerID *string) (models.Poll, error) {
	poll, err := getPoll(dbc, "slug", slug)
	if err != nil {
		return models.Poll{}, err
	}
	if !visibleTo(poll, callerID) {
		return models.Poll{}, ErrNotFound
	}
	return poll, nil
}

// GetPollsByOwner returns the owner's polls, newest first, enriched
// with current tallies and submission counts.
func GetPollsByOwner(dbc *sql.DB, ownerID string) ([]models.OwnerPoll, error) {
	rows, err := dbc.Query(`
		SELECT id FROM poll
		WHERE owner_id = $1
		ORDER BY created_at DESC, id
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan poll id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	polls := []models.OwnerPoll{}
	for _, id := range ids {
		poll, err := GetPollByID(dbc, id)
		if err != nil {
			return nil, err
		}

		enriched := models.OwnerPoll{Poll: poll}
		if poll.Kind == models.KindChoice {
			tally, err := TallyVotes(dbc, poll)
			if err != nil {
				return nil, err
			}
			enriched.Tally = &tally
			enriched.Submissions = tally.Total
		} else {
			count, err := CountResponses(dbc, poll.ID)
			if err != nil {
				return nil, err
			}
			enriched.Submissions = count
		}
		polls = append(polls, enriched)
	}
	return polls, nil
}

// UpdatePoll replaces a poll's title and option/question set. Only the
// owner may update; the poll's kind cannot change. Prior submissions
// are kept as-is: votes for removed options become orphaned labels,
// and questions whose text survives the edit keep their ids along with
// any answers already recorded against them.
func UpdatePoll(dbc *sql.DB, id, callerID string, req models.UpdatePollRequest) (models.Poll, error) {
	poll, err := GetPollByID(dbc, id)
	if err != nil {
		return models.Poll{}, err
	}
	if poll.OwnerID != callerID {
		return models.Poll{}, ErrForbidden
	}

	if req.Title == "" {
		return models.Poll{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	switch poll.Kind {
	case models.KindChoice:
		if len(req.Options) == 0 || len(req.Questions) > 0 {
			return models.Poll{}, fmt.Errorf("%w: a choice poll takes a non-empty option list", ErrValidation)
		}
	case models.KindSurvey:
		if len(req.Questions) == 0 || len(req.Options) > 0 {
			return models.Poll{}, fmt.Errorf("%w: a survey takes a non-empty question list", ErrValidation)
		}
	}

	poll.Title = req.Title
	if req.Public != nil {
		poll.Public = *req.Public
	}
	poll.UpdatedAt = time.Now()

	tx, err := dbc.Begin()
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE poll
		SET title = $1, public = $2, updated_at = $3
		WHERE id = $4
	`, poll.Title, poll.Public, poll.UpdatedAt, poll.ID)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to update poll: %w", err)
	}

	if poll.Kind == models.KindChoice {
		if _, err := tx.Exec(`DELETE FROM poll_option WHERE poll_id = $1`, poll.ID); err != nil {
			return models.Poll{}, fmt.Errorf("failed to clear options: %w", err)
		}
		if err := insertOptions(tx, poll.ID, req.Options); err != nil {
			return models.Poll{}, err
		}
		poll.Options = req.Options
	} else {
		questions := retainQuestionIDs(poll.Questions, req.Questions)
		if _, err := tx.Exec(`DELETE FROM question WHERE poll_id = $1`, poll.ID); err != nil {
			return models.Poll{}, fmt.Errorf("failed to clear questions: %w", err)
		}
		if err := writeQuestions(tx, poll.ID, questions); err != nil {
			return models.Poll{}, err
		}
		poll.Questions = questions
	}

	if err := tx.Commit(); err != nil {
		return models.Poll{}, fmt.Errorf("failed to commit update: %w", err)
	}
	return poll, nil
}

// DeletePoll removes a poll and, through the schema's cascades, its
// votes, responses, and answers. Historical tallies do not survive
// deletion.
func DeletePoll(dbc *sql.DB, id, callerID string) error {
	var ownerID string
	err := dbc.QueryRow(`SELECT owner_id FROM poll WHERE id = $1`, id).Scan(&ownerID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query poll: %w", err)
	}
	if ownerID != callerID {
		return ErrForbidden
	}

	if _, err := dbc.Exec(`DELETE FROM poll WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	return nil
}

// DuplicatePoll copies a poll's title and option/question set into a
// fresh poll owned by the caller, with a new slug and no submissions.
func DuplicatePoll(dbc *sql.DB, id, callerID string) (models.Poll, error) {
	poll, err := GetPollByID(dbc, id)
	if err != nil {
		return models.Poll{}, err
	}
	if !visibleTo(poll, &callerID) {
		return models.Poll{}, ErrNotFound
	}

	req := models.CreatePollRequest{Title: poll.Title + " (copy)"}
	if poll.Kind == models.KindChoice {
		req.Options = poll.Options
	} else {
		for _, q := range poll.Questions {
			req.Questions = append(req.Questions, models.QuestionInput{Text: q.Text, Options: q.Options})
		}
	}
	return CreatePoll(dbc, callerID, req)
}
