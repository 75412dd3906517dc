// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    owner_id TEXT NOT NULL,
    kind TEXT NOT NULL CHECK (kind IN ('choice', 'survey')),
    public BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_poll_slug ON poll(slug);
CREATE INDEX IF NOT EXISTS idx_poll_owner ON poll(owner_id);

-- Declared options for choice polls
CREATE TABLE IF NOT EXISTS poll_option (
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    label TEXT NOT NULL,
    PRIMARY KEY (poll_id, position)
);

-- Questions for survey polls; option labels stored as a JSON array
CREATE TABLE IF NOT EXISTS question (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    text TEXT NOT NULL,
    option_labels TEXT NOT NULL,
    UNIQUE (poll_id, position)
);

CREATE INDEX IF NOT EXISTS idx_question_poll_id ON question(poll_id);

-- Votes (choice polls). The two unique indexes below are the submission
-- guard: a repeat identity violates one of them and the insert fails.
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    option_label TEXT NOT NULL,
    user_id TEXT,
    address TEXT NOT NULL,
    submitted_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vote_poll_id ON vote(poll_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_vote_poll_user ON vote(poll_id, user_id) WHERE user_id IS NOT NULL;
CREATE UNIQUE INDEX IF NOT EXISTS idx_vote_poll_address ON vote(poll_id, address);

-- Responses (survey polls), guarded the same way as votes
CREATE TABLE IF NOT EXISTS response (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    user_id TEXT,
    address TEXT NOT NULL,
    submitted_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_response_poll_id ON response(poll_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_response_poll_user ON response(poll_id, user_id) WHERE user_id IS NOT NULL;
CREATE UNIQUE INDEX IF NOT EXISTS idx_response_poll_address ON response(poll_id, address);

-- Per-question answers belonging to a response
CREATE TABLE IF NOT EXISTS answer (
    response_id TEXT NOT NULL REFERENCES response(id) ON DELETE CASCADE,
    question_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    answer_text TEXT NOT NULL,
    PRIMARY KEY (response_id, question_id)
);

CREATE INDEX IF NOT EXISTS idx_answer_question_id ON answer(question_id);
`
