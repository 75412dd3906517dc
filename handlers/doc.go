// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the FormIQ API.

# Handler Types

Each handler is a struct with its dependencies injected:

  - PollHandler: poll lifecycle (create, read, update, delete, duplicate)
  - VotingHandler: vote and response submission
  - AnalyticsHandler: owner-only per-question tallies
  - GenAIHandler: LLM-backed question generation

Handlers are created via constructor functions:

	pollHandler := handlers.NewPollHandler(db, cfg)

# Submission Flow

Respondents reach a poll through its share slug, then submit against
the poll id:

	GET  /polls/{slug}          → poll view + tally + has_submitted
	POST /polls/{id}/votes      → one option choice (choice polls)
	POST /polls/{id}/responses  → per-question answers (surveys)

Both submission paths resolve the respondent identity (optional JWT
user + client address) and rely on the store's insert-only duplicate
guard; a second submission from the same identity gets a 400.

# Owner Operations

Creating, listing, updating, deleting, duplicating polls and reading
question analytics require a valid Bearer token, enforced by the
router's RequireAuth wrapping. Ownership itself is checked in the
store, so a token for the wrong user yields a 403.
*/
package handlers
