// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store implements poll persistence, the submission guard, the
vote/response ledger, and tally aggregation over database/sql.

# Error Taxonomy

Store operations return sentinel errors that handlers map to HTTP
statuses:

	ErrValidation          → 400
	ErrDuplicateSubmission → 400
	ErrNotFound            → 404
	ErrForbidden           → 403

Anything else is an unexpected persistence failure and surfaces as a
generic 500 at the boundary.

# Submission Guard

At most one vote/response is allowed per respondent identity per poll.
A prior entry matching the identity's user ID (when present) or its
address blocks a new submission. The guard is the pair of unique
indexes declared in the db package: RecordVote and RecordResponse just
insert, and a uniqueness violation is the only source of
ErrDuplicateSubmission. Two concurrent submissions from one identity
therefore cannot both land.

# Aggregation

Tallies are computed on demand by scanning the ledger. They are
best-effort snapshots with respect to in-flight writes: a vote
recorded a moment earlier may be missing from a concurrently computed
tally. That is expected behavior, not a bug.
*/
package store
