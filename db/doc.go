// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db owns the relational schema and driver-level error helpers.

# Schema

CreateSchema is idempotent and runs at startup:

	if err := db.CreateSchema(dbConn); err != nil { ... }

The same DDL works on PostgreSQL (production) and SQLite (development
and tests). All timestamps are written explicitly by the application,
so no database-specific defaults are needed.

# Submission Guard

Duplicate submissions are prevented by two partial unique indexes on
each ledger table:

	(poll_id, user_id)  WHERE user_id IS NOT NULL
	(poll_id, address)

A repeat identity violates one of them on insert; IsUniqueViolation
recognizes the violation for both drivers so the store can map it to
a duplicate-submission error. There is no read-then-write check
anywhere, which closes the race between concurrent submissions from
the same identity.
*/
package db
