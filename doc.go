// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the FormIQ API server.

FormIQ is a poll and survey service: owners publish a poll (flat option
list) or a survey (question list) under a shareable slug, respondents
submit at most one vote or response each, and owners read aggregated
tallies. Survey questions can be generated from a topic via OpenAI.

# Starting the Server

The server requires environment variables or CLI flags for
configuration:

	DATABASE_URL=postgres://... JWT_SECRET=... go run main.go

Or with flags:

	go run main.go -p 5000 -d "file:formiq.db" -t sqlite -jwt-secret dev

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string or SQLite file
  - JWT_SECRET (-jwt-secret): HS256 secret for verifying bearer tokens

Optional settings:

  - PORT (-p): Server port (default: 5000)
  - DATABASE_TYPE (-t): "postgres" or "sqlite" (default: sqlite)
  - OPENAI_KEY (-openai-key): enables question generation

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (polls, voting, analytics, genai)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, optional/required auth
  - models: Request/response and domain types
  - store: Poll persistence, submission guard, ledger, aggregation
  - identity: Respondent identity resolution
  - auth: Slug generation and token verification
  - genai: LLM-backed question generation
  - db: Schema creation and driver error helpers
  - metrics: Prometheus collectors
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
