// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package cliparse turns CLI flags and environment variables into the
// server Config. Flags win over env; JWT_SECRET and DATABASE_URL are
// required, OPENAI_KEY is optional (question generation fails politely
// without it). Secrets should come from the environment in production.
package cliparse
