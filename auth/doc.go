// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides slug generation and bearer-token verification.

# Share Slugs

GenerateSlug produces a short random base62 token used as a poll's
public lookup key. Slugs carry no information about the poll; global
uniqueness is enforced by the poll table's UNIQUE constraint, with the
store retrying on the rare collision.

# Bearer Tokens

Tokens are HS256 JWTs carrying the user ID in the "id" claim. This
package only verifies tokens presented to the API; issuing them is the
account service's job (SignToken exists for tests and dev tooling).
Respondents without a token are treated as guests throughout.
*/
package auth
