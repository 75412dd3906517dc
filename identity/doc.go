// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity resolves who a respondent is.

An Identity is the pair {optional user ID, network address}. The user
ID comes from the optional-auth middleware via the request context; the
address is resolved best-effort through the usual proxy header chain
(X-Forwarded-For, then X-Real-IP, then the connection's RemoteAddr).

Resolution is a pure function of the request; nothing is persisted
here. The store uses the identity's two axes for duplicate detection:
a prior submission matching either the user ID (when present) or the
address blocks a new one.
*/
package identity
