// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the request, response, and domain types for the
FormIQ API.

# Poll Kinds

A poll is exactly one of two kinds:

  - "choice": a flat option list; respondents pick one option (a Vote)
  - "survey": an ordered question list; respondents answer every
    question they choose to (a Response)

The kind is fixed at creation and determines which submission and
aggregation paths apply.

# Respondent Fields

Vote and Response carry the respondent's user ID (nil for guests) and
network address. Both are used only for duplicate detection and are
never serialized into API responses.
*/
package models
