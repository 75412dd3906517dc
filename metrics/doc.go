// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics registers the API's prometheus collectors: counters
// for accepted, duplicate, and rejected submissions (labelled by vote
// vs. response) and a request-latency histogram labelled by route.
// The /metrics endpoint serves the default registry.
package metrics
