// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package router defines the API routes using Go 1.22+ method routing
// on net/http's ServeMux. Every route is wrapped with logging and
// latency metrics; owner routes additionally require a Bearer token,
// while submission routes accept guests through optional auth.
package router
