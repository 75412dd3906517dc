// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/formiq/formiq/auth"
	"github.com/formiq/formiq/cliparse"
	"github.com/formiq/formiq/db"
	"github.com/formiq/formiq/identity"
	"github.com/formiq/formiq/models"
	"github.com/formiq/formiq/store"
)

// SetupTestDB opens a fresh in-memory SQLite database with the full
// schema. MaxOpenConns is pinned to 1: an in-memory database exists
// per connection, and the single connection also serializes the
// concurrency tests the way a shared server would.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbc, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	dbc.SetMaxOpenConns(1)

	if err := db.CreateSchema(dbc); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return dbc
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         5000,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		JWTSecret:    "test-secret",
	}
}

// CreateChoicePoll creates a choice poll owned by ownerID
func CreateChoicePoll(t *testing.T, dbc *sql.DB, ownerID, title string, options []string) models.Poll {
	t.Helper()

	poll, err := store.CreatePoll(dbc, ownerID, models.CreatePollRequest{
		Title:   title,
		Options: options,
	})
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return poll
}

// CreateSurveyPoll creates a survey poll owned by ownerID
func CreateSurveyPoll(t *testing.T, dbc *sql.DB, ownerID, title string, questions []models.QuestionInput) models.Poll {
	t.Helper()

	poll, err := store.CreatePoll(dbc, ownerID, models.CreatePollRequest{
		Title:     title,
		Questions: questions,
	})
	if err != nil {
		t.Fatalf("Failed to create test survey: %v", err)
	}
	return poll
}

// GuestIdentity builds a guest identity for the given address
func GuestIdentity(address string) identity.Identity {
	return identity.Identity{Address: address}
}

// UserIdentity builds an authenticated identity
func UserIdentity(userID, address string) identity.Identity {
	return identity.Identity{UserID: &userID, Address: address}
}

// AuthHeader returns an Authorization header map for the given user
func AuthHeader(t *testing.T, cfg cliparse.Config, userID string) map[string]string {
	t.Helper()

	token, err := auth.SignToken(userID, cfg.JWTSecret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
