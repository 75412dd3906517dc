// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Poll kind constants
const (
	KindChoice = "choice"
	KindSurvey = "survey"
)

// Request types

type CreatePollRequest struct {
	Title     string          `json:"title"`
	Options   []string        `json:"options,omitempty"`
	Questions []QuestionInput `json:"questions,omitempty"`
}

type QuestionInput struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

type UpdatePollRequest struct {
	Title     string          `json:"title"`
	Public    *bool           `json:"public,omitempty"`
	Options   []string        `json:"options,omitempty"`
	Questions []QuestionInput `json:"questions,omitempty"`
}

type SubmitVoteRequest struct {
	Option string `json:"option"`
}

type SubmitResponseRequest struct {
	Answers []Answer `json:"answers"`
}

type GenerateQuestionsRequest struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// Response types

type SubmitVoteResponse struct {
	VoteID  string `json:"vote_id"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type GenerateQuestionsResponse struct {
	Questions []QuestionInput `json:"questions"`
}

// PollView is the public poll representation returned by slug lookup.
// Tally is only populated for choice polls; survey analytics are owner-only.
type PollView struct {
	Poll
	Tally        *Tally `json:"tally,omitempty"`
	HasSubmitted bool   `json:"has_submitted"`
}

// OwnerPoll is a poll enriched with current tallies for the owner's listing.
type OwnerPoll struct {
	Poll
	Tally       *Tally `json:"tally,omitempty"`
	Submissions int    `json:"submissions"`
}

// Domain types

type Poll struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Slug      string     `json:"slug"`
	OwnerID   string     `json:"owner_id"`
	Kind      string     `json:"kind"`
	Public    bool       `json:"public"`
	Options   []string   `json:"options,omitempty"`
	Questions []Question `json:"questions,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

type Vote struct {
	ID          string    `json:"id"`
	PollID      string    `json:"poll_id"`
	Option      string    `json:"option"`
	UserID      *string   `json:"-"` // Never expose in JSON
	Address     string    `json:"-"` // Never expose in JSON
	SubmittedAt time.Time `json:"submitted_at"`
}

type Answer struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

type Response struct {
	ID          string    `json:"id"`
	PollID      string    `json:"poll_id"`
	UserID      *string   `json:"-"` // Never expose in JSON
	Address     string    `json:"-"` // Never expose in JSON
	Answers     []Answer  `json:"answers"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Tally types

type OptionCount struct {
	Option string `json:"option"`
	Count  int    `json:"count"`
}

// Tally lists one count per declared poll option, in declared order.
// Options without votes appear with a zero count.
type Tally struct {
	Options []OptionCount `json:"options"`
	Total   int           `json:"total"`
}

// QuestionTally counts occurrences per literal answer text for one question.
// Free-text or stale answers appear as extra keys alongside declared options.
type QuestionTally struct {
	Question string         `json:"question"`
	Options  []string       `json:"options"`
	Counts   map[string]int `json:"counts"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
