// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/formiq/formiq/cliparse"
	"github.com/formiq/formiq/genai"
	"github.com/formiq/formiq/handlers"
	"github.com/formiq/formiq/metrics"
	"github.com/formiq/formiq/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, gen genai.Generator, m *metrics.Metrics) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg, m)
	analyticsHandler := handlers.NewAnalyticsHandler(db, cfg)
	genaiHandler := handlers.NewGenAIHandler(gen)

	// public wraps a handler with logging, metrics, and optional auth
	public := func(route string, h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithMetrics(m, route, middleware.OptionalAuth(cfg.JWTSecret, h)))
	}
	// owner additionally requires a valid bearer token
	owner := func(route string, h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithMetrics(m, route, middleware.RequireAuth(cfg.JWTSecret, h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll management (owner operations)
	mux.HandleFunc("POST /polls", owner("create_poll", pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls/mine", owner("my_polls", pollHandler.GetMyPolls))
	mux.HandleFunc("PUT /polls/{id}", owner("update_poll", pollHandler.UpdatePoll))
	mux.HandleFunc("DELETE /polls/{id}", owner("delete_poll", pollHandler.DeletePoll))
	mux.HandleFunc("POST /polls/{id}/duplicate", owner("duplicate_poll", pollHandler.DuplicatePoll))
	mux.HandleFunc("GET /polls/{id}/responses", owner("list_responses", analyticsHandler.GetResponses))
	mux.HandleFunc("GET /polls/{id}/questions/{questionId}/analytics", owner("question_analytics", analyticsHandler.GetQuestionAnalytics))

	// Public poll view and submissions (guests allowed)
	mux.HandleFunc("GET /polls/{slug}", public("get_poll", pollHandler.GetPoll))
	mux.HandleFunc("POST /polls/{id}/votes", public("submit_vote", votingHandler.SubmitVote))
	mux.HandleFunc("POST /polls/{id}/responses", public("submit_response", votingHandler.SubmitResponse))

	// Question generation
	mux.HandleFunc("POST /ai/questions", owner("generate_questions", genaiHandler.GenerateQuestions))

	// Prometheus metrics
	mux.Handle("GET /metrics", metrics.Handler())

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("FormIQ API v1"))
	})

	return mux
}
