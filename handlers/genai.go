// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/formiq/formiq/genai"
	"github.com/formiq/formiq/middleware"
	"github.com/formiq/formiq/models"
)

// maxGeneratedQuestions bounds one generation request.
const maxGeneratedQuestions = 20

type GenAIHandler struct {
	gen genai.Generator
}

// NewGenAIHandler wires a question generator. gen may be nil when no
// API key is configured; the endpoint then reports unavailability.
func NewGenAIHandler(gen genai.Generator) *GenAIHandler {
	return &GenAIHandler{gen: gen}
}

// GenerateQuestions handles POST /ai/questions
func (h *GenAIHandler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateQuestionsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Topic == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "topic is required")
		return
	}
	if req.Count < 1 || req.Count > maxGeneratedQuestions {
		middleware.ErrorResponse(w, http.StatusBadRequest, "count must be between 1 and 20")
		return
	}

	if h.gen == nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Question generation is not configured")
		return
	}

	questions, err := h.gen.GenerateQuestions(r.Context(), req.Topic, req.Count)
	if err != nil {
		slog.Error("question generation failed", "error", err, "topic", req.Topic)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to generate questions")
		return
	}

	slog.Info("questions generated", "topic", req.Topic, "count", len(questions))

	middleware.JSONResponse(w, http.StatusOK, models.GenerateQuestionsResponse{Questions: questions})
}
