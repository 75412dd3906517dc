// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package genai

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/formiq/formiq/models"
)

// ErrGenerationFailed wraps any provider failure. It is deliberately
// outside the store's error taxonomy; the handler maps it to 502.
var ErrGenerationFailed = errors.New("question generation failed")

// agreementScale is the fixed answer scale attached to every generated
// question.
var agreementScale = []string{"Strongly Agree", "Agree", "Neutral", "Disagree", "Strongly Disagree"}

// Generator produces survey questions for a topic. Implementations are
// injected into the handler; there is no package-level client.
type Generator interface {
	GenerateQuestions(ctx context.Context, topic string, count int) ([]models.QuestionInput, error)
}

var numberPrefix = regexp.MustCompile(`^\d+[.)]?\s*`)

// parseNumberedList splits a model completion into clean question
// lines, stripping list numbering and blank lines.
func parseNumberedList(raw string) []string {
	lines := strings.Split(raw, "\n")
	questions := make([]string, 0, len(lines))
	for _, line := range lines {
		q := strings.TrimSpace(numberPrefix.ReplaceAllString(strings.TrimSpace(line), ""))
		if q != "" {
			questions = append(questions, q)
		}
	}
	return questions
}

// withScale attaches the fixed agreement scale to each question text.
func withScale(texts []string) []models.QuestionInput {
	questions := make([]models.QuestionInput, 0, len(texts))
	for _, text := range texts {
		questions = append(questions, models.QuestionInput{
			Text:    text,
			Options: agreementScale,
		})
	}
	return questions
}
