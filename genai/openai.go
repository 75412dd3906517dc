// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package genai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/formiq/formiq/models"
)

const systemPrompt = "You are a helpful assistant that writes only clean, numbered survey questions."

// OpenAI generates questions through the OpenAI chat completions API.
type OpenAI struct {
	client openai.Client
	model  openai.ChatModel
}

// NewOpenAI builds a generator for the given API key.
func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  openai.ChatModelGPT3_5Turbo,
	}
}

// GenerateQuestions asks the model for count questions about topic and
// parses the numbered list it returns. Every question carries the
// fixed five-point agreement scale.
func (g *OpenAI) GenerateQuestions(ctx context.Context, topic string, count int) ([]models.QuestionInput, error) {
	prompt := fmt.Sprintf(
		"Generate %d clear and professional survey questions about %q. "+
			"Return them as a numbered list, one per line, without any explanations or formatting.",
		count, topic,
	)

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", ErrGenerationFailed)
	}

	texts := parseNumberedList(completion.Choices[0].Message.Content)
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: no questions in completion", ErrGenerationFailed)
	}
	return withScale(texts), nil
}
