package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/prompt-arena/arena-go-api/pkg/ai"
)

const generationSystemPrompt = "You are an assistant being driven by a user-written prompt. " +
	"Follow the user's prompt exactly as written and apply it to the provided input. " +
	"Emit only the requested output, with no preamble, commentary, or markdown fences."

const generationTemperature = 0.2

// Generator applies a submitted prompt to one test-case input and returns the
// candidate output.
type Generator interface {
	Apply(ctx context.Context, userPrompt, caseInput string) (string, error)
}

type promptGenerator struct {
	client    ai.CompletionClient
	maxTokens int
	logger    zerolog.Logger
}

// NewGenerator constructs the generation step on top of the completion gateway.
func NewGenerator(client ai.CompletionClient, maxTokens int, logger zerolog.Logger) Generator {
	if maxTokens <= 0 {
		maxTokens = 512
	}

	return &promptGenerator{
		client:    client,
		maxTokens: maxTokens,
		logger:    logger.With().Str("component", "generation_step").Logger(),
	}
}

func (g *promptGenerator) Apply(ctx context.Context, userPrompt, caseInput string) (string, error) {
	var user strings.Builder
	user.WriteString(userPrompt)
	user.WriteString("\n\n--- INPUT ---\n")
	user.WriteString(caseInput)
	user.WriteString("\n--- END INPUT ---")

	output, err := g.client.Complete(ctx, ai.CompletionRequest{
		Messages: []ai.Message{
			{Role: ai.RoleSystem, Content: generationSystemPrompt},
			{Role: ai.RoleUser, Content: user.String()},
		},
		Temperature: generationTemperature,
		MaxTokens:   g.maxTokens,
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(output), nil
}
