package service

import (
	"context"
	"fmt"
	"strings"

	"skill-daily/internal/model"

	"google.golang.org/genai"
)

// GeminiGenerator asks a Gemini model for a JSON task list.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, modelName string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	return &GeminiGenerator{client: client, model: modelName}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, req model.PlanRequest) ([]string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(planPrompt(req)), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(planSystemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		return nil, classifyGenAIError(err)
	}
	return parseTasks(resp.Text())
}

func classifyGenAIError(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "RESOURCE_EXHAUSTED") || strings.Contains(msg, "429") {
		return fmt.Errorf("gemini generate: %v: %w", err, model.ErrQuotaExceeded)
	}
	return fmt.Errorf("gemini generate: %v: %w", err, model.ErrExternalService)
}
