package genai

import (
	"context"
	"fmt"
	"strings"

	gemini "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float64
}

// GeminiEngine generates SQL through the Google Generative AI API. Safe for
// concurrent use.
type GeminiEngine struct {
	client *gemini.Client
	model  *gemini.GenerativeModel
}

func NewGeminiEngine(ctx context.Context, cfg GeminiConfig) (*GeminiEngine, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	modelName := strings.TrimSpace(cfg.Model)
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	client, err := gemini.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &gemini.Content{Parts: []gemini.Part{gemini.Text(systemPrompt)}}
	model.SetTemperature(float32(cfg.Temperature))

	return &GeminiEngine{client: client, model: model}, nil
}

func (e *GeminiEngine) Generate(ctx context.Context, prompt, schemaContext string) (string, error) {
	resp, err := e.model.GenerateContent(ctx, gemini.Text(combinePrompt(prompt, schemaContext)))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty gemini candidates")
	}

	var builder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(gemini.Text); ok {
			builder.WriteString(string(text))
		}
	}
	if builder.Len() == 0 {
		return "", fmt.Errorf("gemini candidate contains no text parts")
	}
	return builder.String(), nil
}
