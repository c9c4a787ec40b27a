package llm

import (
	"context"
	"errors"
	"fmt"

	"ai-fitness-coach/internal/config"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrNoAPIKey is returned when the ambient Gemini credential is absent.
var ErrNoAPIKey = errors.New("gemini api key is not set")

// StructuredGenerator is a client that produces schema-constrained JSON.
type StructuredGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (ContentResponse, error)
	Close() error
}

// geminiClient is a client for the Google Gemini API.
type geminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates a new Gemini API client.
func NewGeminiClient(ctx context.Context, cfg *config.Config) (StructuredGenerator, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, ErrNoAPIKey
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiClient{client: client, modelName: cfg.GeminiModel}, nil
}

// GenerateJSON sends a prompt to the Gemini model and returns the raw JSON
// text, constrained by the given response schema. An empty reply is not an
// error here; the caller decides how to treat it.
func (c *geminiClient) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (ContentResponse, error) {
	model := c.client.GenerativeModel(c.modelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = schema

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return ContentResponse{}, err
	}

	out := ContentResponse{Usage: usageFrom(resp, c.modelName)}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return out, nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.Content += string(text)
		}
	}
	return out, nil
}

// Close closes the underlying Gemini client.
func (c *geminiClient) Close() error {
	return c.client.Close()
}

func usageFrom(resp *genai.GenerateContentResponse, model string) TokenUsage {
	usage := TokenUsage{Model: model}
	if resp.UsageMetadata != nil {
		usage.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		usage.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}
	return usage
}
