package completion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"quiz-api/internal/domain"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements domain.CompletionProvider with the OpenAI chat
// completions API. Any OpenAI-compatible endpoint works through BaseURL.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(apiKey, baseURL, model string, httpClient *http.Client) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("openai model name cannot be empty")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

// Complete sends prompt as a single user message and returns the first choice.
// A response without choices yields a Completion with empty Text.
func (p *OpenAIProvider) Complete(ctx context.Context, req domain.CompletionRequest) (*domain.Completion, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
	})
	if err != nil {
		return nil, describeOpenAIError(err)
	}

	out := &domain.Completion{
		ID:    resp.ID,
		Model: resp.Model,
		Usage: domain.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
	if len(resp.Choices) > 0 {
		out.Text = resp.Choices[0].Message.Content
	}
	return out, nil
}

func describeOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("openai rate limited: %w", err)
		case apiErr.HTTPStatusCode == http.StatusUnauthorized:
			return fmt.Errorf("openai rejected credentials: %w", err)
		case apiErr.HTTPStatusCode >= 500:
			return fmt.Errorf("openai unavailable: %w", err)
		}
	}
	return fmt.Errorf("openai chat completion failed: %w", err)
}

var _ domain.CompletionProvider = (*OpenAIProvider)(nil)
