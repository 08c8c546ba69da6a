package completion

import (
	"context"
	"fmt"
	"net/http"
	"quiz-api/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/schema"
)

// LangChainProvider implements domain.CompletionProvider on top of any
// langchaingo model. langchaingo does not surface a response identifier, so
// completions from it carry an empty ID and the session id strategy decides.
type LangChainProvider struct {
	llm   llms.Model
	model string
}

// NewLangChainProvider wraps an already constructed langchaingo model.
func NewLangChainProvider(llm llms.Model, model string) *LangChainProvider {
	return &LangChainProvider{llm: llm, model: model}
}

// NewOllamaProvider creates a provider backed by an Ollama server.
func NewOllamaProvider(serverURL, model string, httpClient *http.Client) (*LangChainProvider, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("ollama model name cannot be empty")
	}

	opts := []ollama.Option{
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
		ollama.WithFormat("json"),
	}
	if httpClient != nil {
		opts = append(opts, ollama.WithHTTPClient(httpClient))
	}

	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create LangchainGo Ollama client: %w", err)
	}
	return NewLangChainProvider(llm, model), nil
}

// Complete implements domain.CompletionProvider.
func (p *LangChainProvider) Complete(ctx context.Context, req domain.CompletionRequest) (*domain.Completion, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeHuman, req.Prompt),
	}

	resp, err := p.llm.GenerateContent(ctx, messages,
		llms.WithMaxTokens(req.MaxTokens),
		llms.WithTemperature(req.Temperature),
	)
	if err != nil {
		return nil, fmt.Errorf("langchain completion failed: %w", err)
	}

	out := &domain.Completion{Model: p.model}
	if resp != nil && len(resp.Choices) > 0 && resp.Choices[0] != nil {
		choice := resp.Choices[0]
		out.Text = choice.Content
		out.Usage = usageFromGenerationInfo(choice.GenerationInfo)
	}
	return out, nil
}

// usageFromGenerationInfo reads the token counters providers put in GenerationInfo.
func usageFromGenerationInfo(info map[string]any) domain.TokenUsage {
	get := func(keys ...string) int {
		for _, k := range keys {
			switch v := info[k].(type) {
			case int:
				return v
			case int64:
				return int(v)
			case float64:
				return int(v)
			}
		}
		return 0
	}

	usage := domain.TokenUsage{
		PromptTokens:     get("PromptTokens", "prompt_tokens"),
		CompletionTokens: get("CompletionTokens", "completion_tokens"),
		TotalTokens:      get("TotalTokens", "total_tokens"),
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
	}
	return usage
}

var _ domain.CompletionProvider = (*LangChainProvider)(nil)
