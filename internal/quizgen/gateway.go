package quizgen

import (
	"context"
	"fmt"

	"quiz-api/internal/domain"

	"go.uber.org/zap"
)

// Gateway turns a prompt into a validated quiz batch through a completion provider.
type Gateway struct {
	provider    domain.CompletionProvider
	sessionIDs  domain.SessionIDStrategy
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

// NewGateway creates a Gateway. maxTokens and temperature are passed to every
// completion request unchanged.
func NewGateway(provider domain.CompletionProvider, sessionIDs domain.SessionIDStrategy, maxTokens int, temperature float64, logger *zap.Logger) (*Gateway, error) {
	if provider == nil {
		return nil, fmt.Errorf("completion provider cannot be nil")
	}
	if sessionIDs == nil {
		return nil, fmt.Errorf("session id strategy cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		provider:    provider,
		sessionIDs:  sessionIDs,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}, nil
}

// GenerateQuizBatch requests one completion for prompt and parses it.
// expected is the number of questions the prompt asked for and is only used
// for diagnostics; the generator may return a different, still aligned, count.
//
// Errors carry domain codes GENERATION_UNAVAILABLE, EMPTY_COMPLETION or
// MALFORMED_BATCH. The call is never retried.
func (g *Gateway) GenerateQuizBatch(ctx context.Context, prompt string, expected int) (*domain.QuizBatch, string, error) {
	completion, err := g.provider.Complete(ctx, domain.CompletionRequest{
		Prompt:      prompt,
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		g.logger.Error("Completion request failed", zap.Error(err))
		return nil, "", domain.NewGenerationUnavailableError(err)
	}
	if completion == nil {
		return nil, "", domain.NewEmptyCompletionError()
	}

	g.logger.Info("Completion received",
		zap.String("completion_id", completion.ID),
		zap.String("model", completion.Model),
		zap.Int("prompt_tokens", completion.Usage.PromptTokens),
		zap.Int("completion_tokens", completion.Usage.CompletionTokens),
		zap.Int("total_tokens", completion.Usage.TotalTokens),
	)

	batch, err := ParseBatch(completion.Text)
	if err != nil {
		if domain.HasCode(err, domain.ErrEmptyCompletion) {
			g.logger.Warn("Completion returned no content", zap.String("completion_id", completion.ID))
		} else {
			g.logger.Error("Completion could not be parsed into a quiz batch",
				zap.Error(err),
				zap.String("completion_id", completion.ID),
				zap.Int("text_length", len(completion.Text)),
			)
		}
		return nil, "", err
	}

	if len(batch.Questions) != expected {
		g.logger.Warn("Generated question count differs from request",
			zap.Int("requested", expected),
			zap.Int("generated", len(batch.Questions)),
		)
	}

	sessionID := g.sessionIDs.SessionID(completion.ID)
	return batch, sessionID, nil
}
