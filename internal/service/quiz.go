package service

import (
	"context"
	"fmt"

	"quiz-api/internal/config"
	"quiz-api/internal/domain"
	"quiz-api/internal/dto"
	"quiz-api/internal/logger"

	"go.uber.org/zap"
)

// BatchGenerator produces a quiz batch and its session id from a prompt.
type BatchGenerator interface {
	GenerateQuizBatch(ctx context.Context, prompt string, expected int) (*domain.QuizBatch, string, error)
}

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	GetQuizzes(ctx context.Context, counts domain.TopicCounts) (*dto.QuizzesData, error)
	CheckQuiz(ctx context.Context, quizID string, index int, choices []int) (*dto.CheckQuizResponse, error)
	Health(ctx context.Context) error
}

// quizService implements QuizService
type quizService struct {
	generator BatchGenerator
	store     SessionStore
	verifier  *Verifier
	cache     domain.Cache
	quizCfg   config.QuizConfig
}

// NewQuizService creates a new instance of quizService
func NewQuizService(generator BatchGenerator, store SessionStore, cache domain.Cache, quizCfg config.QuizConfig) QuizService {
	return &quizService{
		generator: generator,
		store:     store,
		verifier:  NewVerifier(store),
		cache:     cache,
		quizCfg:   quizCfg,
	}
}

// GetQuizzes builds the prompt, generates a batch and stores its answer key.
// Only the questions leave this method; answers stay in the store.
func (s *quizService) GetQuizzes(ctx context.Context, counts domain.TopicCounts) (*dto.QuizzesData, error) {
	if counts.HTML < 0 || counts.JS < 0 || counts.CSS < 0 {
		return nil, domain.NewInvalidInputError("question counts cannot be negative")
	}

	prompt, total := domain.BuildPrompt(counts)
	if total < 1 {
		return nil, domain.NewInvalidInputError("at least one question must be requested")
	}

	batch, sessionID, err := s.generator.GenerateQuizBatch(ctx, prompt, total)
	if err != nil {
		return nil, err
	}

	ttl := s.quizCfg.TTLFor(total)
	if err := s.store.Put(ctx, sessionID, batch.Answers, ttl); err != nil {
		return nil, fmt.Errorf("store answer key: %w", err)
	}

	logger.Get().Info("Quiz batch generated",
		zap.String("quiz_id", sessionID),
		zap.Int("requested", total),
		zap.Int("generated", len(batch.Questions)),
		zap.Duration("ttl", ttl),
	)

	return &dto.QuizzesData{
		Questions: batch.Questions,
		QuizID:    sessionID,
	}, nil
}

// CheckQuiz verifies one answer of a stored quiz.
func (s *quizService) CheckQuiz(ctx context.Context, quizID string, index int, choices []int) (*dto.CheckQuizResponse, error) {
	result, err := s.verifier.Verify(ctx, quizID, index, choices)
	if err != nil {
		return nil, err
	}

	logger.Get().Debug("Quiz answer checked",
		zap.String("quiz_id", quizID),
		zap.Int("index", index),
		zap.Bool("correct", result.Correct),
	)

	return &dto.CheckQuizResponse{
		Success: result.Correct,
		Answer: &dto.RevealedAnswer{
			Correct:     result.Answer.Correct,
			Explanation: result.Answer.Explanation,
			Choices:     result.Choices,
		},
	}, nil
}

// Health pings the answer key store.
func (s *quizService) Health(ctx context.Context) error {
	return s.cache.Ping(ctx)
}
