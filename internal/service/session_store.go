package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quiz-api/internal/cache"
	"quiz-api/internal/domain"
	"quiz-api/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// SessionStore persists answer keys under a session id until they expire.
type SessionStore interface {
	Put(ctx context.Context, sessionID string, answers []domain.AnswerKey, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) ([]domain.AnswerKey, error)
}

// sessionStoreImpl implements SessionStore on a domain.Cache.
type sessionStoreImpl struct {
	cache   domain.Cache
	sfGroup singleflight.Group
}

// NewSessionStore creates a SessionStore backed by cache.
func NewSessionStore(cache domain.Cache) (SessionStore, error) {
	if cache == nil {
		return nil, fmt.Errorf("cache instance cannot be nil for SessionStore")
	}
	return &sessionStoreImpl{cache: cache}, nil
}

func sessionKey(sessionID string) string {
	return cache.GenerateCacheKey("quiz", "answers", sessionID)
}

// Put stores answers for ttl. A non-positive ttl is rejected rather than
// creating a key that never expires.
func (s *sessionStoreImpl) Put(ctx context.Context, sessionID string, answers []domain.AnswerKey, ttl time.Duration) error {
	if sessionID == "" {
		return domain.NewInvalidInputError("session id cannot be empty")
	}
	if ttl <= 0 {
		return domain.NewInvalidInputError(fmt.Sprintf("session ttl must be positive, got %s", ttl))
	}

	data, err := json.Marshal(answers)
	if err != nil {
		return domain.NewInternalError("failed to marshal answer key", err)
	}

	key := sessionKey(sessionID)
	if err := s.cache.Set(ctx, key, string(data), ttl); err != nil {
		logger.Get().Error("Failed to store answer key", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to store answer key for key %s", key), err)
	}

	logger.Get().Debug("Stored answer key",
		zap.String("key", key),
		zap.Int("answers", len(answers)),
		zap.Duration("ttl", ttl),
	)
	return nil
}

// Get returns the answers stored under sessionID or a SESSION_NOT_FOUND error.
// Concurrent lookups of the same session share one cache round trip. The
// shared call is detached from the first caller's cancellation; each caller
// still stops waiting when its own ctx is done.
func (s *sessionStoreImpl) Get(ctx context.Context, sessionID string) ([]domain.AnswerKey, error) {
	if sessionID == "" {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}

	key := sessionKey(sessionID)
	sharedCtx := context.WithoutCancel(ctx)
	ch := s.sfGroup.DoChan(key, func() (interface{}, error) {
		data, err := s.cache.Get(sharedCtx, key)
		if err != nil {
			if errors.Is(err, domain.ErrCacheMiss) {
				logger.Get().Debug("Answer key cache miss", zap.String("key", key))
				return nil, domain.NewSessionNotFoundError(sessionID)
			}
			logger.Get().Error("Failed to get answer key from cache", zap.Error(err), zap.String("key", key))
			return nil, domain.NewInternalError(fmt.Sprintf("failed to get answer key for key %s", key), err)
		}
		if data == "" {
			return nil, domain.NewSessionNotFoundError(sessionID)
		}

		var answers []domain.AnswerKey
		if err := json.Unmarshal([]byte(data), &answers); err != nil {
			logger.Get().Error("Failed to unmarshal answer key", zap.Error(err), zap.String("key", key))
			return nil, domain.NewInternalError(fmt.Sprintf("failed to unmarshal answer key for key %s", key), err)
		}
		return answers, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, domain.NewInternalError(fmt.Sprintf("lookup of answer key for key %s abandoned", key), ctx.Err())
	}
	if res.Err != nil {
		return nil, res.Err
	}

	answers, ok := res.Val.([]domain.AnswerKey)
	if !ok {
		return nil, domain.NewInternalError(fmt.Sprintf("unexpected type from singleflight for answer key: %T", res.Val), nil)
	}
	return answers, nil
}
