package service_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"quiz-api/internal/domain"

	"github.com/stretchr/testify/mock"
)

// memoryCache is an in-process domain.Cache with a controllable clock.
type memoryCache struct {
	mu      sync.Mutex
	now     time.Time
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		now:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		entries: make(map[string]memoryEntry),
	}
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || !c.now.Before(e.expiresAt) {
		return "", domain.ErrCacheMiss
	}
	return e.value, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{value: value, expiresAt: c.now.Add(expiration)}
	return nil
}

func (c *memoryCache) Ping(ctx context.Context) error {
	return nil
}

func (c *memoryCache) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *memoryCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// ManualMockCache for domain.Cache interface
type ManualMockCache struct {
	GetFunc  func(ctx context.Context, key string) (string, error)
	SetFunc  func(ctx context.Context, key string, value string, ttl time.Duration) error
	PingFunc func(ctx context.Context) error
}

func (m *ManualMockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return "", errors.New("GetFunc not set")
}

func (m *ManualMockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	return errors.New("SetFunc not set")
}

func (m *ManualMockCache) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return errors.New("PingFunc not set")
}

// MockBatchGenerator is a testify mock for service.BatchGenerator.
type MockBatchGenerator struct {
	mock.Mock
}

func (m *MockBatchGenerator) GenerateQuizBatch(ctx context.Context, prompt string, expected int) (*domain.QuizBatch, string, error) {
	args := m.Called(ctx, prompt, expected)
	batch, _ := args.Get(0).(*domain.QuizBatch)
	return batch, args.String(1), args.Error(2)
}

func sampleBatch() *domain.QuizBatch {
	return &domain.QuizBatch{
		Questions: []domain.Question{
			{Question: "Which tag links a stylesheet?", Choices: []string{"<style>", "<link>", "<css>", "<script>"}, Level: domain.LevelBeginner, Topic: domain.TopicHTML},
			{Question: "Which values are falsy?", Choices: []string{"0", "'0'", "null", "[]"}, Level: domain.LevelIntermediate, Topic: domain.TopicJS},
			{Question: "Which shorthand sets flex-direction?", Choices: []string{"flex-flow", "direction", "flex", "order"}, Level: domain.LevelAdvanced, Topic: domain.TopicCSS},
		},
		Answers: []domain.AnswerKey{
			{Correct: []int{1}, Explanation: "<link> loads external CSS."},
			{Correct: []int{0, 2}, Explanation: "0 and null are falsy; '0' and [] are truthy."},
			{Correct: []int{0}, Explanation: "flex-flow combines flex-direction and flex-wrap."},
		},
	}
}
