package service_test

import (
	"context"
	"testing"
	"time"

	"quiz-api/internal/domain"
	"quiz-api/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVerifierWithSession(t *testing.T, answers []domain.AnswerKey, ttl time.Duration) (*service.Verifier, *memoryCache) {
	t.Helper()
	cache := newMemoryCache()
	store, err := service.NewSessionStore(cache)
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), "session-1", answers, ttl))
	return service.NewVerifier(store), cache
}

func TestVerifier_Verify(t *testing.T) {
	answers := []domain.AnswerKey{
		{Correct: []int{2}, Explanation: "third"},
		{Correct: []int{1, 3}, Explanation: "second and fourth"},
		{Correct: []int{0, 2}, Explanation: "first and third"},
	}
	verifier, _ := newVerifierWithSession(t, answers, time.Minute)
	ctx := context.Background()

	tests := []struct {
		name      string
		index     int
		submitted []int
		want      bool
	}{
		{name: "single correct", index: 0, submitted: []int{2}, want: true},
		{name: "single wrong", index: 0, submitted: []int{1}, want: false},
		{name: "multi exact", index: 1, submitted: []int{1, 3}, want: true},
		{name: "multi subset", index: 1, submitted: []int{0}, want: false},
		{name: "multi superset", index: 1, submitted: []int{1, 2, 3}, want: false},
		{name: "order insensitive", index: 2, submitted: []int{2, 0}, want: true},
		{name: "sorted order", index: 2, submitted: []int{0, 2}, want: true},
		{name: "empty submission", index: 0, submitted: []int{}, want: false},
		{name: "nil submission", index: 0, submitted: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := verifier.Verify(ctx, "session-1", tt.index, tt.submitted)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Correct)
			assert.Equal(t, answers[tt.index].Correct, result.Answer.Correct)
			assert.Equal(t, answers[tt.index].Explanation, result.Answer.Explanation)
			assert.Equal(t, domain.SortedChoices(tt.submitted), result.Choices)
		})
	}
}

func TestVerifier_Idempotent(t *testing.T) {
	verifier, _ := newVerifierWithSession(t, sampleBatch().Answers, time.Minute)
	ctx := context.Background()

	first, err := verifier.Verify(ctx, "session-1", 1, []int{2, 0})
	require.NoError(t, err)

	// Mutating a returned result must not leak into the stored key.
	first.Answer.Correct[0] = 3

	second, err := verifier.Verify(ctx, "session-1", 1, []int{2, 0})
	require.NoError(t, err)
	assert.True(t, second.Correct)
	assert.Equal(t, []int{0, 2}, second.Answer.Correct)
}

func TestVerifier_InvalidIndex(t *testing.T) {
	verifier, _ := newVerifierWithSession(t, sampleBatch().Answers, time.Minute)
	ctx := context.Background()

	for _, idx := range []int{-1, 3, 100} {
		_, err := verifier.Verify(ctx, "session-1", idx, []int{0})
		assert.True(t, domain.HasCode(err, domain.ErrInvalidQuestionIndex), "index %d", idx)
	}
}

func TestVerifier_UnknownAndExpiredSession(t *testing.T) {
	verifier, cache := newVerifierWithSession(t, sampleBatch().Answers, 75*time.Second)
	ctx := context.Background()

	_, err := verifier.Verify(ctx, "other", 0, []int{1})
	assert.True(t, domain.HasCode(err, domain.ErrSessionNotFound))

	result, err := verifier.Verify(ctx, "session-1", 0, []int{1})
	require.NoError(t, err)
	assert.True(t, result.Correct)

	cache.advance(75 * time.Second)
	_, err = verifier.Verify(ctx, "session-1", 0, []int{1})
	assert.True(t, domain.HasCode(err, domain.ErrSessionNotFound))
}
