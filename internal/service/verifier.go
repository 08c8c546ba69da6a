package service

import (
	"context"
	"slices"

	"quiz-api/internal/domain"
)

// Verifier checks submitted choices against a stored answer key.
type Verifier struct {
	store SessionStore
}

func NewVerifier(store SessionStore) *Verifier {
	return &Verifier{store: store}
}

// Verify looks up the session, bounds-checks questionIndex and compares the
// submission with the stored correct set regardless of order. It never
// modifies the stored key, so repeated calls before expiry agree.
func (v *Verifier) Verify(ctx context.Context, sessionID string, questionIndex int, submitted []int) (*domain.Verification, error) {
	answers, err := v.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if questionIndex < 0 || questionIndex >= len(answers) {
		return nil, domain.NewInvalidQuestionIndexError(questionIndex, len(answers))
	}

	key := answers[questionIndex]
	return &domain.Verification{
		Correct: domain.MatchChoices(key.Correct, submitted),
		Answer: domain.AnswerKey{
			Correct:     slices.Clone(key.Correct),
			Explanation: key.Explanation,
		},
		Choices: domain.SortedChoices(submitted),
	}, nil
}
